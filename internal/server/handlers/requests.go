package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/AlexTLDR/wedding/internal/apiclient"
	"github.com/AlexTLDR/wedding/internal/models"
	"github.com/AlexTLDR/wedding/internal/requests"
	"github.com/AlexTLDR/wedding/templates"
)

const msgRequestFailed = "Failed to submit request. Please try again."

// HandleRequestForm shows the "request to join" form, prefilled with the
// name that was searched for.
func HandleRequestForm(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := templates.RequestFormData{}
		data.Request.Name = r.URL.Query().Get("name")
		if err := templates.RequestForm(data).Render(r.Context(), w); err != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// HandleRequestSubmit stores a guest request.
func HandleRequestSubmit(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		req := models.GuestRequest{
			Name:    r.PostFormValue("name"),
			Email:   r.PostFormValue("email"),
			Phone:   r.PostFormValue("phone"),
			RSVP:    r.PostFormValue("rsvp"),
			Message: r.PostFormValue("message"),
		}
		data := templates.RequestFormData{Request: req}

		err := s.GetRequests().Submit(r.Context(), req)
		var fieldErr *requests.FieldError
		switch {
		case err == nil:
			data.Submitted = true
		case errors.As(err, &fieldErr):
			data.Error = fieldErr.Message
		case apiclient.IsValidation(err):
			data.Error = apiclient.Message(err)
		default:
			hlog.FromRequest(r).Error().Err(err).Str("name", req.Name).Msg("guest request failed")
			data.Error = msgRequestFailed
		}

		if err := templates.RequestForm(data).Render(r.Context(), w); err != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}
