package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/AlexTLDR/wedding/internal/apiclient"
	"github.com/AlexTLDR/wedding/internal/directory"
	"github.com/AlexTLDR/wedding/internal/rsvp"
	"github.com/AlexTLDR/wedding/templates"
)

const (
	msgLoadGuests   = "Failed to load guest list"
	msgSubmitFailed = "Failed to submit RSVP. Please try again."
	msgAttendance   = "Please select if you can attend"
)

func newFlow(s Server, log *zerolog.Logger) *rsvp.Flow {
	return rsvp.NewFlow(s.GetDirectory(), s.GetAPI(), s.GetBus(), rsvp.DefaultSuccessDelay, *log)
}

// HandleRSVPSearch looks guests up by name or email. Each search refetches
// the list so new guests show up immediately.
func HandleRSVPSearch(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := hlog.FromRequest(r)
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		data := templates.RSVPSearchData{Query: query}

		if query != "" {
			data.Searched = true
			if err := s.GetDirectory().Refresh(r.Context()); err != nil {
				log.Error().Err(err).Msg("failed to refresh guest list")
				data.Error = msgLoadGuests
			}
			data.Matches = newFlow(s, log).Search(query)
			data.OfferRequest = data.Error == "" && directory.OfferRequest(query, data.Matches)
		}

		if err := templates.RSVPSearch(data).Render(r.Context(), w); err != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// HandleRSVPGuest shows the form, or the thank-you view for guests who have
// already answered.
func HandleRSVPGuest(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := hlog.FromRequest(r)
		name := r.URL.Query().Get("name")

		if err := s.GetDirectory().Load(r.Context()); err != nil {
			log.Error().Err(err).Msg("failed to load guest list")
		}
		flow := newFlow(s, log)
		state, err := flow.Select(name)
		if err != nil {
			http.Redirect(w, r, "/rsvp", http.StatusSeeOther)
			return
		}

		if state == rsvp.ThankYou {
			err = templates.RSVPThankYou(flow.Guest()).Render(r.Context(), w)
		} else {
			a := flow.Prefill()
			err = templates.RSVPForm(templates.RSVPFormData{
				Guest:     flow.Guest(),
				Attending: a.Attending,
				Email:     a.Email,
				Message:   a.Message,
			}).Render(r.Context(), w)
		}
		if err != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// HandleRSVPSubmit records an answer. The guest list is re-read first so a
// guest who answered in the meantime gets the thank-you view and no update
// is sent.
func HandleRSVPSubmit(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := hlog.FromRequest(r)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		name := r.PostFormValue("name")
		answer := rsvp.Answer{
			Attending: r.PostFormValue("attending"),
			Email:     r.PostFormValue("email"),
			Message:   r.PostFormValue("message"),
		}

		if err := s.GetDirectory().Refresh(r.Context()); err != nil {
			log.Error().Err(err).Msg("failed to refresh guest list")
			renderRSVPForm(w, r, name, answer, msgLoadGuests)
			return
		}

		flow := newFlow(s, log)
		if _, err := flow.Select(name); err != nil {
			http.Redirect(w, r, "/rsvp", http.StatusSeeOther)
			return
		}

		err := flow.Submit(r.Context(), answer)
		switch {
		case err == nil:
			secs := int(rsvp.DefaultSuccessDelay.Seconds())
			if err := templates.RSVPSubmitted(name, secs).Render(r.Context(), w); err != nil {
				http.Error(w, "Failed to render page", http.StatusInternalServerError)
			}
		case errors.Is(err, rsvp.ErrAlreadyResponded):
			if err := templates.RSVPThankYou(flow.Guest()).Render(r.Context(), w); err != nil {
				http.Error(w, "Failed to render page", http.StatusInternalServerError)
			}
		case errors.Is(err, rsvp.ErrAttendanceRequired):
			renderRSVPForm(w, r, name, answer, msgAttendance)
		case apiclient.IsValidation(err):
			renderRSVPForm(w, r, name, answer, apiclient.Message(err))
		default:
			log.Error().Err(err).Str("guest", name).Msg("rsvp submit failed")
			renderRSVPForm(w, r, name, answer, msgSubmitFailed)
		}
	}
}

func renderRSVPForm(w http.ResponseWriter, r *http.Request, name string, a rsvp.Answer, message string) {
	data := templates.RSVPFormData{
		Attending: a.Attending,
		Email:     a.Email,
		Message:   a.Message,
		Error:     message,
	}
	data.Guest.Name = name
	if err := templates.RSVPForm(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
