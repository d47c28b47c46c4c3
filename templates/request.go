package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/AlexTLDR/wedding/internal/models"
)

type RequestFormData struct {
	Request   models.GuestRequest
	Error     string
	Submitted bool
}

// RequestForm lets someone who is not on the list ask to be added.
func RequestForm(d RequestFormData) templ.Component {
	return Layout("Request to join", component(func(ctx context.Context, h *html) {
		h.raw(`<h1>Request to join</h1>`)
		if d.Submitted {
			banner(h, "success", "Thank you! Your request has been sent to the couple.", 0)
			h.raw(`<p><a class="button" href="/">Back to the invitation</a></p>`)
			return
		}
		if d.Error != "" {
			banner(h, "error", d.Error, 5000)
		}

		h.raw(`<form method="post" action="/request">`)
		h.input("Name", "name", "text", d.Request.Name, true)
		h.input("Email", "email", "email", d.Request.Email, true)
		h.input("Phone (optional)", "phone", "tel", d.Request.Phone, false)
		h.selectInput("Will you attend?", "rsvp", d.Request.RSVP, []string{"", models.RSVPYes, models.RSVPNo, models.RSVPMaybe})
		h.raw(`<label>Message<textarea name="message" rows="4">`)
		h.text(d.Request.Message)
		h.raw(`</textarea></label><button type="submit">Send request</button></form>`)
	}))
}
