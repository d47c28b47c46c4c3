package templates

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/AlexTLDR/wedding/internal/models"
)

type RSVPSearchData struct {
	Query        string
	Searched     bool
	Matches      []models.Guest
	OfferRequest bool
	Error        string
}

// RSVPSearch is the guest lookup step.
func RSVPSearch(d RSVPSearchData) templ.Component {
	return Layout("RSVP", component(func(ctx context.Context, h *html) {
		h.raw(`<h1>RSVP</h1><p>Search for your name or email to respond.</p>`)
		if d.Error != "" {
			banner(h, "error", d.Error, 0)
		}
		h.raw(`<form method="get" action="/rsvp">`)
		h.input("Name or email", "q", "search", d.Query, false)
		h.raw(`<button type="submit">Search</button></form>`)

		if len(d.Matches) > 0 {
			h.raw(`<ul>`)
			for _, g := range d.Matches {
				h.raw(`<li><a`)
				h.attr("href", "/rsvp/guest?name="+url.QueryEscape(g.Name))
				h.raw(`>`)
				h.text(g.Name)
				h.raw(`</a>`)
				if email := models.DisplayEmail(g.Email); email != "" {
					h.raw(` <small>`)
					h.text(email)
					h.raw(`</small>`)
				}
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}

		if d.OfferRequest {
			h.raw(`<p>We couldn't find you on the guest list.</p><p><a class="button"`)
			h.attr("href", "/request?name="+url.QueryEscape(d.Query))
			h.raw(`>Request to join</a></p>`)
		}
	}))
}

type RSVPFormData struct {
	Guest     models.Guest
	Attending string
	Email     string
	Message   string
	Error     string
}

// RSVPForm is the answer form for a guest who has not responded yet.
func RSVPForm(d RSVPFormData) templ.Component {
	return Layout("RSVP", component(func(ctx context.Context, h *html) {
		h.raw(`<h1>Hello, `)
		h.text(d.Guest.Name)
		h.raw(`!</h1>`)
		if d.Error != "" {
			banner(h, "error", d.Error, 5000)
		}
		h.raw(`<form method="post" action="/rsvp/submit">`)
		h.hidden("name", d.Guest.Name)
		h.raw(`<fieldset><legend>Will you be attending?</legend>`)
		for _, opt := range []struct{ value, label string }{
			{models.RSVPYes, "Joyfully accepts"},
			{models.RSVPNo, "Regretfully declines"},
		} {
			h.raw(`<label><input type="radio" name="attending" style="display:inline;width:auto"`)
			h.attr("value", opt.value)
			if d.Attending == opt.value {
				h.raw(" checked")
			}
			h.raw(`> `)
			h.text(opt.label)
			h.raw(`</label>`)
		}
		h.raw(`</fieldset>`)
		h.input("Email (optional)", "email", "email", d.Email, false)
		h.raw(`<label>Message for the couple<textarea name="message" rows="4">`)
		h.text(d.Message)
		h.raw(`</textarea></label><button type="submit">Send RSVP</button> <a href="/rsvp">Back</a></form>`)
	}))
}

// RSVPThankYou is shown instead of the form to guests who already answered.
func RSVPThankYou(g models.Guest) templ.Component {
	return Layout("RSVP", component(func(ctx context.Context, h *html) {
		h.raw(`<h1>Thank you, `)
		h.text(g.Name)
		h.raw(`!</h1><p>We already have your response: <strong>`)
		h.text(g.RSVP)
		h.raw(`</strong></p>`)
		if g.Message != "" {
			h.raw(`<blockquote>`)
			h.text(g.Message)
			h.raw(`</blockquote>`)
		}
		h.raw(`<p><a class="button" href="/">Close</a></p>`)
	}))
}

// RSVPSubmitted confirms the answer and returns to the search after
// delaySeconds.
func RSVPSubmitted(name string, delaySeconds int) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta http-equiv="refresh"`)
		h.attr("content", strconv.Itoa(delaySeconds)+";url=/rsvp")
		h.raw(`><title>RSVP</title><style>` + styles + `</style></head><body><main>`)
		banner(h, "success", "Thank you for your response!", 0)
		h.raw(`<p>`)
		h.text(name)
		h.raw(`, your RSVP has been recorded.</p></main></body></html>`)
	})
}
