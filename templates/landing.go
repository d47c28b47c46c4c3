package templates

import (
	"context"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/AlexTLDR/wedding/internal/models"
)

// GuestBookEntry is an attending guest with their avatar initials.
type GuestBookEntry struct {
	Name     string
	Initials string
	Message  string
}

type LandingData struct {
	CoupleNames      string
	EventDate        time.Time
	Countdown        models.Countdown
	CeremonyVenue    string
	CeremonyAddress  string
	ReceptionVenue   string
	ReceptionAddress string
	Entourage        []models.EntourageGroup
	MaleSponsors     []string
	FemaleSponsors   []string
	GuestBook        []GuestBookEntry
	Messages         []GuestBookEntry
}

func Landing(d LandingData) templ.Component {
	title := d.CoupleNames
	if title == "" {
		title = "Wedding Invitation"
	}
	return Layout(title, component(func(ctx context.Context, h *html) {
		h.raw(`<section id="hero"><h1>`)
		h.text(title)
		h.raw(`</h1><p style="text-align:center">`)
		h.text(d.EventDate.Format("Monday, January 2, 2006 · 3:04 PM"))
		h.raw(`</p><p style="text-align:center"><a class="button" href="/rsvp">RSVP</a></p></section>`)

		countdown(h, d.EventDate, d.Countdown)
		details(h, d)
		entourage(h, d.Entourage)
		sponsors(h, d.MaleSponsors, d.FemaleSponsors)
		guestBook(h, d.GuestBook, d.Messages)
	}))
}

func countdown(h *html, target time.Time, c models.Countdown) {
	h.raw(`<section id="countdown"><h2>Counting down</h2>`)
	if c.Passed {
		h.raw(`<p style="text-align:center">The celebration has begun!</p></section>`)
		return
	}
	h.raw(`<div class="countdown" style="text-align:center"`)
	h.attr("data-target", target.UTC().Format(time.RFC3339))
	h.raw(`>`)
	for _, part := range []struct {
		value int
		label string
	}{
		{c.Days, "Days"}, {c.Hours, "Hours"}, {c.Minutes, "Minutes"}, {c.Seconds, "Seconds"},
	} {
		h.raw(`<span><strong>`)
		h.text(strconv.Itoa(part.value))
		h.raw(`</strong><br>`)
		h.text(part.label)
		h.raw(`</span>`)
	}
	h.raw(`</div></section>`)
}

func details(h *html, d LandingData) {
	h.raw(`<section id="details"><h2>Event Details</h2><div class="columns">`)
	for _, v := range []struct{ title, venue, address string }{
		{"Ceremony", d.CeremonyVenue, d.CeremonyAddress},
		{"Reception", d.ReceptionVenue, d.ReceptionAddress},
	} {
		if v.venue == "" && v.address == "" {
			continue
		}
		h.raw(`<div><h3>`)
		h.text(v.title)
		h.raw(`</h3><p>`)
		h.text(v.venue)
		h.raw(`<br>`)
		h.text(v.address)
		h.raw(`</p></div>`)
	}
	h.raw(`</div></section>`)
}

func entourage(h *html, groups []models.EntourageGroup) {
	if len(groups) == 0 {
		return
	}
	h.raw(`<section id="entourage"><h2>The Entourage</h2>`)
	for _, g := range groups {
		h.raw(`<h3>`)
		h.text(g.Category)
		h.raw(`</h3><p style="text-align:center">`)
		for i, m := range g.Members {
			if i > 0 {
				h.raw(`<br>`)
			}
			h.text(m.Name)
			if m.RoleTitle != "" && m.RoleTitle != g.Category {
				h.raw(` <small>`)
				h.text(m.RoleTitle)
				h.raw(`</small>`)
			}
		}
		h.raw(`</p>`)
	}
	h.raw(`</section>`)
}

func sponsors(h *html, male, female []string) {
	if len(male) == 0 && len(female) == 0 {
		return
	}
	h.raw(`<section id="sponsors"><h2>Principal Sponsors</h2><div class="columns">`)
	for _, col := range [][]string{male, female} {
		h.raw(`<div>`)
		for _, name := range col {
			h.raw(`<p>`)
			h.text(name)
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
	}
	h.raw(`</div></section>`)
}

func guestBook(h *html, entries, messages []GuestBookEntry) {
	h.raw(`<section id="guest-book"><h2>Book of Guests</h2><p style="text-align:center">`)
	switch len(entries) {
	case 0:
		h.raw(`Be the first to confirm your attendance!`)
	case 1:
		h.raw(`1 guest is celebrating with us`)
	default:
		h.text(strconv.Itoa(len(entries)))
		h.raw(` guests are celebrating with us`)
	}
	h.raw(`</p><ul style="list-style:none;padding:0">`)
	for _, e := range entries {
		h.raw(`<li><span class="initials">`)
		h.text(e.Initials)
		h.raw(`</span>`)
		h.text(e.Name)
		h.raw(`</li>`)
	}
	h.raw(`</ul>`)

	if len(messages) > 0 {
		h.raw(`<h3>Messages</h3>`)
		for _, m := range messages {
			h.raw(`<blockquote><p>`)
			h.text(m.Message)
			h.raw(`</p><footer>`)
			h.text(m.Name)
			h.raw(`</footer></blockquote>`)
		}
	}
	h.raw(`</section>`)
}
