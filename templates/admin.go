package templates

import (
	"context"
	"net/url"

	"github.com/a-h/templ"

	"github.com/AlexTLDR/wedding/internal/dashboard"
	"github.com/AlexTLDR/wedding/internal/models"
	"github.com/AlexTLDR/wedding/internal/requests"
)

type AdminLoginData struct {
	Error           string
	PasswordEnabled bool
	GoogleEnabled   bool
}

func AdminLogin(d AdminLoginData) templ.Component {
	return Layout("Dashboard login", component(func(ctx context.Context, h *html) {
		h.raw(`<h1>Dashboard</h1>`)
		if d.Error != "" {
			banner(h, "error", d.Error, 0)
		}
		if d.PasswordEnabled {
			h.raw(`<form method="post" action="/admin/login">`)
			h.input("Password", "password", "password", "", true)
			h.raw(`<button type="submit">Log in</button></form>`)
		}
		if d.GoogleEnabled {
			h.raw(`<p><a class="button" href="/auth/google">Sign in with Google</a></p>`)
		}
	}))
}

type AdminData struct {
	UserName      string
	View          dashboard.View
	Banners       []dashboard.Banner
	Prompt        *dashboard.Prompt
	BackupEnabled bool
}

// Admin is the dashboard with one tab loaded.
func Admin(d AdminData) templ.Component {
	return Layout("Dashboard", component(func(ctx context.Context, h *html) {
		h.raw(`<h1>Dashboard</h1><nav>`)
		for _, t := range dashboard.Tabs {
			h.raw(`<a`)
			h.attr("href", "/admin?tab="+string(t))
			if t == d.View.Tab {
				h.raw(` style="font-weight:bold"`)
			}
			h.raw(`>`)
			h.text(t.Label())
			h.raw(`</a>`)
		}
		h.raw(`<a href="/admin/export.csv">CSV</a><a href="/admin/export.xlsx">XLSX</a>`)
		h.raw(`<a href="/admin/logout">Logout`)
		if d.UserName != "" {
			h.raw(` (`)
			h.text(d.UserName)
			h.raw(`)`)
		}
		h.raw(`</a></nav>`)
		if d.BackupEnabled {
			h.raw(`<form class="inline" method="post" action="/admin/backup"><button type="submit">Back up now</button></form>`)
		}

		for _, b := range d.Banners {
			banner(h, string(b.Kind), b.Message, int(dashboard.BannerDuration.Milliseconds()))
		}
		if d.Prompt != nil {
			prompt(h, d.View.Tab, *d.Prompt)
		}

		h.raw(`<h2>`)
		h.text(d.View.Tab.Label())
		h.raw(`</h2>`)
		switch d.View.Tab {
		case dashboard.TabGuests:
			guestsTab(h, d.View.Guests)
		case dashboard.TabRequests:
			requestsTab(h, d.View.Requests)
		case dashboard.TabEntourage:
			entourageTab(h, d.View.Entourage)
		case dashboard.TabSponsors:
			sponsorsTab(h, d.View.Sponsors)
		}
	}))
}

func prompt(h *html, tab dashboard.Tab, p dashboard.Prompt) {
	h.raw(`<div class="prompt" role="dialog"><h3>`)
	h.text(p.Title)
	h.raw(`</h3><p>`)
	h.text(p.Message)
	h.raw(`</p><form class="inline" method="post"`)
	h.attr("action", p.Action)
	h.raw(`>`)
	h.hidden(p.KeyField, p.Key)
	h.raw(`<button type="submit">Delete</button></form> <a class="button"`)
	h.attr("href", "/admin?tab="+string(tab))
	h.raw(`>Cancel</a></div>`)
}

// rowForm opens an update form for one record.
func rowForm(h *html, tab dashboard.Tab, op dashboard.Op) {
	h.raw(`<form method="post"`)
	h.attr("action", "/admin/"+string(tab)+"/"+string(op))
	h.raw(`>`)
}

func deleteLink(h *html, tab dashboard.Tab, key string) {
	h.raw(`<a`)
	h.attr("href", "/admin?tab="+string(tab)+"&confirm="+url.QueryEscape(key))
	h.raw(`>Delete</a>`)
}

var rsvpOptions = []string{models.RSVPNone, models.RSVPYes, models.RSVPNo, models.RSVPMaybe}

func guestsTab(h *html, guests []models.Guest) {
	h.raw(`<h3>Add guest</h3>`)
	rowForm(h, dashboard.TabGuests, dashboard.OpCreate)
	h.input("Name", "Name", "text", "", true)
	h.input("Email", "Email", "email", "", false)
	h.raw(`<button type="submit">Add</button></form>`)

	h.raw(`<table><tr><th>Name</th><th>Email</th><th>RSVP</th><th>Message</th><th></th></tr>`)
	for _, g := range guests {
		h.raw(`<tr><td colspan="4">`)
		rowForm(h, dashboard.TabGuests, dashboard.OpUpdate)
		h.hidden("Name", g.Name)
		h.raw(`<strong>`)
		h.text(g.Name)
		h.raw(`</strong>`)
		h.input("Email", "Email", "email", models.DisplayEmail(g.Email), false)
		h.selectInput("RSVP", "RSVP", g.RSVP, rsvpOptions)
		h.input("Message", "Message", "text", g.Message, false)
		h.raw(`<button type="submit">Save</button></form></td><td>`)
		deleteLink(h, dashboard.TabGuests, g.Name)
		h.raw(`</td></tr>`)
	}
	h.raw(`</table>`)
}

func requestsTab(h *html, reqs []models.GuestRequest) {
	if len(reqs) == 0 {
		h.raw(`<p>No pending requests.</p>`)
		return
	}
	h.raw(`<table><tr><th>Request</th><th></th></tr>`)
	for _, r := range reqs {
		h.raw(`<tr><td>`)
		rowForm(h, dashboard.TabRequests, dashboard.OpUpdate)
		h.hidden("Name", r.Name)
		h.raw(`<strong>`)
		h.text(r.Name)
		h.raw(`</strong>`)
		h.input("Email", "Email", "email", models.DisplayEmail(r.Email), false)
		h.input("Phone", "Phone", "tel", r.Phone, false)
		h.selectInput("RSVP", "RSVP", r.RSVP, rsvpOptions)
		h.input("Message", "Message", "text", r.Message, false)
		h.raw(`<button type="submit">Save</button></form></td><td>`)

		rowForm(h, dashboard.TabRequests, dashboard.OpPromote)
		for _, f := range []struct{ k, v string }{
			{"Name", r.Name}, {"Email", r.Email}, {"Phone", r.Phone}, {"RSVP", r.RSVP}, {"Message", r.Message},
		} {
			h.hidden(f.k, f.v)
		}
		h.raw(`<button type="submit"`)
		h.attr("onclick", "return confirm("+jsString(requests.ConfirmPrompt(r))+")")
		h.raw(`>Add to guest list</button></form> `)
		deleteLink(h, dashboard.TabRequests, r.Name)
		h.raw(`</td></tr>`)
	}
	h.raw(`</table>`)
}

func entourageTab(h *html, groups []models.EntourageGroup) {
	h.raw(`<h3>Add member</h3>`)
	rowForm(h, dashboard.TabEntourage, dashboard.OpCreate)
	h.input("Name", "Name", "text", "", true)
	h.selectInput("Role category", "RoleCategory", "", append([]string{""}, models.RoleCategoryOrder...))
	h.input("Role title", "RoleTitle", "text", "", false)
	h.input("Email", "Email", "email", "", false)
	h.raw(`<button type="submit">Add</button></form>`)

	for _, g := range groups {
		h.raw(`<h3>`)
		h.text(g.Category)
		h.raw(`</h3><table>`)
		for _, m := range g.Members {
			h.raw(`<tr><td>`)
			rowForm(h, dashboard.TabEntourage, dashboard.OpUpdate)
			h.hidden("originalName", m.Name)
			h.input("Name", "Name", "text", m.Name, true)
			h.input("Role category", "RoleCategory", "text", m.RoleCategory, false)
			h.input("Role title", "RoleTitle", "text", m.RoleTitle, false)
			h.input("Email", "Email", "email", models.DisplayEmail(m.Email), false)
			h.raw(`<button type="submit">Save</button></form></td><td>`)
			deleteLink(h, dashboard.TabEntourage, m.Name)
			h.raw(`</td></tr>`)
		}
		h.raw(`</table>`)
	}
}

func sponsorsTab(h *html, sponsors []models.PrincipalSponsor) {
	h.raw(`<h3>Add sponsors</h3>`)
	rowForm(h, dashboard.TabSponsors, dashboard.OpCreate)
	h.input("Male principal sponsor", "MalePrincipalSponsor", "text", "", true)
	h.input("Female principal sponsor", "FemalePrincipalSponsor", "text", "", false)
	h.raw(`<button type="submit">Add</button></form><table>`)
	for _, s := range sponsors {
		h.raw(`<tr><td>`)
		rowForm(h, dashboard.TabSponsors, dashboard.OpUpdate)
		h.hidden("originalName", s.MalePrincipalSponsor)
		h.input("Male principal sponsor", "MalePrincipalSponsor", "text", s.MalePrincipalSponsor, true)
		h.input("Female principal sponsor", "FemalePrincipalSponsor", "text", s.FemalePrincipalSponsor, false)
		h.raw(`<button type="submit">Save</button></form></td><td>`)
		deleteLink(h, dashboard.TabSponsors, s.MalePrincipalSponsor)
		h.raw(`</td></tr>`)
	}
	h.raw(`</table>`)
}
