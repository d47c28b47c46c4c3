package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/AlexTLDR/wedding/internal/dashboard"
	"github.com/AlexTLDR/wedding/internal/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestLanding(t *testing.T) {
	out := render(t, Landing(LandingData{
		CoupleNames: "Nikki & Geofrey",
		EventDate:   time.Date(2026, 12, 12, 15, 0, 0, 0, time.UTC),
		Countdown:   models.Countdown{Days: 56},
		Entourage: []models.EntourageGroup{
			{Category: "Best Man", Members: []models.EntourageMember{{Name: "Karl"}}},
		},
		MaleSponsors: []string{"Mr. Reyes"},
		GuestBook:    []GuestBookEntry{{Name: "Ana Cruz", Initials: "AC"}, {Name: "Ben", Initials: "B"}},
		Messages:     []GuestBookEntry{{Name: "Ana Cruz", Message: "<b>Congrats</b>"}},
	}))

	for _, want := range []string{
		"Nikki &amp; Geofrey",
		"<strong>56</strong>",
		"Best Man",
		"Mr. Reyes",
		"2 guests are celebrating with us",
		`<span class="initials">AC</span>`,
		"&lt;b&gt;Congrats&lt;/b&gt;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("landing page missing %q", want)
		}
	}
	if strings.Contains(out, "<b>Congrats</b>") {
		t.Error("guest message was not escaped")
	}
}

func TestRSVPSearchOffersRequest(t *testing.T) {
	out := render(t, RSVPSearch(RSVPSearchData{Query: "zed", Searched: true, OfferRequest: true}))
	if !strings.Contains(out, `href="/request?name=zed"`) {
		t.Errorf("missing request link in %s", out)
	}

	out = render(t, RSVPSearch(RSVPSearchData{Query: "nik", Matches: []models.Guest{{Name: "Nikki Santos", Email: models.EmailPending}}}))
	if !strings.Contains(out, `href="/rsvp/guest?name=Nikki+Santos"`) {
		t.Errorf("missing guest link in %s", out)
	}
	if strings.Contains(out, models.EmailPending) {
		t.Error("placeholder email should be hidden")
	}
}

func TestRSVPSubmittedRedirects(t *testing.T) {
	out := render(t, RSVPSubmitted("Nikki", 3))
	if !strings.Contains(out, `content="3;url=/rsvp"`) {
		t.Errorf("missing refresh in %s", out)
	}
}

func TestAdminBannersAndPrompt(t *testing.T) {
	p := dashboard.DeletePrompt(dashboard.TabGuests, `O"Brien`)
	out := render(t, Admin(AdminData{
		View:    dashboard.View{Tab: dashboard.TabGuests, Guests: []models.Guest{{Name: `O"Brien`}}},
		Banners: []dashboard.Banner{{Kind: dashboard.BannerSuccess, Message: "Guest added successfully!"}},
		Prompt:  &p,
	}))

	for _, want := range []string{
		`data-dismiss-after="3000"`,
		"Guest added successfully!",
		"Delete Guest",
		`action="/admin/guests/delete"`,
		`value="O&#34;Brien"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("admin page missing %q", want)
		}
	}
}

func TestAdminPromoteConfirm(t *testing.T) {
	out := render(t, Admin(AdminData{
		View: dashboard.View{Tab: dashboard.TabRequests, Requests: []models.GuestRequest{{Name: "Ben", Email: "ben@example.com"}}},
	}))

	for _, want := range []string{
		`action="/admin/requests/promote"`,
		`confirm(&#34;Add Ben to the guest list?&#34;)`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("requests tab missing %q", want)
		}
	}
}
