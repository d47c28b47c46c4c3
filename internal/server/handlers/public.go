package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/AlexTLDR/wedding/internal/apiclient"
	"github.com/AlexTLDR/wedding/internal/config"
	"github.com/AlexTLDR/wedding/internal/directory"
	"github.com/AlexTLDR/wedding/internal/events"
	"github.com/AlexTLDR/wedding/internal/models"
	"github.com/AlexTLDR/wedding/internal/requests"
	"github.com/AlexTLDR/wedding/templates"
)

// Server interface defines the methods needed by handlers
type Server interface {
	GetConfig() *config.Config
	GetAPI() *apiclient.Client
	GetBus() *events.Bus
	GetDirectory() *directory.Directory
	GetRoster() *directory.Roster
	GetRequests() *requests.Service
}

// prepareLandingData gathers everything shown on the landing page. Sheet
// failures leave their sections empty.
func prepareLandingData(s Server, r *http.Request) templates.LandingData {
	cfg := s.GetConfig()
	log := hlog.FromRequest(r)

	dir := s.GetDirectory()
	if err := dir.Load(r.Context()); err != nil {
		log.Error().Err(err).Msg("failed to load guest list")
	}
	roster := s.GetRoster()
	if err := roster.Load(r.Context()); err != nil {
		log.Error().Err(err).Msg("failed to load entourage")
	}

	book := dir.GuestBook()
	male, female := roster.SponsorColumns()

	return templates.LandingData{
		CoupleNames:      cfg.CoupleNames,
		EventDate:        cfg.EventDate,
		Countdown:        models.CountdownTo(cfg.EventDate, time.Now()),
		CeremonyVenue:    cfg.CeremonyVenue,
		CeremonyAddress:  cfg.CeremonyAddress,
		ReceptionVenue:   cfg.ReceptionVenue,
		ReceptionAddress: cfg.ReceptionAddress,
		Entourage:        roster.Groups(),
		MaleSponsors:     male,
		FemaleSponsors:   female,
		GuestBook:        bookEntries(book.Guests),
		Messages:         bookEntries(book.Messages()),
	}
}

func bookEntries(guests []models.Guest) []templates.GuestBookEntry {
	entries := make([]templates.GuestBookEntry, 0, len(guests))
	for _, g := range guests {
		entries = append(entries, templates.GuestBookEntry{
			Name:     g.Name,
			Initials: directory.Initials(g.Name),
			Message:  g.Message,
		})
	}
	return entries
}

// HandleHome renders the landing page
func HandleHome(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := prepareLandingData(s, r)
		if err := templates.Landing(data).Render(r.Context(), w); err != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// HandleHealth answers load balancer health checks.
func HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}
