package directory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/events"
	"github.com/AlexTLDR/wedding/internal/models"
)

// RosterSource fetches the entourage and the principal sponsors.
type RosterSource interface {
	ListEntourage(ctx context.Context) ([]models.EntourageMember, error)
	ListPrincipalSponsors(ctx context.Context) ([]models.PrincipalSponsor, error)
}

// Roster caches the entourage and sponsors shown on the landing page.
type Roster struct {
	api RosterSource
	log zerolog.Logger

	mu       sync.RWMutex
	members  []models.EntourageMember
	sponsors []models.PrincipalSponsor
	loaded   bool
}

func NewRoster(api RosterSource, log zerolog.Logger) *Roster {
	return &Roster{api: api, log: log}
}

// Load fetches the roster unless it has been fetched before.
func (r *Roster) Load(ctx context.Context) error {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return nil
	}
	return r.Refresh(ctx)
}

// Refresh fetches both lists. Either failing keeps the previous roster.
func (r *Roster) Refresh(ctx context.Context) error {
	members, err := r.api.ListEntourage(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch entourage: %w", err)
	}
	sponsors, err := r.api.ListPrincipalSponsors(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch principal sponsors: %w", err)
	}

	r.mu.Lock()
	r.members = members
	r.sponsors = sponsors
	r.loaded = true
	r.mu.Unlock()
	return nil
}

// Groups returns the entourage grouped by role category.
func (r *Roster) Groups() []models.EntourageGroup {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return models.GroupEntourage(r.members)
}

// SponsorColumns returns the male and female sponsor names.
func (r *Roster) SponsorColumns() (male, female []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return models.SponsorColumns(r.sponsors)
}

// WatchEntourage refreshes the roster delay after every "entourage-updated"
// event.
func (r *Roster) WatchEntourage(bus *events.Bus, delay time.Duration) (stop func()) {
	return bus.SubscribeDelayed(events.EntourageUpdated, delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := r.Refresh(ctx); err != nil {
			r.log.Error().Err(err).Msg("failed to refresh entourage after update")
		}
	})
}
