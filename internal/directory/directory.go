// Package directory caches the guest list for search, RSVP selection and the
// book of guests, refreshing it when RSVPs change.
package directory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/events"
	"github.com/AlexTLDR/wedding/internal/models"
)

// GuestLister fetches the full guest list.
type GuestLister interface {
	ListGuests(ctx context.Context) ([]models.Guest, error)
}

// Directory holds the last fetched guest list.
type Directory struct {
	api GuestLister
	log zerolog.Logger

	mu     sync.RWMutex
	guests []models.Guest
	loaded bool
}

// New creates an empty directory. Nothing is fetched until Load or Refresh.
func New(api GuestLister, log zerolog.Logger) *Directory {
	return &Directory{api: api, log: log}
}

// Load fetches the guest list unless it has been fetched before.
func (d *Directory) Load(ctx context.Context) error {
	d.mu.RLock()
	loaded := d.loaded
	d.mu.RUnlock()
	if loaded {
		return nil
	}
	return d.Refresh(ctx)
}

// Refresh replaces the cached list with a fresh fetch. On failure the
// previous list is kept.
func (d *Directory) Refresh(ctx context.Context) error {
	guests, err := d.api.ListGuests(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch guests: %w", err)
	}

	d.mu.Lock()
	d.guests = guests
	d.loaded = true
	d.mu.Unlock()

	d.log.Debug().Int("guests", len(guests)).Msg("guest list refreshed")
	return nil
}

// snapshot returns a copy of the cached list.
func (d *Directory) snapshot() []models.Guest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]models.Guest(nil), d.guests...)
}

// Search returns guests whose Name or Email contains query, ignoring case.
// A blank query matches nobody.
func (d *Directory) Search(query string) []models.Guest {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var matches []models.Guest
	for _, g := range d.guests {
		if strings.Contains(strings.ToLower(g.Name), q) || strings.Contains(strings.ToLower(g.Email), q) {
			matches = append(matches, g)
		}
	}
	return matches
}

// OfferRequest reports whether a search should offer the "request to join"
// form instead of results.
func OfferRequest(query string, matches []models.Guest) bool {
	return strings.TrimSpace(query) != "" && len(matches) == 0
}

// Select returns the guest with exactly this name from the cached list.
func (d *Directory) Select(name string) (models.Guest, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, g := range d.guests {
		if g.Name == name {
			return g, true
		}
	}
	return models.Guest{}, false
}

// GuestBook lists the guests who answered Yes.
type GuestBook struct {
	Guests []models.Guest
}

// Count is the number of attending guests.
func (b GuestBook) Count() int {
	return len(b.Guests)
}

// Messages returns the attending guests that left a message.
func (b GuestBook) Messages() []models.Guest {
	var out []models.Guest
	for _, g := range b.Guests {
		if strings.TrimSpace(g.Message) != "" {
			out = append(out, g)
		}
	}
	return out
}

// GuestBook builds the book of guests from the cached list.
func (d *Directory) GuestBook() GuestBook {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var book GuestBook
	for _, g := range d.guests {
		if g.RSVP == models.RSVPYes {
			book.Guests = append(book.Guests, g)
		}
	}
	return book
}

// WatchRSVP refreshes the directory delay after every "rsvp-updated" event.
func (d *Directory) WatchRSVP(bus *events.Bus, delay time.Duration) (stop func()) {
	return bus.SubscribeDelayed(events.RSVPUpdated, delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := d.Refresh(ctx); err != nil {
			d.log.Error().Err(err).Msg("failed to refresh guests after rsvp update")
		}
	})
}

// Initials returns the first letters of up to two words of name, upper
// cased, or "?" for a blank name.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "?"
	}
	if len(words) > 2 {
		words = words[:2]
	}

	var b strings.Builder
	for _, word := range words {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
