// Package rsvp implements the RSVP state machine: search the guest list,
// pick a guest, then either answer the form or, for guests who already
// answered, see a read-only thank-you view.
package rsvp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/events"
	"github.com/AlexTLDR/wedding/internal/models"
)

// DefaultSuccessDelay is how long the confirmation stays up before the flow
// starts over.
const DefaultSuccessDelay = 3 * time.Second

var (
	// ErrAttendanceRequired is returned when the form is submitted without a
	// Yes or No answer. Nothing is sent.
	ErrAttendanceRequired = errors.New("attendance not selected")
	// ErrAlreadyResponded is returned when submitting for a guest who has
	// already answered. Nothing is sent.
	ErrAlreadyResponded = errors.New("this guest has already responded")
	// ErrNoGuest is returned by Submit before a guest has been selected.
	ErrNoGuest = errors.New("no guest selected")
	// ErrUnknownGuest is returned by Select for a name not on the list.
	ErrUnknownGuest = errors.New("guest not found")
)

// State is the step the flow is on.
type State int

const (
	Searching State = iota
	Form
	ThankYou
	Submitted
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Form:
		return "form"
	case ThankYou:
		return "thank-you"
	case Submitted:
		return "submitted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Directory is the guest list the flow searches and selects from.
type Directory interface {
	Search(query string) []models.Guest
	Select(name string) (models.Guest, bool)
	Refresh(ctx context.Context) error
}

// Updater writes a guest's answer.
type Updater interface {
	UpdateGuest(ctx context.Context, g models.Guest) error
}

// Answer is the submitted form.
type Answer struct {
	Attending string
	Email     string
	Message   string
}

// Flow holds one visitor's progress through the RSVP steps.
type Flow struct {
	dir          Directory
	api          Updater
	bus          *events.Bus
	log          zerolog.Logger
	successDelay time.Duration

	mu      sync.Mutex
	state   State
	query   string
	matches []models.Guest
	guest   models.Guest
	timer   *time.Timer
}

// NewFlow creates a flow in the Searching state. A zero successDelay means
// DefaultSuccessDelay.
func NewFlow(dir Directory, api Updater, bus *events.Bus, successDelay time.Duration, log zerolog.Logger) *Flow {
	if successDelay <= 0 {
		successDelay = DefaultSuccessDelay
	}
	return &Flow{dir: dir, api: api, bus: bus, log: log, successDelay: successDelay}
}

// State returns the current step.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Guest returns the selected guest.
func (f *Flow) Guest() models.Guest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guest
}

// Search runs query against the directory and returns to the Searching
// state.
func (f *Flow) Search(query string) []models.Guest {
	matches := f.dir.Search(query)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = Searching
	f.query = query
	f.matches = matches
	f.guest = models.Guest{}
	return matches
}

// Select picks a guest by exact name. Guests with an RSVP on file go to
// ThankYou, everyone else to Form.
func (f *Flow) Select(name string) (State, error) {
	g, ok := f.dir.Select(name)
	if !ok {
		return f.State(), fmt.Errorf("%w: %s", ErrUnknownGuest, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.guest = g
	if g.HasResponded() {
		f.state = ThankYou
	} else {
		f.state = Form
	}
	return f.state, nil
}

// Prefill returns the form defaults for the selected guest. The "Pending"
// placeholder is shown as an empty email.
func (f *Flow) Prefill() Answer {
	g := f.Guest()
	return Answer{
		Attending: g.RSVP,
		Email:     models.DisplayEmail(g.Email),
		Message:   g.Message,
	}
}

// Submit sends the answer as a single guest update. On success the flow
// moves to Submitted, publishes "rsvp-updated" and resets after the success
// delay.
func (f *Flow) Submit(ctx context.Context, a Answer) error {
	f.mu.Lock()
	state, guest := f.state, f.guest
	f.mu.Unlock()

	switch state {
	case ThankYou:
		return ErrAlreadyResponded
	case Form:
	default:
		return ErrNoGuest
	}
	if guest.HasResponded() {
		return ErrAlreadyResponded
	}

	attending := strings.TrimSpace(a.Attending)
	if attending != models.RSVPYes && attending != models.RSVPNo {
		return ErrAttendanceRequired
	}

	update := models.Guest{
		Name:    guest.Name,
		Email:   models.EmailOrPending(a.Email),
		RSVP:    attending,
		Message: strings.TrimSpace(a.Message),
	}
	if err := f.api.UpdateGuest(ctx, update); err != nil {
		return fmt.Errorf("failed to submit rsvp: %w", err)
	}

	f.log.Info().Str("guest", guest.Name).Str("rsvp", attending).Msg("rsvp submitted")

	f.mu.Lock()
	f.state = Submitted
	f.guest = update
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.successDelay, f.finish)
	f.mu.Unlock()

	if f.bus != nil {
		f.bus.Publish(events.RSVPUpdated)
	}
	return nil
}

// Reset returns to an empty search.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.state = Searching
	f.query = ""
	f.matches = nil
	f.guest = models.Guest{}
}

func (f *Flow) finish() {
	f.Reset()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := f.dir.Refresh(ctx); err != nil {
		f.log.Error().Err(err).Msg("failed to refresh guests after rsvp")
	}
}
