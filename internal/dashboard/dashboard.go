// Package dashboard is the admin CRUD shell over the four collections: tab
// loading, mutations with result banners, delete confirmations and the
// login gate.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/apiclient"
	"github.com/AlexTLDR/wedding/internal/events"
	"github.com/AlexTLDR/wedding/internal/models"
	"github.com/AlexTLDR/wedding/internal/requests"
)

// BannerDuration is how long a result banner stays visible.
const BannerDuration = 3 * time.Second

// ErrUnsupported is returned for an operation a tab does not offer.
var ErrUnsupported = errors.New("operation not supported on this tab")

// Tab is one dashboard section.
type Tab string

const (
	TabGuests    Tab = "guests"
	TabRequests  Tab = "requests"
	TabEntourage Tab = "entourage"
	TabSponsors  Tab = "sponsors"
)

// Tabs lists the sections in display order.
var Tabs = []Tab{TabGuests, TabRequests, TabEntourage, TabSponsors}

// ParseTab returns the named tab, defaulting to guests.
func ParseTab(s string) Tab {
	for _, t := range Tabs {
		if string(t) == s {
			return t
		}
	}
	return TabGuests
}

// Label is the tab's heading.
func (t Tab) Label() string {
	switch t {
	case TabRequests:
		return "Guest Requests"
	case TabEntourage:
		return "Entourage"
	case TabSponsors:
		return "Principal Sponsors"
	}
	return "Guests"
}

// Op is a mutation.
type Op string

const (
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpPromote Op = "promote"
)

// BannerKind tells success and error banners apart.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is the transient result message of a mutation.
type Banner struct {
	Kind    BannerKind
	Message string
}

// Prompt is the confirmation shown before a delete. Action and the key
// field are posted back when confirmed.
type Prompt struct {
	Title    string
	Message  string
	Action   string
	KeyField string
	Key      string
}

// API is the /api client surface the dashboard uses.
type API interface {
	ListGuests(ctx context.Context) ([]models.Guest, error)
	CreateGuest(ctx context.Context, g models.Guest) error
	UpdateGuest(ctx context.Context, g models.Guest) error
	DeleteGuest(ctx context.Context, name string) error

	ListGuestRequests(ctx context.Context) ([]models.GuestRequest, error)
	UpdateGuestRequest(ctx context.Context, r models.GuestRequest) error
	DeleteGuestRequest(ctx context.Context, name string) error

	ListEntourage(ctx context.Context) ([]models.EntourageMember, error)
	CreateEntourageMember(ctx context.Context, m models.EntourageMember) error
	UpdateEntourageMember(ctx context.Context, originalName string, m models.EntourageMember) error
	DeleteEntourageMember(ctx context.Context, name string) error

	ListPrincipalSponsors(ctx context.Context) ([]models.PrincipalSponsor, error)
	CreatePrincipalSponsor(ctx context.Context, s models.PrincipalSponsor) error
	UpdatePrincipalSponsor(ctx context.Context, originalName string, s models.PrincipalSponsor) error
	DeletePrincipalSponsor(ctx context.Context, male string) error
}

// View is the data of one loaded tab. Only the slice for Tab is filled.
type View struct {
	Tab       Tab
	Guests    []models.Guest
	Requests  []models.GuestRequest
	Entourage []models.EntourageGroup
	Sponsors  []models.PrincipalSponsor
}

// Dashboard runs admin operations against the /api routes.
type Dashboard struct {
	api      API
	requests *requests.Service
	bus      *events.Bus
	log      zerolog.Logger
}

func New(api API, reqs *requests.Service, bus *events.Bus, log zerolog.Logger) *Dashboard {
	if bus == nil {
		bus = events.NewBus()
	}
	return &Dashboard{api: api, requests: reqs, bus: bus, log: log}
}

// Load fetches the list behind tab. Nothing is cached, so loading after a
// mutation always shows the store's current state.
func (d *Dashboard) Load(ctx context.Context, tab Tab) (View, error) {
	v := View{Tab: tab}
	var err error
	switch tab {
	case TabGuests:
		v.Guests, err = d.api.ListGuests(ctx)
	case TabRequests:
		v.Requests, err = d.api.ListGuestRequests(ctx)
	case TabEntourage:
		var members []models.EntourageMember
		members, err = d.api.ListEntourage(ctx)
		v.Entourage = models.GroupEntourage(members)
	case TabSponsors:
		v.Sponsors, err = d.api.ListPrincipalSponsors(ctx)
	}
	if err != nil {
		return v, fmt.Errorf("failed to load %s: %w", tab, err)
	}
	return v, nil
}

// LoadError is the banner text for a failed Load.
func LoadError(tab Tab) string {
	switch tab {
	case TabRequests:
		return "Failed to load guest requests"
	case TabEntourage:
		return "Failed to load entourage"
	case TabSponsors:
		return "Failed to load principal sponsors"
	}
	return "Failed to load guest list"
}

// Values are submitted form fields.
type Values map[string]string

func (v Values) get(key string) string {
	return strings.TrimSpace(v[key])
}

// Apply runs one mutation and returns the banner describing its outcome.
// Guest mutations publish "rsvp-updated", entourage mutations
// "entourage-updated".
func (d *Dashboard) Apply(ctx context.Context, tab Tab, op Op, v Values) Banner {
	msgs, ok := messages[tab][op]
	if !ok {
		return Banner{Kind: BannerError, Message: ErrUnsupported.Error()}
	}

	err := d.apply(ctx, tab, op, v)
	if err != nil {
		d.log.Error().Err(err).Str("tab", string(tab)).Str("op", string(op)).Msg("dashboard mutation failed")
		return Banner{Kind: BannerError, Message: errorMessage(err, msgs.failure)}
	}

	switch tab {
	case TabGuests:
		d.bus.Publish(events.RSVPUpdated)
	case TabRequests:
		if op == OpPromote {
			d.bus.Publish(events.RSVPUpdated)
		}
	case TabEntourage:
		d.bus.Publish(events.EntourageUpdated)
	}

	success := msgs.success
	if op == OpPromote {
		success = fmt.Sprintf(success, v.get("Name"))
	}
	return Banner{Kind: BannerSuccess, Message: success}
}

func (d *Dashboard) apply(ctx context.Context, tab Tab, op Op, v Values) error {
	switch tab {
	case TabGuests:
		g := models.Guest{Name: v.get("Name"), Email: v.get("Email"), RSVP: v.get("RSVP"), Message: v.get("Message")}
		switch op {
		case OpCreate:
			return d.api.CreateGuest(ctx, g)
		case OpUpdate:
			return d.api.UpdateGuest(ctx, g)
		case OpDelete:
			return d.api.DeleteGuest(ctx, g.Name)
		}

	case TabRequests:
		r := models.GuestRequest{Name: v.get("Name"), Email: v.get("Email"), Phone: v.get("Phone"), RSVP: v.get("RSVP"), Message: v.get("Message")}
		switch op {
		case OpUpdate:
			return d.api.UpdateGuestRequest(ctx, r)
		case OpDelete:
			return d.api.DeleteGuestRequest(ctx, r.Name)
		case OpPromote:
			return d.requests.Promote(ctx, r)
		}

	case TabEntourage:
		m := models.EntourageMember{Name: v.get("Name"), RoleCategory: v.get("RoleCategory"), RoleTitle: v.get("RoleTitle"), Email: v.get("Email")}
		switch op {
		case OpCreate:
			return d.api.CreateEntourageMember(ctx, m)
		case OpUpdate:
			return d.api.UpdateEntourageMember(ctx, v.get("originalName"), m)
		case OpDelete:
			return d.api.DeleteEntourageMember(ctx, m.Name)
		}

	case TabSponsors:
		s := models.PrincipalSponsor{MalePrincipalSponsor: v.get("MalePrincipalSponsor"), FemalePrincipalSponsor: v.get("FemalePrincipalSponsor")}
		switch op {
		case OpCreate:
			return d.api.CreatePrincipalSponsor(ctx, s)
		case OpUpdate:
			return d.api.UpdatePrincipalSponsor(ctx, v.get("originalName"), s)
		case OpDelete:
			return d.api.DeletePrincipalSponsor(ctx, s.MalePrincipalSponsor)
		}
	}
	return ErrUnsupported
}

// errorMessage shows validation messages as they are and replaces anything
// else with the generic failure text.
func errorMessage(err error, failure string) string {
	if apiclient.IsValidation(err) {
		return apiclient.Message(err)
	}
	if errors.Is(err, requests.ErrPartialPromotion) {
		return "Added to guest list, but the request could not be removed"
	}
	return failure
}

type opMessages struct {
	success string
	failure string
}

var messages = map[Tab]map[Op]opMessages{
	TabGuests: {
		OpCreate: {"Guest added successfully!", "Failed to add guest"},
		OpUpdate: {"Guest updated successfully!", "Failed to update guest"},
		OpDelete: {"Guest deleted successfully!", "Failed to delete guest"},
	},
	TabRequests: {
		OpUpdate:  {"Request updated successfully!", "Failed to update request"},
		OpDelete:  {"Request deleted successfully!", "Failed to delete request"},
		OpPromote: {"%s added to guest list!", "Failed to add request to guest list"},
	},
	TabEntourage: {
		OpCreate: {"Entourage member added successfully!", "Failed to add entourage member"},
		OpUpdate: {"Entourage member updated successfully!", "Failed to update entourage member"},
		OpDelete: {"Entourage member deleted successfully!", "Failed to delete entourage member"},
	},
	TabSponsors: {
		OpCreate: {"Principal sponsor added successfully!", "Failed to add principal sponsor"},
		OpUpdate: {"Principal sponsor updated successfully!", "Failed to update principal sponsor"},
		OpDelete: {"Principal sponsor deleted successfully!", "Failed to delete principal sponsor"},
	},
}

// DeletePrompt builds the confirmation for deleting the record keyed by key.
func DeletePrompt(tab Tab, key string) Prompt {
	p := Prompt{
		Action:   fmt.Sprintf("/admin/%s/%s", tab, OpDelete),
		KeyField: "Name",
		Key:      key,
	}
	switch tab {
	case TabGuests:
		p.Title = "Delete Guest"
		p.Message = fmt.Sprintf("Are you sure you want to delete %s?", key)
	case TabRequests:
		p.Title = "Delete Request"
		p.Message = fmt.Sprintf("Are you sure you want to delete the request from %s?", key)
	case TabEntourage:
		p.Title = "Delete Member"
		p.Message = fmt.Sprintf("Are you sure you want to delete %s?", key)
	case TabSponsors:
		p.Title = "Delete Sponsors"
		p.Message = fmt.Sprintf("Are you sure you want to delete %s?", key)
		p.KeyField = "MalePrincipalSponsor"
	}
	return p
}
