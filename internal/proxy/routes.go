package proxy

import (
	"github.com/AlexTLDR/wedding/internal/models"
	"github.com/AlexTLDR/wedding/internal/sheets"
	"github.com/AlexTLDR/wedding/internal/utils"
)

// Messages are the generic errors reported when the sheet store fails.
type Messages struct {
	List   string
	Create string
	Update string
	Delete string
}

// Route describes one collection exposed under /api. Only the validation
// and the key field differ between collections.
type Route struct {
	Path       string
	Collection sheets.Collection
	// Key is the field identifying a row for delete.
	Key         string
	KeyRequired string
	Messages    Messages
	// Create and Update validate a request body and build the payload sent
	// to the sheet store. Update payloads carry action "update".
	Create func(f fields) (any, error)
	Update func(f fields) (any, error)
}

type guestPayload struct {
	Action string `json:"action,omitempty"`
	models.Guest
}

type guestRequestPayload struct {
	Action string `json:"action,omitempty"`
	models.GuestRequest
}

type entouragePayload struct {
	Action       string `json:"action,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
	models.EntourageMember
}

type sponsorPayload struct {
	Action       string `json:"action,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
	models.PrincipalSponsor
}

const nameRequired = "Name is required"

func guestFields(f fields) (models.Guest, error) {
	var g models.Guest
	err := collect(
		into(&g.Name, func() (string, error) { return f.required("Name", nameRequired) }),
		into(&g.Email, func() (string, error) { return f.email("Email") }),
		into(&g.RSVP, func() (string, error) { return f.optional("RSVP") }),
		into(&g.Message, func() (string, error) { return f.optional("Message") }),
	)
	return g, err
}

// GuestsRoute proxies the Guests sheet.
func GuestsRoute() Route {
	return Route{
		Path:        "/api/guests",
		Collection:  sheets.Guests,
		Key:         "Name",
		KeyRequired: nameRequired,
		Messages: Messages{
			List:   "Failed to fetch guests",
			Create: "Failed to add guest",
			Update: "Failed to update guest",
			Delete: "Failed to delete guest",
		},
		Create: func(f fields) (any, error) {
			g, err := guestFields(f)
			return guestPayload{Guest: g}, err
		},
		Update: func(f fields) (any, error) {
			g, err := guestFields(f)
			return guestPayload{Action: sheets.ActionUpdate, Guest: g}, err
		},
	}
}

// GuestRequestsRoute proxies the GuestRequests sheet. Phones are stored in
// E.164 form when they parse in region.
func GuestRequestsRoute(region string) Route {
	rest := func(f fields, req *models.GuestRequest) error {
		var phone string
		err := collect(
			into(&phone, func() (string, error) { return f.optional("Phone") }),
			into(&req.RSVP, func() (string, error) { return f.optional("RSVP") }),
			into(&req.Message, func() (string, error) { return f.optional("Message") }),
		)
		req.Phone = utils.NormalizePhoneLenient(phone, region)
		return err
	}

	return Route{
		Path:        "/api/guest-requests",
		Collection:  sheets.GuestRequests,
		Key:         "Name",
		KeyRequired: nameRequired,
		Messages: Messages{
			List:   "Failed to fetch guest requests",
			Create: "Failed to submit guest request",
			Update: "Failed to update guest request",
			Delete: "Failed to delete guest request",
		},
		Create: func(f fields) (any, error) {
			var req models.GuestRequest
			err := collect(
				into(&req.Name, func() (string, error) { return f.required("Name", nameRequired) }),
				into(&req.Email, func() (string, error) { return f.requiredEmail("Email") }),
				func() error { return rest(f, &req) },
			)
			return guestRequestPayload{GuestRequest: req}, err
		},
		Update: func(f fields) (any, error) {
			var req models.GuestRequest
			err := collect(
				into(&req.Name, func() (string, error) { return f.required("Name", nameRequired) }),
				into(&req.Email, func() (string, error) { return f.email("Email") }),
				func() error { return rest(f, &req) },
			)
			return guestRequestPayload{Action: sheets.ActionUpdate, GuestRequest: req}, err
		},
	}
}

func entourageFields(f fields) (models.EntourageMember, error) {
	var m models.EntourageMember
	err := collect(
		into(&m.Name, func() (string, error) { return f.required("Name", nameRequired) }),
		into(&m.RoleCategory, func() (string, error) { return f.optional("RoleCategory") }),
		into(&m.RoleTitle, func() (string, error) { return f.optional("RoleTitle") }),
		into(&m.Email, func() (string, error) { return f.email("Email") }),
	)
	return m, err
}

// EntourageRoute proxies the Entourage sheet. Updates find the row by
// originalName so a member can be renamed.
func EntourageRoute() Route {
	return Route{
		Path:        "/api/entourage",
		Collection:  sheets.Entourage,
		Key:         "Name",
		KeyRequired: nameRequired,
		Messages: Messages{
			List:   "Failed to fetch entourage",
			Create: "Failed to add entourage member",
			Update: "Failed to update entourage member",
			Delete: "Failed to delete entourage member",
		},
		Create: func(f fields) (any, error) {
			m, err := entourageFields(f)
			return entouragePayload{EntourageMember: m}, err
		},
		Update: func(f fields) (any, error) {
			m, err := entourageFields(f)
			if err != nil {
				return nil, err
			}
			original, err := f.optional("originalName")
			if original == "" {
				original = m.Name
			}
			return entouragePayload{Action: sheets.ActionUpdate, OriginalName: original, EntourageMember: m}, err
		},
	}
}

const sponsorRequired = "Male Principal Sponsor is required"

func sponsorFields(f fields) (models.PrincipalSponsor, error) {
	var s models.PrincipalSponsor
	err := collect(
		into(&s.MalePrincipalSponsor, func() (string, error) { return f.required("MalePrincipalSponsor", sponsorRequired) }),
		into(&s.FemalePrincipalSponsor, func() (string, error) { return f.optional("FemalePrincipalSponsor") }),
	)
	return s, err
}

// PrincipalSponsorsRoute proxies the PrincipalSponsors sheet, keyed by the
// male sponsor's name.
func PrincipalSponsorsRoute() Route {
	return Route{
		Path:        "/api/principal-sponsor",
		Collection:  sheets.PrincipalSponsors,
		Key:         "MalePrincipalSponsor",
		KeyRequired: sponsorRequired,
		Messages: Messages{
			List:   "Failed to fetch principal sponsors",
			Create: "Failed to add principal sponsor",
			Update: "Failed to update principal sponsor",
			Delete: "Failed to delete principal sponsor",
		},
		Create: func(f fields) (any, error) {
			s, err := sponsorFields(f)
			return sponsorPayload{PrincipalSponsor: s}, err
		},
		Update: func(f fields) (any, error) {
			s, err := sponsorFields(f)
			if err != nil {
				return nil, err
			}
			original, err := f.optional("originalName")
			if original == "" {
				original = s.MalePrincipalSponsor
			}
			return sponsorPayload{Action: sheets.ActionUpdate, OriginalName: original, PrincipalSponsor: s}, err
		},
	}
}

// Routes returns the four collection routes.
func Routes(phoneRegion string) []Route {
	return []Route{
		GuestsRoute(),
		GuestRequestsRoute(phoneRegion),
		EntourageRoute(),
		PrincipalSponsorsRoute(),
	}
}
