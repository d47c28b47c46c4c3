package models

import "strings"

// EmailPending is written in place of a missing email address.
const EmailPending = "Pending"

// RSVP answers stored in the Guests sheet. An empty value means the guest
// has not answered yet.
const (
	RSVPNone  = ""
	RSVPYes   = "Yes"
	RSVPNo    = "No"
	RSVPMaybe = "Maybe"
)

// Guest is a row of the Guests sheet. Name is the lookup key.
type Guest struct {
	Name    string `json:"Name"`
	Email   string `json:"Email"`
	RSVP    string `json:"RSVP"`
	Message string `json:"Message"`
}

// HasResponded reports whether the guest already answered the RSVP.
func (g Guest) HasResponded() bool {
	return strings.TrimSpace(g.RSVP) != ""
}

// GuestRequest is a row of the GuestRequests sheet, filled in by people who
// could not find themselves on the guest list.
type GuestRequest struct {
	Name    string `json:"Name"`
	Email   string `json:"Email"`
	Phone   string `json:"Phone"`
	RSVP    string `json:"RSVP"`
	Message string `json:"Message"`
}

// EntourageMember is a row of the Entourage sheet.
type EntourageMember struct {
	Name         string `json:"Name"`
	RoleCategory string `json:"RoleCategory"`
	RoleTitle    string `json:"RoleTitle"`
	Email        string `json:"Email"`
}

// PrincipalSponsor is a row of the PrincipalSponsors sheet. The male sponsor
// name is the lookup key.
type PrincipalSponsor struct {
	MalePrincipalSponsor   string `json:"MalePrincipalSponsor"`
	FemalePrincipalSponsor string `json:"FemalePrincipalSponsor"`
}

// DisplayEmail returns the email to show to a user, hiding the placeholder.
func DisplayEmail(email string) string {
	if email == EmailPending {
		return ""
	}
	return email
}

// EmailOrPending returns the trimmed email or the placeholder when empty.
func EmailOrPending(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return EmailPending
	}
	return email
}
