// Package requests handles "request to join" submissions from people not on
// the guest list, and their promotion to guests by an admin.
package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/models"
	"github.com/AlexTLDR/wedding/internal/utils"
)

// ErrPartialPromotion means the guest was created but the request could not
// be deleted, so both records now exist.
var ErrPartialPromotion = errors.New("guest added but the request was not removed")

// FieldError is a submission rejected before any remote call.
type FieldError struct {
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// API is the part of the /api client used here.
type API interface {
	CreateGuestRequest(ctx context.Context, r models.GuestRequest) error
	CreateGuest(ctx context.Context, g models.Guest) error
	DeleteGuestRequest(ctx context.Context, name string) error
}

type Service struct {
	api    API
	region string
	log    zerolog.Logger
}

// New creates the service. Phones without a country code are read in region.
func New(api API, region string, log zerolog.Logger) *Service {
	return &Service{api: api, region: region, log: log}
}

// Validate trims r and checks the required fields.
func Validate(r models.GuestRequest) (models.GuestRequest, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.RSVP = strings.TrimSpace(r.RSVP)
	r.Message = strings.TrimSpace(r.Message)

	switch {
	case r.Name == "":
		return r, &FieldError{Message: "Name is required"}
	case r.Email == "":
		return r, &FieldError{Message: "Email is required"}
	case !utils.IsValidEmail(r.Email):
		return r, &FieldError{Message: "Invalid email format"}
	}
	return r, nil
}

// Submit validates and stores a request. Duplicates are not detected.
func (s *Service) Submit(ctx context.Context, r models.GuestRequest) error {
	r, err := Validate(r)
	if err != nil {
		return err
	}
	r.Phone = utils.NormalizePhoneLenient(r.Phone, s.region)

	if err := s.api.CreateGuestRequest(ctx, r); err != nil {
		return fmt.Errorf("failed to submit guest request: %w", err)
	}
	s.log.Info().Str("name", r.Name).Msg("guest request submitted")
	return nil
}

// ConfirmPrompt is the question shown before promoting r.
func ConfirmPrompt(r models.GuestRequest) string {
	return fmt.Sprintf("Add %s to the guest list?", r.Name)
}

// Promote adds the requester to the guest list, then deletes the request.
// The two steps are not atomic. If the delete fails the error wraps
// ErrPartialPromotion and nothing is rolled back.
func (s *Service) Promote(ctx context.Context, r models.GuestRequest) error {
	guest := models.Guest{
		Name:    r.Name,
		Email:   models.EmailOrPending(r.Email),
		RSVP:    models.RSVPNone,
		Message: r.Message,
	}
	if err := s.api.CreateGuest(ctx, guest); err != nil {
		return fmt.Errorf("failed to add %s as guest: %w", r.Name, err)
	}

	if err := s.api.DeleteGuestRequest(ctx, r.Name); err != nil {
		s.log.Warn().Err(err).Str("name", r.Name).Msg("guest added but request not removed")
		return fmt.Errorf("%w: %w", ErrPartialPromotion, err)
	}

	s.log.Info().Str("name", r.Name).Msg("guest request promoted")
	return nil
}
