// Package apiclient is a typed client for the /api collection routes.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AlexTLDR/wedding/internal/models"
)

// Error is a non-2xx answer from an /api route.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// IsValidation reports whether err is a 400 from the routes, i.e. the
// request was rejected before reaching the sheet store.
func IsValidation(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// Client calls the /api routes rooted at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client. A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// Guests

func (c *Client) ListGuests(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	err := c.do(ctx, http.MethodGet, "/api/guests", nil, &guests)
	return guests, err
}

func (c *Client) CreateGuest(ctx context.Context, g models.Guest) error {
	return c.do(ctx, http.MethodPost, "/api/guests", g, nil)
}

func (c *Client) UpdateGuest(ctx context.Context, g models.Guest) error {
	return c.do(ctx, http.MethodPut, "/api/guests", g, nil)
}

func (c *Client) DeleteGuest(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/api/guests", map[string]string{"Name": name}, nil)
}

// Guest requests

func (c *Client) ListGuestRequests(ctx context.Context) ([]models.GuestRequest, error) {
	var reqs []models.GuestRequest
	err := c.do(ctx, http.MethodGet, "/api/guest-requests", nil, &reqs)
	return reqs, err
}

func (c *Client) CreateGuestRequest(ctx context.Context, r models.GuestRequest) error {
	return c.do(ctx, http.MethodPost, "/api/guest-requests", r, nil)
}

func (c *Client) UpdateGuestRequest(ctx context.Context, r models.GuestRequest) error {
	return c.do(ctx, http.MethodPut, "/api/guest-requests", r, nil)
}

func (c *Client) DeleteGuestRequest(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/api/guest-requests", map[string]string{"Name": name}, nil)
}

// Entourage

func (c *Client) ListEntourage(ctx context.Context) ([]models.EntourageMember, error) {
	var members []models.EntourageMember
	err := c.do(ctx, http.MethodGet, "/api/entourage", nil, &members)
	return members, err
}

func (c *Client) CreateEntourageMember(ctx context.Context, m models.EntourageMember) error {
	return c.do(ctx, http.MethodPost, "/api/entourage", m, nil)
}

// UpdateEntourageMember overwrites the member currently named originalName.
func (c *Client) UpdateEntourageMember(ctx context.Context, originalName string, m models.EntourageMember) error {
	body := struct {
		OriginalName string `json:"originalName"`
		models.EntourageMember
	}{originalName, m}
	return c.do(ctx, http.MethodPut, "/api/entourage", body, nil)
}

func (c *Client) DeleteEntourageMember(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/api/entourage", map[string]string{"Name": name}, nil)
}

// Principal sponsors

func (c *Client) ListPrincipalSponsors(ctx context.Context) ([]models.PrincipalSponsor, error) {
	var sponsors []models.PrincipalSponsor
	err := c.do(ctx, http.MethodGet, "/api/principal-sponsor", nil, &sponsors)
	return sponsors, err
}

func (c *Client) CreatePrincipalSponsor(ctx context.Context, s models.PrincipalSponsor) error {
	return c.do(ctx, http.MethodPost, "/api/principal-sponsor", s, nil)
}

// UpdatePrincipalSponsor overwrites the pair whose male sponsor is
// originalName.
func (c *Client) UpdatePrincipalSponsor(ctx context.Context, originalName string, s models.PrincipalSponsor) error {
	body := struct {
		OriginalName string `json:"originalName"`
		models.PrincipalSponsor
	}{originalName, s}
	return c.do(ctx, http.MethodPut, "/api/principal-sponsor", body, nil)
}

func (c *Client) DeletePrincipalSponsor(ctx context.Context, male string) error {
	return c.do(ctx, http.MethodDelete, "/api/principal-sponsor", map[string]string{"MalePrincipalSponsor": male}, nil)
}
