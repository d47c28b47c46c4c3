// Package sheets talks to the spreadsheet script endpoints that hold the
// guest data. Each collection lives behind its own URL. GET lists every row,
// POST creates a row or, with an "action" field, updates or deletes one.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/AlexTLDR/wedding/internal/config"
)

// Collection names a sheet.
type Collection string

const (
	Guests            Collection = "guests"
	GuestRequests     Collection = "guest-requests"
	Entourage         Collection = "entourage"
	PrincipalSponsors Collection = "principal-sponsors"
)

// Collections lists every sheet in dashboard order.
var Collections = []Collection{Guests, GuestRequests, Entourage, PrincipalSponsors}

// Actions understood by the script endpoints on POST.
const (
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// scriptScope lets a service account call scripts deployed for "anyone
// within the domain".
const scriptScope = "https://www.googleapis.com/auth/drive.readonly"

const maxResponseBytes = 10 << 20

// ErrUpstream is returned when a script endpoint answers with a non-2xx
// status or a body that is not JSON.
var ErrUpstream = errors.New("sheet store error")

// Client calls the script endpoints. It keeps no state besides the URLs.
type Client struct {
	httpClient *http.Client
	urls       map[Collection]string
	log        zerolog.Logger
}

// New creates a client for the given collection URLs.
func New(urls map[Collection]string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, urls: urls, log: log}
}

// FromConfig creates a client from the environment configuration. With
// GoogleAuth set, requests carry a bearer token from the application default
// credentials.
func FromConfig(ctx context.Context, cfg config.SheetsConfig, log zerolog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.GoogleAuth {
		ts, err := google.DefaultTokenSource(ctx, scriptScope)
		if err != nil {
			return nil, fmt.Errorf("failed to load google credentials: %w", err)
		}
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = cfg.Timeout
	}

	urls := map[Collection]string{
		Guests:            cfg.GuestsURL,
		GuestRequests:     cfg.GuestRequestsURL,
		Entourage:         cfg.EntourageURL,
		PrincipalSponsors: cfg.PrincipalSponsorsURL,
	}
	return New(urls, httpClient, log), nil
}

// List fetches every row of a collection as raw JSON.
func (c *Client) List(ctx context.Context, coll Collection) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, coll, nil)
}

// Post sends payload to a collection and returns the script's JSON answer.
// Scripts cannot set status codes, so an answer of {"success":false} is
// reported as ErrUpstream too.
func (c *Client) Post(ctx context.Context, coll Collection, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", coll, err)
	}
	raw, err := c.do(ctx, http.MethodPost, coll, body)
	if err != nil {
		return nil, err
	}

	var result scriptResult
	if json.Unmarshal(raw, &result) == nil && result.Success != nil && !*result.Success {
		c.log.Warn().Str("collection", string(coll)).Str("error", result.Error).Msg("sheet script reported failure")
		return nil, fmt.Errorf("%w: %s: %s", ErrUpstream, coll, result.Error)
	}
	return raw, nil
}

// scriptResult is the answer shape of the script endpoints on POST.
type scriptResult struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method string, coll Collection, body []byte) (json.RawMessage, error) {
	url, ok := c.urls[coll]
	if !ok || url == "" {
		return nil, fmt.Errorf("no endpoint configured for %s", coll)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", coll, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("collection", string(coll)).Str("method", method).Msg("sheet request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s sheet: %w", coll, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", coll, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().
			Str("collection", string(coll)).
			Int("status", resp.StatusCode).
			Bytes("body", truncate(data, 512)).
			Msg("sheet store returned an error status")
		return nil, fmt.Errorf("%w: %s answered %d", ErrUpstream, coll, resp.StatusCode)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s answered with invalid JSON", ErrUpstream, coll)
	}

	return json.RawMessage(data), nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
