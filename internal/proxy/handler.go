// Package proxy exposes the sheet collections under /api. Each route turns
// GET/POST/PUT/DELETE into the sheet store's GET/POST protocol, validating
// and defaulting request bodies first.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/sheets"
)

const maxBodyBytes = 1 << 20

// Store is the subset of the sheet client the routes need.
type Store interface {
	List(ctx context.Context, coll sheets.Collection) (json.RawMessage, error)
	Post(ctx context.Context, coll sheets.Collection, payload any) (json.RawMessage, error)
}

// Handler serves one collection route.
type Handler struct {
	store Store
	route Route
	log   zerolog.Logger
}

// New creates the handler for route.
func New(store Store, route Route, log zerolog.Logger) *Handler {
	return &Handler{
		store: store,
		route: route,
		log:   log.With().Str("collection", string(route.Collection)).Logger(),
	}
}

// Register mounts every collection route on mux.
func Register(mux *http.ServeMux, store Store, phoneRegion string, log zerolog.Logger) {
	for _, route := range Routes(phoneRegion) {
		mux.Handle(route.Path, New(store, route, log))
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.mutate(w, r, h.route.Create, h.route.Messages.Create, http.StatusCreated)
	case http.MethodPut:
		h.mutate(w, r, h.route.Update, h.route.Messages.Update, http.StatusOK)
	case http.MethodDelete:
		h.mutate(w, r, h.deletePayload, h.route.Messages.Delete, http.StatusOK)
	default:
		w.Header().Set("Allow", "GET, POST, PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	raw, err := h.store.List(r.Context(), h.route.Collection)
	if err != nil {
		h.logger(r).Error().Err(err).Msg(h.route.Messages.List)
		writeError(w, http.StatusInternalServerError, h.route.Messages.List)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, build func(fields) (any, error), failure string, status int) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	payload, err := build(body)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		h.logger(r).Error().Err(err).Msg("failed to build payload")
		writeError(w, http.StatusInternalServerError, failure)
		return
	}

	raw, err := h.store.Post(r.Context(), h.route.Collection, payload)
	if err != nil {
		h.logger(r).Error().Err(err).Msg(failure)
		writeError(w, http.StatusInternalServerError, failure)
		return
	}
	writeRaw(w, status, raw)
}

func (h *Handler) deletePayload(f fields) (any, error) {
	key, err := f.required(h.route.Key, h.route.KeyRequired)
	if err != nil {
		return nil, err
	}
	return map[string]string{"action": sheets.ActionDelete, h.route.Key: key}, nil
}

// logger prefers the request-scoped logger installed by the server
// middleware.
func (h *Handler) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		scoped := l.With().Str("collection", string(h.route.Collection)).Logger()
		return &scoped
	}
	return &h.log
}

func decodeBody(w http.ResponseWriter, r *http.Request) (fields, bool) {
	var body fields
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil || body == nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, false
	}
	return body, true
}

func writeRaw(w http.ResponseWriter, status int, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
