// Package sheetstore serves the spreadsheet script protocol on top of a SQL
// database. It stands in for the hosted script endpoints during development
// and in tests: GET lists rows, POST appends a row or, with action "update"
// or "delete", changes the first row matching the key.
package sheetstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/database"
)

// Store is the row storage behind the handler.
type Store interface {
	ListRows(ctx context.Context, sheet database.Sheet) ([]database.Row, error)
	AppendRow(ctx context.Context, sheet database.Sheet, values map[string]string) error
	UpdateRow(ctx context.Context, sheet database.Sheet, key string, values map[string]string) (bool, error)
	DeleteRow(ctx context.Context, sheet database.Sheet, key string) (bool, error)
}

type Handler struct {
	store Store
	log   zerolog.Logger
	mux   *http.ServeMux
}

// result mirrors what the hosted scripts answer. They cannot set an HTTP
// status, so failures are reported in the body with a 200.
type result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func New(store Store, log zerolog.Logger) *Handler {
	h := &Handler{store: store, log: log, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /{collection}", h.handleList)
	h.mux.HandleFunc("POST /{collection}", h.handlePost)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) sheet(w http.ResponseWriter, r *http.Request) (database.Sheet, bool) {
	sheet, ok := database.Sheets[r.PathValue("collection")]
	if !ok {
		writeJSON(w, http.StatusNotFound, result{Error: "Unknown sheet"})
		return database.Sheet{}, false
	}
	return sheet, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sheet, ok := h.sheet(w, r)
	if !ok {
		return
	}

	rows, err := h.store.ListRows(r.Context(), sheet)
	if err != nil {
		h.log.Error().Err(err).Str("sheet", sheet.Table).Msg("list failed")
		writeJSON(w, http.StatusInternalServerError, result{Error: "Failed to read sheet"})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	sheet, ok := h.sheet(w, r)
	if !ok {
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusOK, result{Error: "Invalid JSON"})
		return
	}
	action := stringValue(body["action"])
	originalName := stringValue(body["originalName"])
	values := make(map[string]string, len(body))
	for k, v := range body {
		if k == "action" || k == "originalName" {
			continue
		}
		values[k] = stringValue(v)
	}
	key := values[sheet.Key]

	var err error
	var res result
	switch action {
	case "":
		err = h.store.AppendRow(r.Context(), sheet, values)
		res = result{Success: true, Message: "Row added"}
	case "update":
		if originalName != "" {
			key = originalName
		}
		var found bool
		found, err = h.store.UpdateRow(r.Context(), sheet, key, values)
		res = result{Success: found, Message: "Row updated"}
		if !found {
			res = result{Error: fmt.Sprintf("%s not found", key)}
		}
	case "delete":
		var found bool
		found, err = h.store.DeleteRow(r.Context(), sheet, key)
		res = result{Success: found, Message: "Row deleted"}
		if !found {
			res = result{Error: fmt.Sprintf("%s not found", key)}
		}
	default:
		res = result{Error: fmt.Sprintf("Unknown action %q", action)}
	}
	if err != nil {
		h.log.Error().Err(err).Str("sheet", sheet.Table).Str("action", action).Msg("write failed")
		writeJSON(w, http.StatusInternalServerError, result{Error: "Failed to write sheet"})
		return
	}

	h.log.Debug().Str("sheet", sheet.Table).Str("action", action).Str("key", key).Bool("success", res.Success).Msg("sheet write")
	writeJSON(w, http.StatusOK, res)
}

func stringValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
