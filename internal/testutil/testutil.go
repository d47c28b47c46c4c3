// Package testutil starts the local sheet store and the /api routes for
// tests that need the whole request path.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/database"
	"github.com/AlexTLDR/wedding/internal/proxy"
	"github.com/AlexTLDR/wedding/internal/sheets"
	"github.com/AlexTLDR/wedding/internal/sheetstore"
	"github.com/AlexTLDR/wedding/internal/utils"
)

// SheetStore starts a sheet store backed by a fresh SQLite file and returns
// a client pointed at it.
func SheetStore(t *testing.T) *sheets.Client {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "sheets.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	srv := httptest.NewServer(sheetstore.New(db, zerolog.Nop()))
	t.Cleanup(srv.Close)

	urls := make(map[sheets.Collection]string, len(sheets.Collections))
	for _, coll := range sheets.Collections {
		urls[coll] = srv.URL + "/" + string(coll)
	}
	return sheets.New(urls, srv.Client(), zerolog.Nop())
}

// API starts the /api routes over store and returns the server base URL.
func API(t *testing.T, store proxy.Store) string {
	t.Helper()

	mux := http.NewServeMux()
	proxy.Register(mux, store, utils.DefaultPhoneRegion, zerolog.Nop())
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}
