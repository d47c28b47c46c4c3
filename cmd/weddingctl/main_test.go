package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/AlexTLDR/wedding/internal/apiclient"
	"github.com/AlexTLDR/wedding/internal/models"
	"github.com/AlexTLDR/wedding/internal/testutil"
)

func run(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(zerolog.Nop())
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", apiURL}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGuestsList(t *testing.T) {
	url := testutil.API(t, testutil.SheetStore(t))
	api := apiclient.New(url, nil)
	if err := api.CreateGuest(context.Background(), models.Guest{Name: "Ana Cruz", RSVP: models.RSVPYes}); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, url, "guests", "list")
	if err != nil {
		t.Fatalf("guests list error = %v", err)
	}
	if !strings.Contains(out, "Ana Cruz") || !strings.Contains(out, "NAME") {
		t.Errorf("output = %q", out)
	}
}

func TestRequestsPromote(t *testing.T) {
	url := testutil.API(t, testutil.SheetStore(t))
	api := apiclient.New(url, nil)
	ctx := context.Background()
	if err := api.CreateGuestRequest(ctx, models.GuestRequest{Name: "Ben Reyes", Email: "ben@example.com"}); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, url, "requests", "promote", "nobody"); err == nil {
		t.Error("promote of unknown request should fail")
	}

	out, err := run(t, url, "requests", "promote", "ben reyes")
	if err != nil {
		t.Fatalf("promote error = %v", err)
	}
	if !strings.Contains(out, "Ben Reyes added to guest list!") {
		t.Errorf("output = %q", out)
	}

	reqs, err := api.ListGuestRequests(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 0 {
		t.Errorf("requests left = %v", reqs)
	}
	guests, err := api.ListGuests(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(guests) != 1 || guests[0].Email != "ben@example.com" {
		t.Errorf("guests = %v", guests)
	}
}

func TestExport(t *testing.T) {
	url := testutil.API(t, testutil.SheetStore(t))
	dir := t.TempDir()

	tests := []struct {
		format  string
		wantErr bool
	}{
		{"csv", false},
		{"xlsx", false},
		{"pdf", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(dir, "out."+tt.format)
			_, err := run(t, url, "export", tt.format, path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("export error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			info, err := os.Stat(path)
			if err != nil || info.Size() == 0 {
				t.Errorf("export file missing or empty: %v", err)
			}
		})
	}
}
