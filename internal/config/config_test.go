package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "wedding2026")
	t.Setenv("SHEET_BASE_URL", "http://sheets.local/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sheets.GuestsURL != "http://sheets.local/guests" {
		t.Errorf("GuestsURL = %q", cfg.Sheets.GuestsURL)
	}
	if cfg.Sheets.PrincipalSponsorsURL != "http://sheets.local/principal-sponsors" {
		t.Errorf("PrincipalSponsorsURL = %q", cfg.Sheets.PrincipalSponsorsURL)
	}
	if cfg.RSVPRefreshDelay != 2*time.Second {
		t.Errorf("RSVPRefreshDelay = %v, want 2s", cfg.RSVPRefreshDelay)
	}
	if cfg.EntourageRefreshDelay != time.Second {
		t.Errorf("EntourageRefreshDelay = %v, want 1s", cfg.EntourageRefreshDelay)
	}
	if cfg.Sheets.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Sheets.Timeout)
	}
	if cfg.EventDate.Location().String() != "Asia/Manila" {
		t.Errorf("EventDate location = %v", cfg.EventDate.Location())
	}
	if cfg.Backup.Enabled() {
		t.Error("backup should be disabled without credentials")
	}
	if cfg.Backup.Hour != 3 || cfg.Backup.RetentionDays != 30 {
		t.Errorf("Backup = %+v", cfg.Backup)
	}
}

func TestLoadAdminEmails(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("ADMIN_EMAILS", " bride@example.com, groom@example.com ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[0] != "bride@example.com" || cfg.AdminEmails[1] != "groom@example.com" {
		t.Errorf("AdminEmails = %q", cfg.AdminEmails)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"no admin login", map[string]string{}},
		{"bad event date", map[string]string{"ADMIN_PASSWORD": "x", "EVENT_DATE": "next saturday"}},
		{"bad refresh delay", map[string]string{"ADMIN_PASSWORD": "x", "RSVP_REFRESH_DELAY": "soon"}},
		{"bad google auth flag", map[string]string{"ADMIN_PASSWORD": "x", "SHEET_GOOGLE_AUTH": "maybe"}},
		{"backup hour out of range", map[string]string{"ADMIN_PASSWORD": "x", "BACKUP_HOUR": "24"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADMIN_PASSWORD", "")
			t.Setenv("ADMIN_PASSWORD_HASH", "")
			t.Setenv("GOOGLE_CLIENT_ID", "")
			t.Setenv("GOOGLE_CLIENT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}
