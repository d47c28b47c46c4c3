package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

type Config struct {
	// HTTP
	Port    string
	BaseURL string

	// Logging
	LogLevel  string
	LogFormat string

	// Session
	SessionSecret string

	// Admin
	AdminPassword      string
	AdminPasswordHash  string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	AdminEmails        []string

	// Remote sheet store
	Sheets SheetsConfig

	// Event Details
	EventDate        time.Time
	CoupleNames      string
	CeremonyVenue    string
	CeremonyAddress  string
	ReceptionVenue   string
	ReceptionAddress string
	PhoneRegion      string

	// Delays before views refetch after an update, giving the sheet time
	// to settle.
	RSVPRefreshDelay      time.Duration
	EntourageRefreshDelay time.Duration

	Backup BackupConfig

	// Stand-in sheet store
	DatabaseURL string
}

// SheetsConfig holds one script endpoint per collection.
type SheetsConfig struct {
	GuestsURL            string
	GuestRequestsURL     string
	EntourageURL         string
	PrincipalSponsorsURL string
	GoogleAuth           bool
	Timeout              time.Duration
}

// BackupConfig points at an S3 compatible bucket.
type BackupConfig struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
	RetentionDays   int
	// Hour of the daily snapshot in the event timezone; negative disables
	// the schedule.
	Hour int
}

// Enabled reports whether enough is configured to upload snapshots.
func (b BackupConfig) Enabled() bool {
	return b.Bucket != "" && b.AccessKeyID != "" && b.SecretAccessKey != ""
}

// GoogleLoginEnabled reports whether admin sign-in through Google is set up.
func (c *Config) GoogleLoginEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// DefaultDatabaseURL is the SQLite file used by the local sheet store.
const DefaultDatabaseURL = "wedding-sheets.db"

func Load() (*Config, error) {
	sheetBase := strings.TrimRight(getEnv("SHEET_BASE_URL", "http://localhost:8081"), "/")

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		SessionSecret:      getEnv("SESSION_SECRET", "change-me-in-production"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		Sheets: SheetsConfig{
			GuestsURL:            getEnv("SHEET_GUESTS_URL", sheetBase+"/guests"),
			GuestRequestsURL:     getEnv("SHEET_GUEST_REQUESTS_URL", sheetBase+"/guest-requests"),
			EntourageURL:         getEnv("SHEET_ENTOURAGE_URL", sheetBase+"/entourage"),
			PrincipalSponsorsURL: getEnv("SHEET_PRINCIPAL_SPONSORS_URL", sheetBase+"/principal-sponsors"),
		},
		CoupleNames:      getEnv("COUPLE_NAMES", ""),
		CeremonyVenue:    getEnv("CEREMONY_VENUE", ""),
		CeremonyAddress:  getEnv("CEREMONY_ADDRESS", ""),
		ReceptionVenue:   getEnv("RECEPTION_VENUE", ""),
		ReceptionAddress: getEnv("RECEPTION_ADDRESS", ""),
		PhoneRegion:      getEnv("PHONE_REGION", "PH"),
		Backup: BackupConfig{
			Bucket:          getEnv("BACKUP_BUCKET_NAME", ""),
			Endpoint:        getEnv("BACKUP_ENDPOINT_URL", ""),
			Region:          getEnv("BACKUP_REGION", "auto"),
			AccessKeyID:     getEnv("BACKUP_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("BACKUP_SECRET_ACCESS_KEY", ""),
			Prefix:          getEnv("BACKUP_PREFIX", "wedding"),
		},
		DatabaseURL: getEnv("DATABASE_URL", DefaultDatabaseURL),
	}

	// Parse admin emails
	adminEmailsStr := getEnv("ADMIN_EMAILS", "")
	if adminEmailsStr != "" {
		cfg.AdminEmails = strings.Split(adminEmailsStr, ",")
		for i := range cfg.AdminEmails {
			cfg.AdminEmails[i] = strings.TrimSpace(cfg.AdminEmails[i])
		}
	}

	var err error
	if cfg.Sheets.GoogleAuth, err = strconv.ParseBool(getEnv("SHEET_GOOGLE_AUTH", "false")); err != nil {
		return nil, fmt.Errorf("invalid SHEET_GOOGLE_AUTH: %w", err)
	}
	if cfg.Sheets.Timeout, err = time.ParseDuration(getEnv("SHEET_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid SHEET_TIMEOUT: %w", err)
	}
	if cfg.RSVPRefreshDelay, err = time.ParseDuration(getEnv("RSVP_REFRESH_DELAY", "2s")); err != nil {
		return nil, fmt.Errorf("invalid RSVP_REFRESH_DELAY: %w", err)
	}
	if cfg.EntourageRefreshDelay, err = time.ParseDuration(getEnv("ENTOURAGE_REFRESH_DELAY", "1s")); err != nil {
		return nil, fmt.Errorf("invalid ENTOURAGE_REFRESH_DELAY: %w", err)
	}
	if cfg.Backup.RetentionDays, err = strconv.Atoi(getEnv("BACKUP_RETENTION_DAYS", "30")); err != nil {
		return nil, fmt.Errorf("invalid BACKUP_RETENTION_DAYS: %w", err)
	}
	if cfg.Backup.Hour, err = strconv.Atoi(getEnv("BACKUP_HOUR", "3")); err != nil || cfg.Backup.Hour > 23 {
		return nil, fmt.Errorf("invalid BACKUP_HOUR: %q", getEnv("BACKUP_HOUR", "3"))
	}

	// Parse event date
	loc, err := time.LoadLocation(getEnv("EVENT_TIMEZONE", "Asia/Manila"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_TIMEZONE: %w", err)
	}
	eventDate, err := time.Parse(time.RFC3339, getEnv("EVENT_DATE", "2026-12-12T15:00:00+08:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_DATE format: %w", err)
	}
	cfg.EventDate = eventDate.In(loc)

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" && !cfg.GoogleLoginEnabled() {
		return nil, fmt.Errorf("no admin login configured: set ADMIN_PASSWORD, ADMIN_PASSWORD_HASH or GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
