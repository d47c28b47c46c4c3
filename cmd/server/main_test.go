package main

import (
	"context"
	"strings"
	"testing"
)

func TestRunStartupErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"no admin login", map[string]string{}, "failed to load config"},
		{"bad password hash", map[string]string{"ADMIN_PASSWORD_HASH": "not-bcrypt"}, "failed to create server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"ADMIN_PASSWORD", "ADMIN_PASSWORD_HASH", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "BACKUP_BUCKET_NAME", "SHEET_GOOGLE_AUTH", "LOG_LEVEL"} {
				t.Setenv(k, "")
			}
			t.Setenv("LOG_LEVEL", "disabled")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := run(context.Background(), nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("run() error = %v, want %q", err, tt.want)
			}
		})
	}
}
