package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Component(newWithWriter(&buf, "debug", "json"), "proxy")

	l.Debug().Str("collection", "guests").Msg("list")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "proxy" || entry["collection"] != "guests" || entry["level"] != "debug" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "chatty", "json")

	l.Debug().Msg("hidden")
	l.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unknown level should fall back to info, got %q", out)
	}
}
