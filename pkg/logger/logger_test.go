package logx

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewBindsServiceField(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Config{})
	logger.Info().Msg("ready")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if entry["service"] != "relaydesk" {
		t.Fatalf("service = %v", entry["service"])
	}
	if entry["message"] != "ready" {
		t.Fatalf("message = %v", entry["message"])
	}
}

func TestNewLevelFromConfig(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer
	quietLogger := New(&quiet, Config{})
	quietLogger.Debug().Msg("hidden")
	if quiet.Len() != 0 {
		t.Fatalf("debug line emitted at info level: %s", quiet.String())
	}

	var verbose bytes.Buffer
	verboseLogger := New(&verbose, Config{Debug: true})
	verboseLogger.Debug().Msg("visible")
	if verbose.Len() == 0 {
		t.Fatal("debug line suppressed with debug enabled")
	}
}
