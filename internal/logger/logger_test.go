package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs_RedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{
		"api_key", "sk-live",
		"Session_Secret", "abc",
		"subject", "Fisika",
	})
	want := []interface{}{
		"api_key", "[REDACTED]",
		"Session_Secret", "[REDACTED]",
		"subject", "Fisika",
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kv[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIsRedactKey(t *testing.T) {
	tests := map[string]bool{
		"token":         true,
		"access_token":  true,
		"x-api-key":     true,
		"apikey":        true,
		"set-cookie":    true,
		"authorization": true,
		"input_tokens":  false,
		"output_tokens": false,
		"total_tokens":  false,
		"cost_usd":      false,
		"request_id":    false,
	}
	for key, want := range tests {
		if got := isRedactKey(key); got != want {
			t.Errorf("isRedactKey(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	got := sanitizeKVs([]interface{}{"topic", "Gerak Lurus", "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestSanitizeValue_NestedMap(t *testing.T) {
	got := sanitizeValue("headers", map[string]interface{}{
		"Authorization": "Bearer x",
		"Accept":        "text/html",
	}).(map[string]interface{})
	if got["Authorization"] != "[REDACTED]" {
		t.Errorf("Authorization = %v, want redacted", got["Authorization"])
	}
	if got["Accept"] != "text/html" {
		t.Errorf("Accept = %v, want passthrough", got["Accept"])
	}
}

func TestLogger_WritesSanitizedFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "test").Info("called", "api_key", "k", "model", "gemini")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["api_key"] != "[REDACTED]" {
		t.Errorf("api_key = %v, want redacted", fields["api_key"])
	}
	if fields["model"] != "gemini" {
		t.Errorf("model = %v, want gemini", fields["model"])
	}
	if fields["component"] != "test" {
		t.Errorf("component = %v, want test", fields["component"])
	}
}
