package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/edugenius/internal/logger"
)

func TestEnvProvider_MissingCredentialSkipsBuild(t *testing.T) {
	builds := 0
	p := &EnvProvider{
		log:  logger.Nop(),
		load: func() Config { return Config{Provider: "gemini"} },
		build: func(context.Context, Config, *logger.Logger) (Provider, error) {
			builds++
			return NewMockProvider(), nil
		},
	}

	_, err := p.Generate(context.Background(), Request{})
	var missing *ErrMissingCredential
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingCredential, got: %T (%v)", err, err)
	}
	if builds != 0 {
		t.Fatalf("expected no provider build, got %d", builds)
	}
}

func TestEnvProvider_ReusesProviderUntilConfigChanges(t *testing.T) {
	key := "k1"
	builds := 0
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
		MockResponse{Content: json.RawMessage(`{}`)},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := &EnvProvider{
		log: logger.Nop(),
		load: func() Config {
			cfg := DefaultConfig()
			cfg.Gemini.APIKey = key
			return cfg
		},
		build: func(context.Context, Config, *logger.Logger) (Provider, error) {
			builds++
			return mock, nil
		},
	}

	for i := 0; i < 2; i++ {
		if _, err := p.Generate(context.Background(), Request{}); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if builds != 1 {
		t.Fatalf("expected 1 build, got %d", builds)
	}

	key = "k2"
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("after key change: %v", err)
	}
	if builds != 2 {
		t.Fatalf("expected rebuild after key change, got %d builds", builds)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestEnvProvider_ModelID(t *testing.T) {
	p := &EnvProvider{
		log:  logger.Nop(),
		load: DefaultConfig,
	}
	if got := p.ModelID(); got != "gemini-3-flash-preview" {
		t.Fatalf("ModelID() = %q", got)
	}
}
