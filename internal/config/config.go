// Package config loads server and generation settings from defaults, an
// optional YAML file and EDUGENIUS_* environment variables, in that order.
// LLM provider settings are not part of it; see llm.ResolveConfig.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/edugenius/internal/intake"
	"github.com/abhisek/edugenius/internal/modulegen"
)

// Config holds application settings.
type Config struct {
	// Addr is the listen address of the web server.
	Addr string `yaml:"addr"`

	// SessionSecret signs the session cookie. When empty a random secret
	// is generated at startup.
	SessionSecret string `yaml:"session_secret"`

	// QuestionCount is the number of questions requested per module.
	QuestionCount int `yaml:"question_count"`

	// LogMode is "dev" or "prod".
	LogMode string `yaml:"log_mode"`

	// MaxAttachmentBytes caps a single uploaded image.
	MaxAttachmentBytes int64 `yaml:"max_attachment_bytes"`

	// CORSOrigins lists origins allowed to call the JSON API. Empty allows all.
	CORSOrigins []string `yaml:"cors_origins"`

	// WorkspaceTTL is how long an idle browser workspace is kept.
	WorkspaceTTL time.Duration `yaml:"workspace_ttl"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:               ":8080",
		QuestionCount:      modulegen.DefaultQuestionCount,
		LogMode:            "dev",
		MaxAttachmentBytes: intake.DefaultMaxBytes,
		WorkspaceTTL:       2 * time.Hour,
	}
}

// Load reads the YAML file at path, if any, and applies environment
// overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("EDUGENIUS_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("EDUGENIUS_SESSION_SECRET"); v != "" {
		c.SessionSecret = v
	}
	if v := os.Getenv("EDUGENIUS_LOG_MODE"); v != "" {
		c.LogMode = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("EDUGENIUS_QUESTION_COUNT"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("EDUGENIUS_QUESTION_COUNT: %w", err)
		}
		c.QuestionCount = n
	}
	if v := os.Getenv("EDUGENIUS_MAX_ATTACHMENT_BYTES"); v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("EDUGENIUS_MAX_ATTACHMENT_BYTES: %w", err)
		}
		c.MaxAttachmentBytes = n
	}
	if v := os.Getenv("EDUGENIUS_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}
	if v := os.Getenv("EDUGENIUS_WORKSPACE_TTL"); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("EDUGENIUS_WORKSPACE_TTL: %w", err)
		}
		c.WorkspaceTTL = d
	}
	return nil
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("addr must not be empty")
	case c.QuestionCount < 1:
		return fmt.Errorf("question count must be at least 1, got %d", c.QuestionCount)
	case c.MaxAttachmentBytes < 1:
		return fmt.Errorf("max attachment bytes must be positive, got %d", c.MaxAttachmentBytes)
	case c.WorkspaceTTL <= 0:
		return fmt.Errorf("workspace ttl must be positive, got %s", c.WorkspaceTTL)
	case c.LogMode != "dev" && c.LogMode != "prod":
		return fmt.Errorf("log mode must be dev or prod, got %q", c.LogMode)
	}
	return nil
}

// GeneratorConfig returns the module generator settings.
func (c Config) GeneratorConfig() modulegen.Config {
	gc := modulegen.DefaultConfig()
	gc.QuestionCount = c.QuestionCount
	return gc
}
