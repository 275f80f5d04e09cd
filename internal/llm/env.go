package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/abhisek/edugenius/internal/logger"
)

// EnvProvider resolves its configuration from the process environment on
// every Generate call. A missing credential fails the call with
// *ErrMissingCredential before any request is issued. The built provider
// is reused for as long as the resolved configuration stays the same.
type EnvProvider struct {
	log   *logger.Logger
	load  func() Config
	build func(context.Context, Config, *logger.Logger) (Provider, error)

	mu     sync.Mutex
	key    string
	cached Provider
}

// NewProviderFromEnv returns an EnvProvider reading ResolveConfig.
func NewProviderFromEnv(log *logger.Logger) *EnvProvider {
	if log == nil {
		log = logger.Nop()
	}
	return &EnvProvider{log: log, load: ResolveConfig, build: NewProvider}
}

func (p *EnvProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	inner, err := p.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return inner.Generate(ctx, req)
}

// ModelID reports the model the current environment selects.
func (p *EnvProvider) ModelID() string {
	return p.load().ModelName()
}

func (p *EnvProvider) resolve(ctx context.Context) (Provider, error) {
	cfg := p.load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key := fingerprint(cfg)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil && p.key == key {
		return p.cached, nil
	}
	prov, err := p.build(ctx, cfg, p.log)
	if err != nil {
		return nil, err
	}
	p.log.Debug("llm provider ready", "provider", cfg.Provider, "model", prov.ModelID())
	p.cached, p.key = prov, key
	return prov, nil
}

// fingerprint identifies a Config without keeping the raw keys around.
func fingerprint(cfg Config) string {
	h := sha256.New()
	for _, s := range []string{
		cfg.Provider,
		cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL,
		cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL,
		cfg.Anthropic.APIKey, cfg.Anthropic.Model,
		cfg.OpenRouter.APIKey, cfg.OpenRouter.Model, cfg.OpenRouter.BaseURL,
	} {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
