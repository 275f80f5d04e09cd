package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/edugenius/internal/logger"
)

// LoggingProvider is a decorator that logs every LLM request.
type LoggingProvider struct {
	inner    Provider
	provider string
	log      *logger.Logger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, providerName string, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, provider: providerName, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	l.log.Debug("llm request", "purpose", purpose, "body", serializeRequest(req))

	resp, err := l.inner.Generate(ctx, req)

	fields := []interface{}{
		"purpose", purpose,
		"provider", l.provider,
		"model", l.inner.ModelID(),
		"latency_ms", time.Since(start).Milliseconds(),
		"success", err == nil,
	}

	if id := RequestIDFrom(ctx); id != "" {
		fields = append(fields, "request_id", id)
	}

	if resp != nil {
		fields = append(fields,
			"served_model", resp.Model,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens,
			"stop_reason", resp.StopReason,
		)
		if cost := LookupCost(resp.Model); cost != nil {
			fields = append(fields, "cost_usd", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens))
		}
	}

	if err != nil {
		l.log.Warn("llm request failed", append(fields, "error", err.Error())...)
		return resp, err
	}

	l.log.Info("llm request", fields...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
// Blob payloads are summarized, not dumped.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n")
		for _, blob := range m.Blobs {
			fmt.Fprintf(&b, "[blob: %s, %d bytes]\n", blob.MIMEType, len(blob.Data))
		}
		b.WriteString("\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
