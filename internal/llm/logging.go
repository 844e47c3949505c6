package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abhisek/stemcoach/internal/store"
)

// eventLogger appends one llm_events row per Generate call, successful or
// not. Logging failures are reported on warn and never change the result.
type eventLogger struct {
	inner Provider
	repo  store.EventRepo
	warn  io.Writer
}

// WithLogging wraps p so every call lands in repo. A nil repo returns p
// unchanged.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	if repo == nil {
		return p
	}
	return &eventLogger{inner: p, repo: repo, warn: os.Stderr}
}

func providerName(p Provider) string {
	if n, ok := p.(Namer); ok {
		return n.Name()
	}
	return p.ModelID()
}

func (l *eventLogger) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    providerName(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     orDefault(req.Purpose, "unknown"),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	switch {
	case resp != nil:
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.Model = orDefault(resp.Model, ev.Model)
		ev.ResponseBody = string(resp.Content)
	case err != nil:
		// Keep what the model said even when it was rejected.
		var e *Error
		if errors.As(err, &e) {
			ev.ResponseBody = string(e.Content)
		}
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	if logErr := l.repo.AppendLLMRequest(ctx, ev); logErr != nil {
		fmt.Fprintf(l.warn, "warning: failed to log LLM request event: %v\n", logErr)
	}
	return resp, err
}

func (l *eventLogger) ModelID() string { return l.inner.ModelID() }
func (l *eventLogger) Name() string    { return providerName(l.inner) }

// orDefault returns s, or fallback when s is empty.
func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// transcript renders req the way the history screen shows it: one
// bracketed header per part.
func transcript(req Request) string {
	var b strings.Builder
	section := func(header, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", header, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
