// Package insight produces advisory text for investors. Every capability
// first asks a generative text service and, when that is not configured or
// fails in any way, answers from a deterministic local rule set. Callers
// always receive a usable result and never see the generator's errors.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single generator call.
const DefaultTimeout = 10 * time.Second

// ErrExternalService marks a failed or unusable generator response. It never
// leaves this package.
var ErrExternalService = errors.New("external text service failure")

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Outcome says which strategy produced a capability's result.
type Outcome string

const (
	// OutcomePrimary means the generator answered with a usable result.
	OutcomePrimary Outcome = "primary"
	// OutcomeFallback means the generator failed and the rules answered.
	OutcomeFallback Outcome = "fallback"
	// OutcomeUnconfigured means no generator is set up.
	OutcomeUnconfigured Outcome = "unconfigured"
)

// Recorder observes strategy outcomes per capability.
type Recorder interface {
	RecordInsight(capability string, outcome Outcome)
}

// Capability names, used in logs and metrics.
const (
	CapabilityPassword       = "password_strength"
	CapabilityDescription    = "product_description"
	CapabilityRecommendation = "recommendations"
	CapabilityPortfolio      = "portfolio_insights"
	CapabilityErrorSummary   = "error_summary"
)

// Engine runs the insight capabilities. It is safe for concurrent use.
type Engine struct {
	generator Generator
	timeout   time.Duration
	logger    *zap.SugaredLogger
	recorder  Recorder
}

// Option configures the engine.
type Option func(*Engine)

// WithTimeout sets the per-call generator deadline.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder sets the outcome recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// New creates an engine. A nil generator makes every capability use its
// local rules.
func New(generator Generator, opts ...Option) *Engine {
	e := &Engine{
		generator: generator,
		timeout:   DefaultTimeout,
		logger:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configured reports whether a generator is available.
func (e *Engine) Configured() bool {
	return e != nil && e.generator != nil
}

func (e *Engine) record(capability string, outcome Outcome) {
	if e.recorder != nil {
		e.recorder.RecordInsight(capability, outcome)
	}
}

// withFallback attempts primary exactly once under the engine deadline and
// returns its result, or the result of fallback when the generator is
// missing or primary fails for any reason.
func withFallback[T any](ctx context.Context, e *Engine, capability string, primary func(context.Context) (T, error), fallback func() T) T {
	if e.generator == nil {
		e.record(capability, OutcomeUnconfigured)
		return fallback()
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result, err := callPrimary(callCtx, primary)
	if err == nil {
		e.record(capability, OutcomePrimary)
		return result
	}

	e.logger.Warnw("Generative insight failed, using fallback",
		"capability", capability,
		"error", err,
	)
	e.record(capability, OutcomeFallback)
	return fallback()
}

// callPrimary runs primary and turns a panic into ErrExternalService.
func callPrimary[T any](ctx context.Context, primary func(context.Context) (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result, err = zero, fmt.Errorf("%w: panic: %v", ErrExternalService, r)
		}
	}()
	return primary(ctx)
}

// generate calls the generator and folds every failure into ErrExternalService.
func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	text, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("%w: %v", ErrExternalService, ctxErr)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrExternalService)
	}
	return text, nil
}

// generateJSON calls the generator and decodes its reply into out.
func (e *Engine) generateJSON(ctx context.Context, prompt string, out any) error {
	text, err := e.generate(ctx, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripFences(text)), out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrExternalService, err)
	}
	return nil
}

// malformed reports a decoded response of the wrong shape.
func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrExternalService, fmt.Sprintf(format, args...))
}

// stripFences removes the markdown code fences models like to wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
