// Package analysis turns an address into a validated, model generated
// real estate summary.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/imkonsowa/rera-insights/config"
	"github.com/imkonsowa/rera-insights/llm"
	"github.com/imkonsowa/rera-insights/metrics"
	"github.com/imkonsowa/rera-insights/models"
	"github.com/imkonsowa/rera-insights/schema"
	"github.com/tmc/langchaingo/llms"
	lcschema "github.com/tmc/langchaingo/schema"
)

const (
	OperationListings  = "listings"
	OperationValuation = "valuation"

	DefaultTemperature = 0.2
)

var ErrEmptyResponse = errors.New("model returned no choices")

type Analyzer struct {
	model       llms.Model
	pool        *llm.Pool
	metrics     *metrics.Metrics
	temperature float64
	// set when the model client could not be built
	unavailable error
}

type Option func(*Analyzer)

func WithTemperature(t float64) Option {
	return func(a *Analyzer) {
		a.temperature = t
	}
}

func NewAnalyzer(model llms.Model, pool *llm.Pool, m *metrics.Metrics, opts ...Option) *Analyzer {
	a := &Analyzer{
		model:       model,
		pool:        pool,
		metrics:     m,
		temperature: DefaultTemperature,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// NewUnavailable returns an Analyzer whose every call fails with err. It lets
// the service start and report a broken model configuration per request.
func NewUnavailable(err error, m *metrics.Metrics) *Analyzer {
	return &Analyzer{
		metrics:     m,
		unavailable: err,
	}
}

func (a *Analyzer) FindListings(ctx context.Context, req models.AnalysisRequest) (*models.ListingsResponse, error) {
	var out models.ListingsResponse
	if err := a.run(ctx, OperationListings, listingsPrompt, schema.Listings, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (a *Analyzer) ValuationReport(ctx context.Context, req models.AnalysisRequest) (*models.ValuationReport, error) {
	var out models.ValuationReport
	if err := a.run(ctx, OperationValuation, valuationPrompt, schema.Valuation, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (a *Analyzer) run(
	ctx context.Context,
	operation string,
	tmpl *template.Template,
	kind schema.Kind,
	req models.AnalysisRequest,
	dst any,
) (err error) {
	call := a.metrics.StartCall(operation)
	defer func() {
		elapsed := call.Done(err)
		slog.Info("analysis finished", "operation", operation, "address", req.Address, "duration", elapsed, "ok", err == nil)
	}()

	if err := req.Validate(); err != nil {
		return err
	}

	if a.unavailable != nil {
		return fmt.Errorf("%w: %w", llm.ErrModelUnavailable, a.unavailable)
	}

	prompt, err := renderPrompt(tmpl, kind, req.Address, req.Location())
	if err != nil {
		return err
	}

	raw, err := a.pool.Do(ctx, func(ctx context.Context) (string, error) {
		return a.complete(ctx, prompt)
	})
	if err != nil {
		return fmt.Errorf("model call failed: %w", err)
	}

	payload := llm.StripFences(raw)
	slog.Debug("model replied", "operation", operation, "bytes", len(payload))

	if err := schema.Decode(kind, []byte(payload), dst); err != nil {
		return fmt.Errorf("invalid model output: %w", err)
	}

	return nil
}

func (a *Analyzer) complete(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(lcschema.ChatMessageTypeHuman, prompt),
	}

	content, err := a.model.GenerateContent(
		ctx,
		messages,
		llms.WithJSONMode(),
		llms.WithTemperature(a.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if content == nil || len(content.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return content.Choices[0].Content, nil
}

// FromConfig builds the model client and the Analyzer around it. A model
// configuration error does not fail here: the returned Analyzer reports it on
// every call instead.
func FromConfig(ctx context.Context, cfg *config.Config, pool *llm.Pool, m *metrics.Metrics) (*Analyzer, error) {
	model, err := llm.New(ctx, cfg.Model)
	if err != nil {
		var cfgErr *llm.ConfigError
		if errors.As(err, &cfgErr) {
			slog.Error("model client not configured, analysis requests will fail", "provider", cfgErr.Provider, "error", cfgErr.Err)
			return NewUnavailable(err, m), nil
		}

		return nil, err
	}

	return NewAnalyzer(model, pool, m, WithTemperature(cfg.Model.Temperature)), nil
}
