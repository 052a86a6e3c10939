package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/andrasnagy-data/careeradvisor/internal/shared/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var ErrEmptyInput = errors.New("question is empty")

// ValidateQuestion rejects blank input before it reaches the responder.
func ValidateQuestion(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}
	return input, nil
}

type (
	servicer interface {
		Respond(ctx context.Context, input string) string
	}

	// Responder tries the remote generator once and falls back to keyword dispatch on any failure.
	Responder struct {
		generator  Generator
		dispatcher *KeywordDispatcher
		logger     zerolog.Logger
		tracer     trace.Tracer
		responses  metric.Int64Counter
		latency    metric.Float64Histogram
	}
)

func NewResponder(generator Generator, logger zerolog.Logger, tel *telemetry.Telemetry) (*Responder, error) {
	responses, err := tel.Meter.Int64Counter(
		"advisor.responses",
		metric.WithDescription("Answers produced, by source"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := tel.Meter.Float64Histogram(
		"advisor.inference.duration",
		metric.WithDescription("Remote inference duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	logger = logger.With().Str("component", "advisor").Logger()
	logger.Info().Bool("remote_enabled", generator != nil).Msg("Advice responder ready")

	return &Responder{
		generator:  generator,
		dispatcher: NewKeywordDispatcher(DefaultRules(), DefaultResponse),
		logger:     logger,
		tracer:     tel.Tracer,
		responses:  responses,
		latency:    latency,
	}, nil
}

// NewService exposes the responder to the router
func NewService(r *Responder) servicer {
	return r
}

func (r *Responder) RemoteEnabled() bool {
	return r.generator != nil
}

// Respond always returns an answer.
func (r *Responder) Respond(ctx context.Context, input string) string {
	answer, _ := r.Answer(ctx, input)
	return answer
}

// Answer is Respond plus the stage that produced the answer.
func (r *Responder) Answer(ctx context.Context, input string) (string, Source) {
	ctx, span := r.tracer.Start(ctx, "advisor.respond")
	defer span.End()

	if answer, ok := r.remote(ctx, input); ok {
		r.record(ctx, span, SourceRemote)
		return answer, SourceRemote
	}

	answer, matched := r.dispatcher.Match(input)
	span.SetAttributes(attribute.Bool("advisor.keyword_matched", matched))
	r.record(ctx, span, SourceFallback)
	return answer, SourceFallback
}

func (r *Responder) remote(ctx context.Context, input string) (string, bool) {
	if r.generator == nil {
		return "", false
	}

	ctx, span := r.tracer.Start(ctx, "inference.generate")
	defer span.End()

	start := time.Now()
	answer, err := r.generator.Generate(ctx, input)
	r.latency.Record(ctx, float64(time.Since(start).Milliseconds()))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "remote unavailable")
		r.logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("Remote inference failed, using keyword fallback")
		return "", false
	}
	return answer, true
}

func (r *Responder) record(ctx context.Context, span trace.Span, source Source) {
	span.SetAttributes(attribute.String("advisor.source", string(source)))
	r.responses.Add(ctx, 1, metric.WithAttributes(attribute.String("source", string(source))))
	r.logger.Debug().Str("source", string(source)).Msg("Answer produced")
}
