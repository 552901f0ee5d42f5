package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/cotizador/internal/domain"
)

// UseCaseEvent is the telemetry of one workspace or repository use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// Rejected reports whether the use case failed on user input rather than
// on storage.
func (e UseCaseEvent) Rejected() bool {
	return e.Err != nil && domain.IsValidation(e.Err)
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type slogUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes use-case events as text records to w.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// NewSlogUseCaseObserver reports use-case events through logger. Rejected
// input is logged at warn level, storage failures at error level.
func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &slogUseCaseObserver{logger: logger.With("component", "cotizador")}
}

func (o *slogUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	switch {
	case event.Err == nil:
		o.logger.InfoContext(ctx, "use_case", attrs...)
	case event.Rejected():
		o.logger.WarnContext(ctx, "use_case_rejected", append(attrs, "reason", event.Err.Error())...)
	default:
		o.logger.ErrorContext(ctx, "use_case_failed", append(attrs, "error", event.Err.Error())...)
	}
}

// reportUseCase sends one finished use case to obs.
func reportUseCase(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, err error, fields map[string]any) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
