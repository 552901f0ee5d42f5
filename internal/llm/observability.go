package llm

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single LLM invocation.
type CallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver reports call events through slog.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that writes text records to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, nil)).With("component", "llm")}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"task", event.Task,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
		"attempts", event.Attempts,
	}
	if !event.Success {
		o.logger.Warn("llm_call", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Info("llm_call", attrs...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
