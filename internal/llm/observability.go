package llm

import (
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LLMCallEvent records metadata about a single provider call.
type LLMCallEvent struct {
	Task       TaskType
	Model      string
	LatencyMs  int64
	Success    bool
	StatusCode int
	ErrorCode  string
}

// Observer receives events about provider calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes one structured line per call.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	attrs := []any{
		"task", event.Task,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
		"status", status,
	}
	if event.StatusCode != 0 {
		attrs = append(attrs, "http_status", event.StatusCode)
	}
	if event.Success {
		o.logger.Info("llm_call", attrs...)
		return
	}
	o.logger.Warn("llm_call", attrs...)
}

// MetricsObserver exports call counts and latencies to Prometheus.
type MetricsObserver struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewMetricsObserver registers the provider metrics on reg.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	factory := promauto.With(reg)
	return &MetricsObserver{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "outings",
				Subsystem: "llm",
				Name:      "calls_total",
				Help:      "Total number of provider calls by task and outcome",
			},
			[]string{"task", "status"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "outings",
				Subsystem: "llm",
				Name:      "call_duration_seconds",
				Help:      "Duration of provider calls in seconds",
				// Web-search calls routinely take tens of seconds.
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120, 180},
			},
			[]string{"task"},
		),
	}
}

func (o *MetricsObserver) OnCallComplete(event LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
	}
	o.calls.WithLabelValues(string(event.Task), status).Inc()
	o.latency.WithLabelValues(string(event.Task)).Observe((time.Duration(event.LatencyMs) * time.Millisecond).Seconds())
}

// MultiObserver fans each event out to every non-nil observer.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event LLMCallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
