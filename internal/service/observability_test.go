package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/outings/internal/app"
	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_SuccessLine(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "recommend",
		Duration: 1500 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"results": 5, "city": "Austin"},
	})

	line := buf.String()
	assert.Contains(t, line, "level=INFO")
	assert.Contains(t, line, "use_case=recommend duration_ms=1500 success=true city=Austin results=5")
}

func TestLogUseCaseObserver_ErrorLine(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "react", Err: errors.New("boom")})

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))
}

func TestLogUseCaseObserver_CallerSideErrorsWarn(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "recommend",
		Err:  &app.RecommendError{Code: app.ErrValidation, Message: "Missing required fields"},
	})

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "code=VALIDATION")
}

func TestLogUseCaseObserver_ProviderErrorsStayError(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "recommend",
		Err:  &app.RecommendError{Code: app.ErrAuth, Message: "Invalid API key"},
	})

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "code=AUTH")
}
