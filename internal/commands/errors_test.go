package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

func TestCategorize(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		name     string
		stage    stage
		err      error
		category goerrors.Category
		code     string
	}{
		{"invalid message", stageValidate, cause, goerrors.CategoryValidation, "PAGE_COMMAND_INVALID"},
		{"failed save", stageExecute, cause, goerrors.CategoryCommand, "PAGE_COMMAND_FAILED"},
		{"cancelled", stageExecute, fmt.Errorf("save: %w", context.Canceled), goerrors.CategoryCommand, "PAGE_COMMAND_CANCELED"},
		{"timed out", stageValidate, context.DeadlineExceeded, goerrors.CategoryCommand, "PAGE_COMMAND_TIMEOUT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := categorize(tc.stage, tc.err)
			var typed *goerrors.Error
			if !errors.As(err, &typed) {
				t.Fatalf("expected a go-errors error, got %T", err)
			}
			if typed.Category != tc.category || typed.TextCode != tc.code {
				t.Fatalf("got %s/%s, want %s/%s", typed.Category, typed.TextCode, tc.category, tc.code)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected the cause to stay reachable")
			}
			if again := categorize(stageExecute, err); again != err {
				t.Fatalf("expected an already categorised error to pass through")
			}
		})
	}
	if categorize(stageExecute, nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}

type levelLogger struct {
	entries *[]string
}

func (l levelLogger) record(level, msg string) { *l.entries = append(*l.entries, level+" "+msg) }

func (l levelLogger) Trace(msg string, _ ...any)                    { l.record("trace", msg) }
func (l levelLogger) Debug(msg string, _ ...any)                    { l.record("debug", msg) }
func (l levelLogger) Info(msg string, _ ...any)                     { l.record("info", msg) }
func (l levelLogger) Warn(msg string, _ ...any)                     { l.record("warn", msg) }
func (l levelLogger) Error(msg string, _ ...any)                    { l.record("error", msg) }
func (l levelLogger) Fatal(msg string, _ ...any)                    { l.record("fatal", msg) }
func (l levelLogger) WithContext(context.Context) interfaces.Logger { return l }

func TestDefaultTelemetryEvents(t *testing.T) {
	cases := []struct {
		name string
		info TelemetryInfo
		want string
	}{
		{"done", TelemetryInfo{Status: TelemetryStatusSuccess, Duration: time.Millisecond}, "info page.command.done"},
		{"slow", TelemetryInfo{Status: TelemetryStatusSuccess, Duration: SlowCommandThreshold}, "warn page.command.slow"},
		{"failed", TelemetryInfo{Status: TelemetryStatusFailed, Error: errors.New("disk full")}, "error page.command.failed"},
		{"aborted", TelemetryInfo{Status: TelemetryStatusContextError, Error: context.Canceled}, "warn page.command.aborted"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var entries []string
			DefaultTelemetry[testMessage](levelLogger{entries: &entries})(context.Background(), testMessage{}, tc.info)
			if len(entries) != 1 || entries[0] != tc.want {
				t.Fatalf("got %v, want [%s]", entries, tc.want)
			}
		})
	}
}
