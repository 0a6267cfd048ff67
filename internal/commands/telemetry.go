package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// SlowCommandThreshold marks page commands worth a warning. Brandkit
// application over a long page is the usual offender.
const SlowCommandThreshold = 2 * time.Second

// TelemetryInfo is the outcome of one page command that passed validation.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
}

type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs page.command.* events: done, slow, failed or aborted.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		ms := info.Duration.Milliseconds()
		switch {
		case info.Status == TelemetryStatusContextError:
			entry.Warn("page.command.aborted", "duration_ms", ms, "error", info.Error)
		case info.Error != nil:
			entry.Error("page.command.failed", "duration_ms", ms, "error", info.Error)
		case info.Duration >= SlowCommandThreshold:
			entry.Warn("page.command.slow", "duration_ms", ms)
		default:
			entry.Info("page.command.done", "duration_ms", ms)
		}
	}
}
