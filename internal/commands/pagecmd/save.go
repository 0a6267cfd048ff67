package pagecmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

const savePageMessageType = "builder.pages.save"

// SavePageCommand persists the open session of a page.
type SavePageCommand struct {
	PageID uuid.UUID `json:"page_id"`
}

// Type implements command.Message.
func (SavePageCommand) Type() string { return savePageMessageType }

func (m SavePageCommand) Validate() error {
	return validation.Errors{
		"page_id": validation.Validate(m.PageID, requiredID("builder.pages.save.page_id_required")),
	}.Filter()
}

// SavePageHandler saves builder sessions through the shared command handler.
type SavePageHandler struct {
	inner *commands.Handler[SavePageCommand]
}

func NewSavePageHandler(sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[SavePageCommand]) *SavePageHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SavePageCommand) error {
		session, err := lookup(sessions, msg.PageID)
		if err != nil {
			return err
		}
		return session.Save(ctx)
	}

	handlerOpts := []commands.HandlerOption[SavePageCommand]{
		commands.WithLogger[SavePageCommand](logger),
		commands.WithOperation[SavePageCommand]("pages.save"),
		commands.WithMessageFields(func(msg SavePageCommand) map[string]any {
			return map[string]any{"page_id": msg.PageID.String()}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SavePageCommand](logger)),
	}
	return &SavePageHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[SavePageCommand].
func (h *SavePageHandler) Execute(ctx context.Context, msg SavePageCommand) error {
	return h.inner.Execute(ctx, msg)
}
