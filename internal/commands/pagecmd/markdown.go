package pagecmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

const importMarkdownMessageType = "builder.pages.import_markdown"

// ImportMarkdownCommand adds a section built from a markdown document.
// Index follows sections.End semantics for appending.
type ImportMarkdownCommand struct {
	PageID     uuid.UUID              `json:"page_id"`
	Source     []byte                 `json:"source"`
	Index      int                    `json:"index"`
	OnImported func(sections.Section) `json:"-"`
}

func (ImportMarkdownCommand) Type() string { return importMarkdownMessageType }

func (m ImportMarkdownCommand) Validate() error {
	return validation.Errors{
		"page_id": validation.Validate(m.PageID, requiredID("builder.pages.import_markdown.page_id_required")),
		"source":  validation.Validate(m.Source, validation.Required),
		"index":   validation.Validate(m.Index, validation.Min(sections.End)),
	}.Filter()
}

type ImportMarkdownHandler struct {
	inner *commands.Handler[ImportMarkdownCommand]
}

// FeatureGate reports whether a feature is enabled; nil means enabled.
type FeatureGate func() bool

func (g FeatureGate) enabled() bool {
	return g == nil || g()
}

func NewImportMarkdownHandler(sessions Sessions, gate FeatureGate, logger interfaces.Logger, opts ...commands.HandlerOption[ImportMarkdownCommand]) *ImportMarkdownHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportMarkdownCommand) error {
		if !gate.enabled() {
			return ErrMarkdownDisabled
		}
		session, err := lookup(sessions, msg.PageID)
		if err != nil {
			return err
		}
		section, err := session.ImportMarkdown(ctx, msg.Source, msg.Index)
		if err != nil {
			return err
		}
		if msg.OnImported != nil {
			msg.OnImported(section)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportMarkdownCommand]{
		commands.WithLogger[ImportMarkdownCommand](logger),
		commands.WithOperation[ImportMarkdownCommand]("pages.import_markdown"),
		commands.WithMessageFields(func(msg ImportMarkdownCommand) map[string]any {
			return map[string]any{"page_id": msg.PageID.String(), "bytes": len(msg.Source)}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportMarkdownCommand](logger)),
	}
	return &ImportMarkdownHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

func (h *ImportMarkdownHandler) Execute(ctx context.Context, msg ImportMarkdownCommand) error {
	return h.inner.Execute(ctx, msg)
}
