package pagecmd

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagebuilder/internal/brandkits"
	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

const applyBrandkitMessageType = "builder.pages.apply_brandkit"

// ApplyBrandkitCommand applies, or previews with DryRun, a stored brandkit
// on the open session of a page.
type ApplyBrandkitCommand struct {
	PageID     uuid.UUID              `json:"page_id"`
	BrandkitID uuid.UUID              `json:"brandkit_id"`
	SectionIDs []uuid.UUID            `json:"section_ids,omitempty"`
	Options    brandkits.ApplyOptions `json:"options"`
	DryRun     bool                   `json:"dry_run"`
	OnResult   func(brandkits.Result) `json:"-"`
}

func (ApplyBrandkitCommand) Type() string { return applyBrandkitMessageType }

func (m ApplyBrandkitCommand) Validate() error {
	return validation.Errors{
		"page_id":     validation.Validate(m.PageID, requiredID("builder.pages.apply_brandkit.page_id_required")),
		"brandkit_id": validation.Validate(m.BrandkitID, requiredID("builder.pages.apply_brandkit.brandkit_id_required")),
		"section_ids": validation.Validate(m.SectionIDs, validation.Each(requiredID("builder.pages.apply_brandkit.section_id_invalid"))),
		"conflict_resolution": validation.Validate(string(m.Options.ConflictResolution), validation.In(
			string(brandkits.ConflictMerge), string(brandkits.ConflictOverwrite), string(brandkits.ConflictSkip))),
		"options": validation.Validate(m.Options, validation.By(func(any) error {
			o := m.Options
			if !o.ApplyColors && !o.ApplyTypography && !o.ApplySpacing && !o.ApplyResponsive {
				return validation.NewError("builder.pages.apply_brandkit.no_categories", "select at least one category")
			}
			return nil
		})),
	}.Filter()
}

// ApplyBrandkitHandler loads the brandkit and runs it through the session.
type ApplyBrandkitHandler struct {
	inner *commands.Handler[ApplyBrandkitCommand]
}

// NewApplyBrandkitHandler wires the handler. A nil source disables the command.
func NewApplyBrandkitHandler(sessions Sessions, source BrandkitSource, logger interfaces.Logger, opts ...commands.HandlerOption[ApplyBrandkitCommand]) *ApplyBrandkitHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ApplyBrandkitCommand) error {
		if source == nil {
			return ErrBrandkitsDisabled
		}
		session, err := lookup(sessions, msg.PageID)
		if err != nil {
			return err
		}
		kit, err := source.GetByID(ctx, msg.BrandkitID)
		if err != nil {
			return fmt.Errorf("pagecmd: load brandkit: %w", err)
		}

		result, err := session.ApplyBrandkit(ctx, *kit, brandkits.ApplyRequest{
			SectionIDs: msg.SectionIDs,
			Options:    msg.Options,
			DryRun:     msg.DryRun,
		})
		if err != nil {
			return err
		}
		if msg.OnResult != nil {
			msg.OnResult(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ApplyBrandkitCommand]{
		commands.WithLogger[ApplyBrandkitCommand](logger),
		commands.WithOperation[ApplyBrandkitCommand]("pages.apply_brandkit"),
		commands.WithMessageFields(func(msg ApplyBrandkitCommand) map[string]any {
			return map[string]any{
				"page_id":     msg.PageID.String(),
				"brandkit_id": msg.BrandkitID.String(),
				"dry_run":     msg.DryRun,
				"sections":    len(msg.SectionIDs),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ApplyBrandkitCommand](logger)),
	}
	return &ApplyBrandkitHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

func (h *ApplyBrandkitHandler) Execute(ctx context.Context, msg ApplyBrandkitCommand) error {
	return h.inner.Execute(ctx, msg)
}
