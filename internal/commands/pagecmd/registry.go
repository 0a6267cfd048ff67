package pagecmd

import (
	"errors"

	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the page command handlers built by RegisterPageCommands.
type HandlerSet struct {
	Save           *SavePageHandler
	ApplyBrandkit  *ApplyBrandkitHandler
	ImportMarkdown *ImportMarkdownHandler
}

// Dependencies are the collaborators the page commands drive. Brandkits may
// be nil, in which case ApplyBrandkit reports ErrBrandkitsDisabled.
type Dependencies struct {
	Sessions  Sessions
	Brandkits BrandkitSource
	Markdown  FeatureGate
}

// RegisterPageCommands builds the handlers and registers them with reg when
// one is given. The handler set is returned either way.
func RegisterPageCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	if deps.Sessions == nil {
		return nil, errors.New("page command registration: sessions are nil")
	}

	logger := commands.CommandLogger(provider, "pages")
	set := &HandlerSet{
		Save:           NewSavePageHandler(deps.Sessions, logger),
		ApplyBrandkit:  NewApplyBrandkitHandler(deps.Sessions, deps.Brandkits, logger),
		ImportMarkdown: NewImportMarkdownHandler(deps.Sessions, deps.Markdown, logger),
	}

	if reg != nil {
		for _, handler := range []any{set.Save, set.ApplyBrandkit, set.ImportMarkdown} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
