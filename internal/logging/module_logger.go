package logging

import (
	"context"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const (
	rootModule       = "builder"
	sectionsModule   = "builder.sections"
	stylesModule     = "builder.styles"
	brandkitsModule  = "builder.brandkits"
	controllerModule = "builder.controller"
	storageModule    = "builder.storage"
	presetsModule    = "builder.presets"
	markdownModule   = "builder.markdown"
	renderModule     = "builder.render"
)

// ModuleLogger returns a logger scoped to module. A nil provider, or one that
// returns nil, yields a no-op logger so services never need nil checks. The
// module name is attached as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	var logger interfaces.Logger = noopLogger{}
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// SectionsLogger returns the logger namespace for the section collection.
func SectionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sectionsModule)
}

// StylesLogger returns the logger namespace for style resolution.
func StylesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, stylesModule)
}

// BrandkitsLogger returns the logger namespace for brandkit application.
func BrandkitsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, brandkitsModule)
}

// ControllerLogger returns the logger namespace for page builder sessions.
func ControllerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, controllerModule)
}

// StorageLogger returns the logger namespace for persistence adapters.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// PresetsLogger returns the logger namespace for style presets.
func PresetsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, presetsModule)
}

// MarkdownLogger returns the logger namespace for markdown import.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// RenderLogger returns the logger namespace for HTML rendering.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
