package commands

import (
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// CommandLogger scopes a logger to builder.commands.<group>; groups default
// to "pages".
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.TrimSpace(group)
	if group == "" {
		group = "pages"
	}
	return logging.WithFields(logging.ModuleLogger(provider, "builder.commands."+group),
		map[string]any{"command_group": group})
}
