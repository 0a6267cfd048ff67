package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const (
	fieldPageID    = "page_id"
	fieldSectionID = "section_id"
	fieldOperation = "operation"
)

// WithFields attaches structured fields when the logger implements
// interfaces.FieldsLogger. Other loggers are returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

// WithSectionContext enriches logger with the page, section and operation
// being processed. Empty values are skipped.
func WithSectionContext(logger interfaces.Logger, pageID, sectionID, operation string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pageID); trimmed != "" {
		fields[fieldPageID] = trimmed
	}
	if trimmed := strings.TrimSpace(sectionID); trimmed != "" {
		fields[fieldSectionID] = trimmed
	}
	if trimmed := strings.TrimSpace(operation); trimmed != "" {
		fields[fieldOperation] = trimmed
	}
	return WithFields(logger, fields)
}
