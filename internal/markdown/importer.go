package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

var (
	ErrSectionTypeUnknown = errors.New("markdown: unknown section type")
	ErrLanguageMissing    = errors.New("markdown: language could not be determined")
)

// Document is one imported markdown file.
type Document struct {
	Path        string
	Type        sections.SectionType
	Translation sections.Translation

	// Checksum is the hex sha256 of the source bytes.
	Checksum string
}

type ImporterOption func(*Importer)

func WithParser(parser Parser) ImporterOption {
	return func(i *Importer) {
		if parser != nil {
			i.parser = parser
		}
	}
}

// WithDefaultLanguage is used when the frontmatter has no language.
func WithDefaultLanguage(languageID string) ImporterOption {
	return func(i *Importer) {
		i.defaultLanguage = strings.TrimSpace(languageID)
	}
}

// WithDefaultType is used when the frontmatter has no type.
func WithDefaultType(sectionType sections.SectionType) ImporterOption {
	return func(i *Importer) {
		if sectionType != "" {
			i.defaultType = sectionType
		}
	}
}

func WithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Importer converts markdown documents into section translations.
type Importer struct {
	parser          Parser
	defaultLanguage string
	defaultType     sections.SectionType
	logger          interfaces.Logger
}

func NewImporter(opts ...ImporterOption) *Importer {
	i := &Importer{
		parser:          NewGoldmarkParser(ParseOptions{}),
		defaultLanguage: "en",
		defaultType:     sections.TypeRichText,
		logger:          logging.NoOp(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import parses one document. The frontmatter type accepts the enumeration
// names in any case, with dashes or spaces for underscores ("rich-text").
func (i *Importer) Import(ctx context.Context, source []byte) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return Document{}, err
	}

	sectionType := i.defaultType
	if strings.TrimSpace(fm.Type) != "" {
		sectionType = normalizeType(fm.Type)
	}
	if !sectionType.Valid() {
		return Document{}, fmt.Errorf("%w: %q", ErrSectionTypeUnknown, fm.Type)
	}

	language := strings.TrimSpace(fm.Language)
	if language == "" {
		language = i.defaultLanguage
	}
	if language == "" {
		return Document{}, ErrLanguageMissing
	}

	html, err := i.parser.Parse(body)
	if err != nil {
		return Document{}, err
	}

	sum := sha256.Sum256(source)
	doc := Document{
		Type: sectionType,
		Translation: sections.Translation{
			LanguageID: language,
			Title:      fm.Title,
			Subtitle:   fm.Subtitle,
			Excerpt:    fm.Excerpt,
			Content:    strings.TrimSpace(string(html)),
		},
		Checksum: hex.EncodeToString(sum[:]),
	}
	if len(fm.Metadata) > 0 {
		doc.Translation.Metadata = fm.Metadata
	}
	return doc, nil
}

// ImportFS imports every .md or .markdown file under dir in lexical order.
// A failing file does not stop the walk; its error is joined into the result.
func (i *Importer) ImportFS(ctx context.Context, fsys fs.FS, dir string) ([]Document, error) {
	if dir == "" {
		dir = "."
	}

	var docs []Document
	var errs []error
	walkErr := fs.WalkDir(fsys, dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !isMarkdown(name) {
			return nil
		}

		source, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("markdown: read %s: %w", name, err))
			return nil
		}
		doc, err := i.Import(ctx, source)
		if err != nil {
			i.logger.Warn("markdown.import.failed", "path", name, "error", err)
			errs = append(errs, fmt.Errorf("markdown: import %s: %w", name, err))
			return nil
		}
		doc.Path = name
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return docs, walkErr
	}

	i.logger.Debug("markdown.imported", "dir", dir, "documents", len(docs), "failed", len(errs))
	return docs, errors.Join(errs...)
}

func normalizeType(value string) sections.SectionType {
	replacer := strings.NewReplacer("-", "_", " ", "_")
	return sections.SectionType(strings.ToUpper(replacer.Replace(strings.TrimSpace(value))))
}

func isMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
