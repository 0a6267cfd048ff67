package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/goliatone/go-pagebuilder/cmd/markdown/internal/bootstrap"
	"github.com/goliatone/go-pagebuilder/internal/commands/pagecmd"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/google/uuid"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("markdown import: %v", err)
	}
}

// runImport appends one section per markdown file under the content
// directory to the page and saves it.
func runImport(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("markdown-import", flag.ContinueOnError)
	contentDir := flags.String("content-dir", "content", "Path to the markdown content root")
	directory := flags.String("directory", ".", "Directory to import, relative to the content root")
	page := flags.String("page", "", "Page ID receiving the sections")
	dbPath := flags.String("db", "", "SQLite database file (memory storage when empty)")
	defaultLanguage := flags.String("default-language", "en", "Language used when front matter omits one")
	extensions := flags.String("extensions", "", "Comma separated goldmark extensions")
	hardWraps := flags.Bool("hard-wraps", false, "Render soft line breaks as <br>")
	dryRun := flags.Bool("dry-run", false, "Parse documents without touching the page")

	if err := flags.Parse(args); err != nil {
		return err
	}

	pageID, err := bootstrap.ParseUUID(*page)
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}
	if pageID == uuid.Nil {
		return fmt.Errorf("page is required")
	}

	module, err := moduleBuilder(ctx, bootstrap.Options{
		DBPath:          *dbPath,
		DefaultLanguage: *defaultLanguage,
		HardWraps:       *hardWraps,
		Extensions:      bootstrap.SplitList(*extensions),
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	fsys := os.DirFS(*contentDir)
	docs, err := module.Module.Markdown().ImportFS(ctx, fsys, *directory)
	if err != nil {
		return err
	}
	if *dryRun {
		for _, doc := range docs {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", doc.Path, doc.Type, doc.Translation.LanguageID, doc.Translation.Title)
		}
		return nil
	}

	if _, err := module.Module.Load(ctx, pageID); err != nil {
		return err
	}
	defer module.Module.Close(pageID)

	handler := module.Module.Commands().ImportMarkdown
	for _, doc := range docs {
		source, err := fs.ReadFile(fsys, doc.Path)
		if err != nil {
			return err
		}
		err = handler.Execute(ctx, pagecmd.ImportMarkdownCommand{
			PageID: pageID,
			Source: source,
			Index:  sections.End,
			OnImported: func(section sections.Section) {
				module.Logger.Info("markdown.section.imported", "path", doc.Path, "section_id", section.ID.String())
			},
		})
		if err != nil {
			return fmt.Errorf("import %s: %w", doc.Path, err)
		}
	}

	if err := module.Module.Commands().Save.Execute(ctx, pagecmd.SavePageCommand{PageID: pageID}); err != nil {
		return err
	}
	fmt.Fprintf(out, "imported %d sections into page %s\n", len(docs), pageID)
	return nil
}
