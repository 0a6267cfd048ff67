package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-pagebuilder/cmd/markdown/internal/bootstrap"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/google/uuid"
)

func main() {
	if err := runPreview(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("markdown preview: %v", err)
	}
}

// runPreview imports one markdown file into a throwaway session and prints
// the rendered page markup.
func runPreview(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("markdown-preview", flag.ContinueOnError)
	filePath := flags.String("file", "", "Markdown file to preview")
	defaultLanguage := flags.String("default-language", "en", "Language used when front matter omits one")
	viewport := flags.String("viewport", string(settings.Desktop), "Viewport used to resolve responsive styles")
	extensions := flags.String("extensions", "", "Comma separated goldmark extensions")
	hardWraps := flags.Bool("hard-wraps", false, "Render soft line breaks as <br>")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *filePath == "" {
		return fmt.Errorf("--file is required")
	}

	source, err := os.ReadFile(*filePath)
	if err != nil {
		return err
	}

	module, err := bootstrap.BuildModule(ctx, bootstrap.Options{
		DefaultLanguage: *defaultLanguage,
		HardWraps:       *hardWraps,
		Extensions:      bootstrap.SplitList(*extensions),
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	pageID := uuid.New()
	session, err := module.Module.Open(pageID, nil)
	if err != nil {
		return err
	}
	defer module.Module.Close(pageID)

	section, err := session.ImportMarkdown(ctx, source, sections.End)
	if err != nil {
		return err
	}
	if err := session.SetViewport(settings.Viewport(*viewport)); err != nil {
		return err
	}

	doc, err := module.Module.Markdown().Import(ctx, source)
	if err != nil {
		return err
	}
	lang := doc.Translation.LanguageID
	html, err := session.Render(lang)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Type: %s\nLanguage: %s\n\n%s\n", section.Type, lang, html)
	return nil
}
