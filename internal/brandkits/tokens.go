package brandkits

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-slug"
	gotheme "github.com/goliatone/go-theme"
)

const remBase = 16

var neutralAliases = map[string]bool{"neutral": true, "gray": true, "grey": true, "slate": true}

// FromTokens builds a brandkit from flat design tokens such as those exposed
// by a theme selection. Recognised keys (any of '.', '-', '_' or '/' as
// separators):
//
//	color.primary.500   colors.neutral.900   color.success
//	font.heading        font.family.body     font.size.base   font.weight.bold
//	spacing.md          space.xl
//
// Unknown keys are ignored.
func FromTokens(name string, tokens map[string]string) (Brandkit, error) {
	kit := Brandkit{
		Name: strings.TrimSpace(name),
		Colors: Colors{
			Primary:   Palette{},
			Secondary: Palette{},
			Neutral:   Palette{},
			Semantic:  map[string]Palette{},
		},
		Typography: Typography{
			Fonts:   map[string]string{},
			Sizes:   map[string]float64{},
			Weights: map[string]int{},
		},
		Spacing: map[string]float64{},
	}
	kit.Slug = brandkitSlug(kit.Name)
	kit.ID = identity.BrandkitUUID(kit.Slug, "")

	for key, raw := range tokens {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		segments := tokenSegments(key)
		if len(segments) < 2 {
			continue
		}
		switch segments[0] {
		case "color", "colors", "palette":
			kit.addColor(segments[1:], value)
		case "font", "fonts":
			kit.addFont(segments[1:], value)
		case "spacing", "space":
			if size, ok := parseSize(value); ok {
				kit.Spacing[segments[1]] = size
			}
		}
	}
	return kit, kit.Validate()
}

func (b *Brandkit) addColor(segments []string, value string) {
	shade := "base"
	if len(segments) > 1 {
		shade = segments[1]
	}
	switch name := segments[0]; {
	case name == "primary":
		b.Colors.Primary[shade] = value
	case name == "secondary":
		b.Colors.Secondary[shade] = value
	case neutralAliases[name]:
		b.Colors.Neutral[shade] = value
	default:
		if b.Colors.Semantic[name] == nil {
			b.Colors.Semantic[name] = Palette{}
		}
		b.Colors.Semantic[name][shade] = value
	}
}

func (b *Brandkit) addFont(segments []string, value string) {
	switch {
	case segments[0] == "size" && len(segments) > 1:
		if size, ok := parseSize(value); ok {
			b.Typography.Sizes[segments[1]] = size
		}
	case segments[0] == "weight" && len(segments) > 1:
		if weight, err := strconv.Atoi(value); err == nil {
			b.Typography.Weights[segments[1]] = weight
		}
	case segments[0] == "family" && len(segments) > 1:
		b.Typography.Fonts[segments[1]] = value
	default:
		b.Typography.Fonts[segments[0]] = value
	}
}

func tokenSegments(key string) []string {
	normalized := strings.ToLower(strings.TrimSpace(key))
	normalized = strings.TrimPrefix(normalized, "--")
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == '.' || r == '-' || r == '_' || r == '/'
	})
	for len(fields) > 0 && (fields[0] == "tokens" || fields[0] == "typography") {
		fields = fields[1:]
	}
	return fields
}

// parseSize reads "18", "18px" or "1.125rem" (converted at 16px).
func parseSize(value string) (float64, bool) {
	scale := 1.0
	switch {
	case strings.HasSuffix(value, "rem"):
		value, scale = strings.TrimSuffix(value, "rem"), remBase
	case strings.HasSuffix(value, "px"):
		value = strings.TrimSuffix(value, "px")
	}
	size, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return size * scale, true
}

func brandkitSlug(name string) string {
	normalized, err := slug.Normalize(name)
	if err != nil || normalized == "" {
		return strings.ToLower(strings.TrimSpace(name))
	}
	return normalized
}

// ThemeImporter turns go-theme manifests into brandkits by selecting a
// variant and reading its tokens.
type ThemeImporter struct {
	registry       *gotheme.MemoryRegistry
	defaultVariant string

	mu         sync.Mutex
	registered map[string]bool
}

func NewThemeImporter(defaultVariant string) *ThemeImporter {
	return &ThemeImporter{
		registry:       gotheme.NewRegistry(),
		defaultVariant: strings.TrimSpace(defaultVariant),
		registered:     map[string]bool{},
	}
}

// ImportDir loads the theme manifest at the root of fsys.
func (i *ThemeImporter) ImportDir(fsys fs.FS, variant string) (Brandkit, error) {
	manifest, err := gotheme.LoadDir(fsys, ".")
	if err != nil {
		return Brandkit{}, fmt.Errorf("brandkits: load theme manifest: %w", err)
	}
	return i.Import(manifest, variant)
}

// Import registers manifest (once per name) and builds a brandkit from the
// tokens of the selected variant.
func (i *ThemeImporter) Import(manifest *gotheme.Manifest, variant string) (Brandkit, error) {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return Brandkit{}, ErrThemeNameRequired
	}
	name := strings.TrimSpace(manifest.Name)

	i.mu.Lock()
	if !i.registered[name] {
		if err := i.registry.Register(manifest); err != nil {
			i.mu.Unlock()
			return Brandkit{}, fmt.Errorf("brandkits: register theme %s: %w", name, err)
		}
		i.registered[name] = true
	}
	i.mu.Unlock()

	resolvedVariant := strings.TrimSpace(variant)
	if resolvedVariant == "" {
		resolvedVariant = i.defaultVariant
	}
	selector := gotheme.Selector{
		Registry:       i.registry,
		DefaultTheme:   name,
		DefaultVariant: i.defaultVariant,
	}
	selection, err := selector.Select(name, resolvedVariant)
	if err != nil {
		return Brandkit{}, fmt.Errorf("brandkits: select theme %s: %w", name, err)
	}

	tokens := selection.Tokens()
	if len(tokens) == 0 {
		return Brandkit{}, ErrThemeTokensUnresolved
	}

	kitName := name
	if selection.Variant != "" {
		kitName = name + " " + selection.Variant
	}
	kit, err := FromTokens(kitName, tokens)
	kit.ID = identity.BrandkitUUID(name, selection.Variant)
	kit.Theme = name
	kit.Variant = selection.Variant
	return kit, err
}
