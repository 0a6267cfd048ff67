package markdown

import (
	"bytes"
	"fmt"
	"maps"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the metadata block of an imported document.
type FrontMatter struct {
	Type     string
	Title    string
	Subtitle string
	Excerpt  string
	Language string

	// Metadata holds the explicit metadata map plus any unknown top-level keys.
	// Explicit entries win.
	Metadata map[string]any
}

type frontMatterEnvelope struct {
	Type     string         `yaml:"type"`
	Title    string         `yaml:"title"`
	Subtitle string         `yaml:"subtitle"`
	Excerpt  string         `yaml:"excerpt"`
	Language string         `yaml:"language"`
	Metadata map[string]any `yaml:"metadata"`
	Custom   map[string]any `yaml:",inline"`
}

// ParseFrontMatter splits source into its frontmatter and markdown body.
// Documents without a frontmatter block return an empty FrontMatter.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var env frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return envelopeToFrontMatter(env), body, nil
}

func envelopeToFrontMatter(env frontMatterEnvelope) FrontMatter {
	metadata := make(map[string]any, len(env.Custom)+len(env.Metadata))
	maps.Copy(metadata, normalizeMap(env.Custom))
	maps.Copy(metadata, normalizeMap(env.Metadata))

	return FrontMatter{
		Type:     env.Type,
		Title:    env.Title,
		Subtitle: env.Subtitle,
		Excerpt:  env.Excerpt,
		Language: env.Language,
		Metadata: metadata,
	}
}

// normalizeMap converts the map[interface{}]interface{} values the YAML
// decoder produces for nested objects so metadata stays JSON encodable.
func normalizeMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case map[string]any:
		return normalizeMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	}
	return value
}
