package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Keys are namespaced by entity kind so a preset and a brandkit sharing a name
// never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SectionDefinitionUUID identifies a registry definition by section type.
func SectionDefinitionUUID(sectionType string) uuid.UUID {
	return UUID("go-pagebuilder:section_definition:" + strings.ToUpper(strings.TrimSpace(sectionType)))
}

// BrandkitUUID identifies a brandkit imported from a theme variant.
func BrandkitUUID(theme, variant string) uuid.UUID {
	return UUID("go-pagebuilder:brandkit:" + strings.ToLower(strings.TrimSpace(theme)) + ":" + strings.ToLower(strings.TrimSpace(variant)))
}

// PresetUUID identifies a style preset by its slug.
func PresetUUID(slug string) uuid.UUID {
	return UUID("go-pagebuilder:preset:" + strings.ToLower(strings.TrimSpace(slug)))
}
