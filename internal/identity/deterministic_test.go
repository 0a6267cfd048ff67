package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := SectionDefinitionUUID("hero")
	second := SectionDefinitionUUID("  HERO ")
	if first != second {
		t.Fatalf("expected normalised keys to match: %s vs %s", first, second)
	}
	if first == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
}

func TestUUIDNamespacesDoNotCollide(t *testing.T) {
	if PresetUUID("default") == BrandkitUUID("default", "") {
		t.Fatalf("expected distinct namespaces")
	}
	if BrandkitUUID("aurora", "light") == BrandkitUUID("aurora", "dark") {
		t.Fatalf("expected variants to produce distinct ids")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for blank key, got %s", got)
	}
}
