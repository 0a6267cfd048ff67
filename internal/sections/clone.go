package sections

import (
	"maps"
	"reflect"

	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/mitchellh/copystructure"
)

var cloneConfig = copystructure.Config{Copiers: copiers()}

// copystructure skips unexported fields, so opaque values need their own
// copier next to the library defaults (time.Time).
func copiers() map[reflect.Type]copystructure.CopierFunc {
	out := maps.Clone(copystructure.Copiers)
	if out == nil {
		out = map[reflect.Type]copystructure.CopierFunc{}
	}
	out[reflect.TypeOf(settings.UntrustedContent{})] = func(v any) (any, error) {
		return v, nil
	}
	return out
}

// Clone returns a deep copy of s that shares no pointers, slices or maps with
// the original.
func Clone(s Section) Section {
	return copystructure.Must(cloneConfig.Copy(s)).(Section)
}

// CloneAll deep copies a section list. A nil list stays nil.
func CloneAll(list []Section) []Section {
	if list == nil {
		return nil
	}
	out := make([]Section, len(list))
	for i, s := range list {
		out[i] = Clone(s)
	}
	return out
}
