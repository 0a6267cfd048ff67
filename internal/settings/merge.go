package settings

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Merge layers patch over base field by field and returns the result. Nested
// settings structs (padding, background, typography, ...) merge recursively;
// scalars, slices and maps set on patch replace the base value; nil fields on
// patch inherit from base. Neither input is modified.
//
// This is the only merge used for editor updates, responsive overrides,
// presets and brandkit patches.
func Merge[T any](base, patch T) T {
	merged := mergeValue(reflect.ValueOf(base), reflect.ValueOf(patch))
	return merged.Interface().(T)
}

// MergeLayout is Merge specialised for layout settings.
func MergeLayout(base, patch LayoutSettings) LayoutSettings {
	return Merge(base, patch)
}

// MergeStyle is Merge specialised for style settings.
func MergeStyle(base, patch StyleSettings) StyleSettings {
	return Merge(base, patch)
}

// MergeOverride merges two responsive overrides. Either side may be nil.
func MergeOverride(base, patch *Override) *Override {
	return Merge(base, patch)
}

func mergeValue(base, patch reflect.Value) reflect.Value {
	switch patch.Kind() {
	case reflect.Pointer:
		if patch.IsNil() {
			return base
		}
		if base.IsNil() || !isNested(patch.Type().Elem()) {
			return patch
		}
		merged := reflect.New(patch.Type().Elem())
		merged.Elem().Set(mergeStruct(base.Elem(), patch.Elem()))
		return merged
	case reflect.Struct:
		if !isNested(patch.Type()) {
			return patch
		}
		return mergeStruct(base, patch)
	case reflect.Slice, reflect.Map, reflect.Interface:
		if patch.IsNil() {
			return base
		}
		return patch
	default:
		return patch
	}
}

func mergeStruct(base, patch reflect.Value) reflect.Value {
	out := reflect.New(patch.Type()).Elem()
	for i := range patch.NumField() {
		out.Field(i).Set(mergeValue(base.Field(i), patch.Field(i)))
	}
	return out
}

// isNested reports whether t is a settings struct that merges field-wise.
// Structs with unexported state (UntrustedContent) are opaque values.
func isNested(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := range t.NumField() {
		if !t.Field(i).IsExported() {
			return false
		}
	}
	return true
}

// Paths lists the dotted field paths set on patch, using JSON field names
// ("padding.top", "typography.fontSize"). Nested structs contribute their
// leaves, never themselves.
func Paths[T any](patch T) []string {
	var out []string
	collectPaths(reflect.ValueOf(patch), "", &out)
	return out
}

func collectPaths(v reflect.Value, prefix string, out *[]string) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		if isNested(v.Type().Elem()) {
			collectPaths(v.Elem(), prefix, out)
			return
		}
		*out = append(*out, prefix)
	case reflect.Struct:
		if !isNested(v.Type()) {
			*out = append(*out, prefix)
			return
		}
		for i := range v.NumField() {
			collectPaths(v.Field(i), joinPath(prefix, fieldName(v.Type().Field(i))), out)
		}
	case reflect.Slice, reflect.Map, reflect.Interface:
		if !v.IsNil() {
			*out = append(*out, prefix)
		}
	default:
		*out = append(*out, prefix)
	}
}

// Filter returns a copy of patch keeping only the leaf fields for which keep
// returns true. Nested structs left without any field become nil.
func Filter[T any](patch T, keep func(path string) bool) T {
	filtered := filterValue(reflect.ValueOf(patch), "", keep)
	return filtered.Interface().(T)
}

func filterValue(v reflect.Value, prefix string, keep func(string) bool) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		if !isNested(v.Type().Elem()) {
			if keep(prefix) {
				return v
			}
			return reflect.Zero(v.Type())
		}
		inner := filterValue(v.Elem(), prefix, keep)
		if inner.IsZero() {
			return reflect.Zero(v.Type())
		}
		ptr := reflect.New(v.Type().Elem())
		ptr.Elem().Set(inner)
		return ptr
	case reflect.Struct:
		if !isNested(v.Type()) {
			if keep(prefix) {
				return v
			}
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type()).Elem()
		for i := range v.NumField() {
			path := joinPath(prefix, fieldName(v.Type().Field(i)))
			out.Field(i).Set(filterValue(v.Field(i), path, keep))
		}
		return out
	case reflect.Slice, reflect.Map, reflect.Interface:
		if v.IsNil() || keep(prefix) {
			return v
		}
		return reflect.Zero(v.Type())
	default:
		if keep(prefix) {
			return v
		}
		return reflect.Zero(v.Type())
	}
}

// Leaves flattens the set fields of v into path -> value, dereferencing
// pointers. It is used for change reports.
func Leaves[T any](v T) map[string]any {
	out := map[string]any{}
	collectLeaves(reflect.ValueOf(v), "", out)
	return out
}

func collectLeaves(v reflect.Value, prefix string, out map[string]any) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		if isNested(v.Type().Elem()) {
			collectLeaves(v.Elem(), prefix, out)
			return
		}
		out[prefix] = v.Elem().Interface()
	case reflect.Struct:
		if !isNested(v.Type()) {
			out[prefix] = v.Interface()
			return
		}
		for i := range v.NumField() {
			collectLeaves(v.Field(i), joinPath(prefix, fieldName(v.Type().Field(i))), out)
		}
	case reflect.Slice, reflect.Map, reflect.Interface:
		if !v.IsNil() {
			out[prefix] = v.Interface()
		}
	default:
		out[prefix] = v.Interface()
	}
}

// Change describes one field-level modification.
type Change struct {
	Path string
	From any
	To   any
}

func (c Change) String() string {
	from := "unset"
	if c.From != nil {
		from = fmt.Sprintf("%v", c.From)
	}
	return fmt.Sprintf("%s: %s -> %v", c.Path, from, c.To)
}

// Diff reports the leaves of after that differ from before, sorted by path.
// Paths are prefixed with prefix when it is not empty.
func Diff[T any](prefix string, before, after T) []Change {
	old := Leaves(before)
	updated := Leaves(after)

	var changes []Change
	for path, value := range updated {
		previous, ok := old[path]
		if ok && reflect.DeepEqual(previous, value) {
			continue
		}
		change := Change{Path: joinPath(prefix, path), To: value}
		if ok {
			change.From = previous
		}
		changes = append(changes, change)
	}
	slices.SortFunc(changes, func(a, b Change) int { return strings.Compare(a.Path, b.Path) })
	return changes
}

func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if name == "" {
		return prefix
	}
	return prefix + "." + name
}

// HasPathPrefix reports whether path equals prefix or sits below it.
func HasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+".")
}
