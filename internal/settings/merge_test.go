package settings_test

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/settings"
)

func TestMergeLayoutNestedFields(t *testing.T) {
	base := settings.LayoutSettings{
		Width: settings.Ptr(settings.WidthContainer),
		Padding: &settings.Box{
			Top:    settings.Ptr(40.0),
			Right:  settings.Ptr(20.0),
			Bottom: settings.Ptr(40.0),
			Left:   settings.Ptr(20.0),
		},
	}
	patch := settings.LayoutSettings{
		Padding: &settings.Box{Top: settings.Ptr(80.0)},
	}

	merged := settings.MergeLayout(base, patch)

	if merged.Width == nil || *merged.Width != settings.WidthContainer {
		t.Fatalf("expected width to be inherited, got %v", merged.Width)
	}
	if got := *merged.Padding.Top; got != 80 {
		t.Fatalf("expected padding top 80, got %v", got)
	}
	if got := *merged.Padding.Left; got != 20 {
		t.Fatalf("expected padding left 20, got %v", got)
	}
	if got := *base.Padding.Top; got != 40 {
		t.Fatalf("base must not be mutated, padding top now %v", got)
	}
	if merged.Padding == base.Padding {
		t.Fatalf("expected merged padding to be a new struct")
	}
}

func TestMergeStyleExplicitZeroWins(t *testing.T) {
	base := settings.StyleSettings{
		Opacity:    settings.Ptr(0.8),
		BoxShadows: []settings.BoxShadow{{Y: 2, Blur: 4, Color: "#000"}},
	}
	patch := settings.StyleSettings{
		Opacity:    settings.Ptr(0.0),
		BoxShadows: []settings.BoxShadow{},
	}

	merged := settings.MergeStyle(base, patch)

	if merged.Opacity == nil || *merged.Opacity != 0 {
		t.Fatalf("expected explicit zero opacity, got %v", merged.Opacity)
	}
	if merged.BoxShadows == nil || len(merged.BoxShadows) != 0 {
		t.Fatalf("expected empty shadow list to clear, got %v", merged.BoxShadows)
	}
}

func TestMergeOverrideNilSides(t *testing.T) {
	override := &settings.Override{Style: &settings.StyleSettings{TextColor: settings.Ptr("#fff")}}

	if got := settings.MergeOverride(nil, override); got != override {
		t.Fatalf("expected patch when base is nil")
	}
	if got := settings.MergeOverride(override, nil); got != override {
		t.Fatalf("expected base when patch is nil")
	}
	if got := settings.MergeOverride(nil, nil); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestMergeKeepsUntrustedContentOpaque(t *testing.T) {
	type wrapper struct {
		CSS *settings.UntrustedContent `json:"css,omitempty"`
	}
	base := wrapper{CSS: settings.Ptr(settings.Untrusted("a{}"))}
	patch := wrapper{CSS: settings.Ptr(settings.Untrusted("b{}"))}

	merged := settings.Merge(base, patch)
	if merged.CSS.Raw() != "b{}" {
		t.Fatalf("expected patch content, got %q", merged.CSS.Raw())
	}
	if paths := settings.Paths(patch); !reflect.DeepEqual(paths, []string{"css"}) {
		t.Fatalf("expected opaque leaf path, got %v", paths)
	}
}

func TestPaths(t *testing.T) {
	patch := settings.StyleSettings{
		TextColor:  settings.Ptr("#111"),
		Typography: &settings.Typography{FontSize: settings.Ptr(18.0), FontWeight: settings.Ptr(700)},
		Background: &settings.Background{Gradient: &settings.Gradient{Angle: settings.Ptr(90.0)}},
	}

	want := []string{
		"background.gradient.angle",
		"textColor",
		"typography.fontSize",
		"typography.fontWeight",
	}
	if got := settings.Paths(patch); !reflect.DeepEqual(got, want) {
		t.Fatalf("paths mismatch\nwant %v\ngot  %v", want, got)
	}
}

func TestFilterDropsRejectedLeaves(t *testing.T) {
	patch := settings.LayoutSettings{
		Padding: &settings.Box{Top: settings.Ptr(10.0), Left: settings.Ptr(4.0)},
		Margin:  &settings.Box{Top: settings.Ptr(2.0)},
	}

	filtered := settings.Filter(patch, func(path string) bool {
		return path != "padding.top" && !settings.HasPathPrefix(path, "margin")
	})

	if filtered.Padding == nil || filtered.Padding.Top != nil || *filtered.Padding.Left != 4 {
		t.Fatalf("unexpected padding %+v", filtered.Padding)
	}
	if filtered.Margin != nil {
		t.Fatalf("expected empty margin to collapse to nil, got %+v", filtered.Margin)
	}
	if patch.Padding.Top == nil {
		t.Fatalf("filter must not mutate its input")
	}
}

func TestDiff(t *testing.T) {
	before := settings.StyleSettings{TextColor: settings.Ptr("#111"), Opacity: settings.Ptr(1.0)}
	after := settings.StyleSettings{TextColor: settings.Ptr("#222"), Opacity: settings.Ptr(1.0), BorderRadius: settings.Ptr(4.0)}

	changes := settings.Diff("style", before, after)

	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %v", changes)
	}
	if changes[0].Path != "style.borderRadius" || changes[0].From != nil {
		t.Fatalf("unexpected first change %+v", changes[0])
	}
	if got := changes[1].String(); got != "style.textColor: #111 -> #222" {
		t.Fatalf("unexpected change string %q", got)
	}
}

func TestHasPathPrefix(t *testing.T) {
	cases := []struct {
		path   string
		prefix string
		want   bool
	}{
		{"padding.top", "padding", true},
		{"padding", "padding", true},
		{"paddingX", "padding", false},
		{"margin.top", "padding", false},
	}
	for _, tc := range cases {
		if got := settings.HasPathPrefix(tc.path, tc.prefix); got != tc.want {
			t.Errorf("HasPathPrefix(%q, %q) = %v, want %v", tc.path, tc.prefix, got, tc.want)
		}
	}
}
