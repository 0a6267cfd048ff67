package styles_test

import (
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/goliatone/go-pagebuilder/internal/styles"
)

func box(v float64) *settings.Box {
	return &settings.Box{Top: &v, Right: &v, Bottom: &v, Left: &v}
}

func TestResolveResponsiveOverrideIsPartial(t *testing.T) {
	section := sections.Section{
		Layout: settings.LayoutSettings{Padding: box(10)},
		Style: settings.StyleSettings{
			Background: &settings.Background{Type: settings.Ptr(settings.BackgroundColor), Color: settings.Ptr("#eee")},
		},
		Responsive: settings.ResponsiveSettings{
			Mobile: &settings.Override{Layout: &settings.LayoutSettings{Alignment: settings.Ptr("center")}},
		},
	}
	resolver := styles.NewResolver()

	effective := resolver.Resolve(section, settings.Mobile)

	if got := *effective.Layout.Padding.Top; got != 10 {
		t.Fatalf("expected inherited padding 10, got %v", got)
	}
	if got := *effective.Layout.Padding.Left; got != 10 {
		t.Fatalf("expected inherited padding 10, got %v", got)
	}
	if got := *effective.Layout.Alignment; got != "center" {
		t.Fatalf("expected overridden alignment, got %q", got)
	}
	if effective.Style.Background == nil || *effective.Style.Background.Color != "#eee" {
		t.Fatalf("expected background untouched")
	}

	desktop := resolver.Resolve(section, settings.Desktop)
	if desktop.Layout.Alignment != nil {
		t.Fatalf("desktop must ignore the mobile override")
	}
	if section.Layout.Alignment != nil {
		t.Fatalf("resolve must not mutate the section")
	}
}

func TestComputeWidthModes(t *testing.T) {
	cases := []struct {
		name     string
		layout   settings.LayoutSettings
		maxWidth string
	}{
		{"full", settings.LayoutSettings{Width: settings.Ptr(settings.WidthFull)}, ""},
		{"container", settings.LayoutSettings{Width: settings.Ptr(settings.WidthContainer)}, "1200px"},
		{"narrow", settings.LayoutSettings{Width: settings.Ptr(settings.WidthNarrow)}, "800px"},
		{"custom", settings.LayoutSettings{Width: settings.Ptr(settings.WidthCustom), CustomWidth: settings.Ptr(960.0)}, "960px"},
		{"custom without width", settings.LayoutSettings{Width: settings.Ptr(settings.WidthCustom)}, "1200px"},
		{"unset", settings.LayoutSettings{}, "1200px"},
	}
	resolver := styles.NewResolver()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			props := resolver.Compute(styles.Effective{Layout: tc.layout})
			got, ok := props.Get("max-width")
			if tc.maxWidth == "" {
				if ok {
					t.Fatalf("expected no max-width, got %q", got)
				}
				return
			}
			if got != tc.maxWidth {
				t.Fatalf("expected max-width %s, got %q", tc.maxWidth, got)
			}
			if margin, _ := props.Get("margin-left"); margin != "auto" {
				t.Fatalf("expected centred box")
			}
		})
	}
}

func TestComputeFallbacks(t *testing.T) {
	resolver := styles.NewResolver()
	props := resolver.Compute(styles.Effective{})

	expect := map[string]string{
		"padding":     "40px 20px 40px 20px",
		"font-size":   "16px",
		"line-height": "1.5",
	}
	for name, want := range expect {
		if got, _ := props.Get(name); got != want {
			t.Errorf("%s: expected %q, got %q", name, want, got)
		}
	}
	if _, ok := props.Get("border"); ok {
		t.Fatalf("no border expected without width")
	}
}

func TestComputePaddingUsesUnit(t *testing.T) {
	resolver := styles.NewResolver(styles.WithUnit("rem"))
	props := resolver.Compute(styles.Effective{Layout: settings.LayoutSettings{
		Padding: &settings.Box{Top: settings.Ptr(2.0)},
		Margin:  &settings.Box{Bottom: settings.Ptr(1.0), Unit: settings.Ptr("px")},
	}})

	if got, _ := props.Get("padding"); got != "2rem 20rem 40rem 20rem" {
		t.Fatalf("unexpected padding %q", got)
	}
	if got, _ := props.Get("margin"); got != "0px 0px 1px 0px" {
		t.Fatalf("unexpected margin %q", got)
	}
}

func TestComputeBackgrounds(t *testing.T) {
	resolver := styles.NewResolver()

	gradient := resolver.Compute(styles.Effective{Style: settings.StyleSettings{Background: &settings.Background{
		Type:     settings.Ptr(settings.BackgroundGradient),
		Gradient: &settings.Gradient{Stops: []settings.GradientStop{{Color: "#000", Position: 0}, {Color: "#fff", Position: 100}}},
	}}})
	if got, _ := gradient.Get("background-image"); got != "linear-gradient(0deg, #000 0%, #fff 100%)" {
		t.Fatalf("unexpected gradient %q", got)
	}

	radial := resolver.Compute(styles.Effective{Style: settings.StyleSettings{Background: &settings.Background{
		Type: settings.Ptr(settings.BackgroundGradient),
		Gradient: &settings.Gradient{
			Type:  settings.Ptr(settings.GradientRadial),
			Stops: []settings.GradientStop{{Color: "red", Position: 0}, {Color: "blue", Position: 100}},
		},
	}}})
	if got, _ := radial.Get("background-image"); got != "radial-gradient(circle, red 0%, blue 100%)" {
		t.Fatalf("unexpected radial gradient %q", got)
	}

	image := resolver.Compute(styles.Effective{Style: settings.StyleSettings{Background: &settings.Background{
		Type:           settings.Ptr(settings.BackgroundImage),
		Image:          settings.Ptr("/hero.jpg"),
		OverlayColor:   settings.Ptr("#000000"),
		OverlayOpacity: settings.Ptr(0.4),
	}}})
	want := `linear-gradient(rgba(0, 0, 0, 0.4), rgba(0, 0, 0, 0.4)), url("/hero.jpg")`
	if got, _ := image.Get("background-image"); got != want {
		t.Fatalf("expected overlay composited into one value\nwant %s\ngot  %s", want, got)
	}
	if got, _ := image.Get("background-size"); got != "cover" {
		t.Fatalf("expected cover size, got %q", got)
	}

	overlays := []struct {
		color string
		want  string
	}{
		{"#fff", "rgba(255, 255, 255, 0.5)"},
		{"black", "color-mix(in srgb, black 50%, transparent)"},
		{"rgb(0,0,0)", "color-mix(in srgb, rgb(0,0,0) 50%, transparent)"},
		{"#zzzzzz", "color-mix(in srgb, #zzzzzz 50%, transparent)"},
	}
	for _, tc := range overlays {
		named := resolver.Compute(styles.Effective{Style: settings.StyleSettings{Background: &settings.Background{
			Type:           settings.Ptr(settings.BackgroundImage),
			Image:          settings.Ptr("/hero.jpg"),
			OverlayColor:   settings.Ptr(tc.color),
			OverlayOpacity: settings.Ptr(0.5),
		}}})
		want := "linear-gradient(" + tc.want + ", " + tc.want + `), url("/hero.jpg")`
		if got, _ := named.Get("background-image"); got != want {
			t.Fatalf("overlay %s: want %s, got %s", tc.color, want, got)
		}
	}
}

func TestComputeDecoration(t *testing.T) {
	resolver := styles.NewResolver()
	props := resolver.Compute(styles.Effective{Style: settings.StyleSettings{
		Border:       &settings.Border{Width: settings.Ptr(2.0), Color: settings.Ptr("#333")},
		BorderRadius: settings.Ptr(8.0),
		BoxShadows: []settings.BoxShadow{
			{Y: 2, Blur: 4, Color: "rgba(0,0,0,.1)"},
			{Y: 1, Blur: 2, Color: "#000", Inset: true},
		},
		Transform: &settings.Transform{Rotate: settings.Ptr(45.0), Scale: settings.Ptr(1.1), TranslateX: settings.Ptr(10.0)},
		Opacity:   settings.Ptr(0.0),
	}})

	expect := map[string]string{
		"border":        "2px solid #333",
		"border-radius": "8px",
		"box-shadow":    "0px 2px 4px 0px rgba(0,0,0,.1), inset 0px 1px 2px 0px #000",
		"transform":     "translate(10px, 0px) scale(1.1) rotate(45deg)",
		"opacity":       "0",
	}
	for name, want := range expect {
		if got, _ := props.Get(name); got != want {
			t.Errorf("%s: expected %q, got %q", name, want, got)
		}
	}

	zeroBorder := resolver.Compute(styles.Effective{Style: settings.StyleSettings{Border: &settings.Border{Width: settings.Ptr(0.0)}}})
	if _, ok := zeroBorder.Get("border"); ok {
		t.Fatalf("zero-width border must not render")
	}
}

func TestResolveTranslationAppliesContentOverride(t *testing.T) {
	section := sections.Section{
		Translations: []sections.Translation{{LanguageID: "en", Title: "Welcome to our store", Metadata: map[string]any{"ctaText": "Shop"}}},
		Responsive: settings.ResponsiveSettings{
			Mobile: &settings.Override{Content: &settings.ContentOverride{Title: settings.Ptr("Welcome")}},
		},
	}
	resolver := styles.NewResolver()

	mobile, ok := resolver.ResolveTranslation(section, settings.Mobile, "en")
	if !ok || mobile.Title != "Welcome" || mobile.Metadata["ctaText"] != "Shop" {
		t.Fatalf("unexpected mobile translation %+v", mobile)
	}
	desktop, _ := resolver.ResolveTranslation(section, settings.Desktop, "en")
	if desktop.Title != "Welcome to our store" {
		t.Fatalf("desktop must keep base title, got %q", desktop.Title)
	}
	if _, ok := resolver.ResolveTranslation(section, settings.Mobile, "fr"); ok {
		t.Fatalf("expected missing language to report false")
	}
}

func TestResolveCSS(t *testing.T) {
	section := sections.Section{
		Layout: settings.LayoutSettings{Width: settings.Ptr(settings.WidthFull), Padding: box(0)},
		Style:  settings.StyleSettings{TextColor: settings.Ptr("#111")},
	}
	got := styles.NewResolver().ResolveCSS(section, settings.Desktop)
	want := "width: 100%; padding: 0px 0px 0px 0px; color: #111; font-size: 16px; line-height: 1.5;"
	if got != want {
		t.Fatalf("unexpected css\nwant %s\ngot  %s", want, got)
	}
}
