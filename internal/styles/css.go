package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/settings"
)

// Property is one CSS declaration.
type Property struct {
	Name  string
	Value string
}

// Properties is an ordered declaration list. Later entries win, as in CSS.
type Properties []Property

// CSS renders the list as inline declarations.
func (p Properties) CSS() string {
	var b strings.Builder
	for i, prop := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(prop.Name)
		b.WriteString(": ")
		b.WriteString(prop.Value)
		b.WriteByte(';')
	}
	return b.String()
}

// Get returns the last value declared for name.
func (p Properties) Get(name string) (string, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Name == name {
			return p[i].Value, true
		}
	}
	return "", false
}

func (p *Properties) add(name, value string) {
	if value == "" {
		return
	}
	*p = append(*p, Property{Name: name, Value: value})
}

// Compute translates effective settings into concrete CSS properties.
func (r *Resolver) Compute(effective Effective) Properties {
	var props Properties
	r.layout(&props, effective.Layout)
	r.background(&props, effective.Style.Background)
	if effective.Style.TextColor != nil {
		props.add("color", *effective.Style.TextColor)
	}
	r.typography(&props, effective.Style.Typography)
	r.decoration(&props, effective.Style)
	return props
}

func (r *Resolver) layout(props *Properties, layout settings.LayoutSettings) {
	width := settings.WidthContainer
	if layout.Width != nil {
		width = *layout.Width
	}
	maxWidth := 0.0
	switch width {
	case settings.WidthFull:
	case settings.WidthNarrow:
		maxWidth = r.narrowWidth
	case settings.WidthCustom:
		maxWidth = r.containerWidth
		if layout.CustomWidth != nil && *layout.CustomWidth > 0 {
			maxWidth = *layout.CustomWidth
		}
	default:
		maxWidth = r.containerWidth
	}

	props.add("width", "100%")
	if maxWidth > 0 {
		props.add("max-width", number(maxWidth)+"px")
	}
	if layout.MinHeight != nil {
		props.add("min-height", number(*layout.MinHeight)+"px")
	}
	props.add("padding", r.box(layout.Padding, defaultPadding))
	if layout.Margin != nil {
		props.add("margin", r.box(layout.Margin, [4]float64{}))
	}
	if maxWidth > 0 {
		props.add("margin-left", "auto")
		props.add("margin-right", "auto")
	}
	if layout.Alignment != nil {
		props.add("text-align", *layout.Alignment)
	}
	if layout.Display != nil {
		props.add("display", *layout.Display)
	}
	if flex := layout.Flex; flex != nil {
		props.add("flex-direction", deref(flex.Direction))
		props.add("justify-content", deref(flex.Justify))
		props.add("align-items", deref(flex.Align))
		props.add("flex-wrap", deref(flex.Wrap))
		if flex.Gap != nil {
			props.add("gap", number(*flex.Gap)+r.unit)
		}
	}
	if grid := layout.Grid; grid != nil {
		if grid.Columns != nil && *grid.Columns > 0 {
			props.add("grid-template-columns", fmt.Sprintf("repeat(%d, minmax(0, 1fr))", *grid.Columns))
		}
		if grid.Rows != nil && *grid.Rows > 0 {
			props.add("grid-template-rows", fmt.Sprintf("repeat(%d, auto)", *grid.Rows))
		}
		if grid.Gap != nil {
			props.add("gap", number(*grid.Gap)+r.unit)
		}
	}
}

// box formats a spacing box as "top right bottom left". Sides left unset take
// the fallback.
func (r *Resolver) box(b *settings.Box, fallback [4]float64) string {
	values := fallback
	unit := r.unit
	if b != nil {
		for i, side := range []*float64{b.Top, b.Right, b.Bottom, b.Left} {
			if side != nil {
				values[i] = *side
			}
		}
		if b.Unit != nil && *b.Unit != "" {
			unit = *b.Unit
		}
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = number(v) + unit
	}
	return strings.Join(parts, " ")
}

func (r *Resolver) background(props *Properties, bg *settings.Background) {
	if bg == nil || bg.Type == nil {
		return
	}
	switch *bg.Type {
	case settings.BackgroundColor:
		props.add("background-color", deref(bg.Color))
	case settings.BackgroundGradient:
		props.add("background-image", gradient(bg.Gradient))
	case settings.BackgroundImage:
		if bg.Image == nil || *bg.Image == "" {
			props.add("background-color", deref(bg.Color))
			return
		}
		image := fmt.Sprintf("url(%q)", *bg.Image)
		if bg.OverlayOpacity != nil && *bg.OverlayOpacity > 0 {
			overlay := rgba(orDefault(bg.OverlayColor, "#000000"), *bg.OverlayOpacity)
			image = fmt.Sprintf("linear-gradient(%s, %s), %s", overlay, overlay, image)
		}
		props.add("background-image", image)
		props.add("background-size", orDefault(bg.Size, "cover"))
		props.add("background-position", orDefault(bg.Position, "center"))
		props.add("background-repeat", orDefault(bg.Repeat, "no-repeat"))
	case settings.BackgroundVideo:
		// The video element is rendered by the section; only a fallback colour
		// belongs in CSS.
		props.add("background-color", deref(bg.Color))
	}
}

func gradient(g *settings.Gradient) string {
	if g == nil || len(g.Stops) == 0 {
		return ""
	}
	stops := make([]string, len(g.Stops))
	for i, stop := range g.Stops {
		stops[i] = fmt.Sprintf("%s %s%%", stop.Color, number(stop.Position))
	}
	if g.Type != nil && *g.Type == settings.GradientRadial {
		return fmt.Sprintf("radial-gradient(circle, %s)", strings.Join(stops, ", "))
	}
	angle := 0.0
	if g.Angle != nil {
		angle = *g.Angle
	}
	return fmt.Sprintf("linear-gradient(%sdeg, %s)", number(angle), strings.Join(stops, ", "))
}

func (r *Resolver) typography(props *Properties, t *settings.Typography) {
	size := float64(DefaultFontSize)
	lineHeight := DefaultLineHeight
	if t != nil {
		props.add("font-family", deref(t.FontFamily))
		if t.FontSize != nil {
			size = *t.FontSize
		}
	}
	props.add("font-size", number(size)+r.unit)
	if t != nil && t.FontWeight != nil {
		props.add("font-weight", strconv.Itoa(*t.FontWeight))
	}
	if t != nil && t.LineHeight != nil {
		lineHeight = *t.LineHeight
	}
	props.add("line-height", number(lineHeight))
	if t == nil {
		return
	}
	if t.LetterSpacing != nil {
		props.add("letter-spacing", number(*t.LetterSpacing)+r.unit)
	}
	props.add("text-transform", deref(t.TextTransform))
	props.add("text-decoration", deref(t.TextDecoration))
}

func (r *Resolver) decoration(props *Properties, style settings.StyleSettings) {
	if b := style.Border; b != nil && b.Width != nil && *b.Width > 0 {
		props.add("border", fmt.Sprintf("%spx %s %s", number(*b.Width), orDefault(b.Style, "solid"), orDefault(b.Color, "currentColor")))
	}
	if style.BorderRadius != nil {
		props.add("border-radius", number(*style.BorderRadius)+"px")
	}
	if len(style.BoxShadows) > 0 {
		shadows := make([]string, len(style.BoxShadows))
		for i, s := range style.BoxShadows {
			shadow := fmt.Sprintf("%spx %spx %spx %spx %s", number(s.X), number(s.Y), number(s.Blur), number(s.Spread), s.Color)
			if s.Inset {
				shadow = "inset " + shadow
			}
			shadows[i] = shadow
		}
		props.add("box-shadow", strings.Join(shadows, ", "))
	}
	if t := style.Transform; t != nil {
		var parts []string
		if t.TranslateX != nil || t.TranslateY != nil {
			parts = append(parts, fmt.Sprintf("translate(%spx, %spx)", number(derefFloat(t.TranslateX)), number(derefFloat(t.TranslateY))))
		}
		if t.Scale != nil {
			parts = append(parts, fmt.Sprintf("scale(%s)", number(*t.Scale)))
		}
		if t.Rotate != nil {
			parts = append(parts, fmt.Sprintf("rotate(%sdeg)", number(*t.Rotate)))
		}
		props.add("transform", strings.Join(parts, " "))
	}
	if style.Opacity != nil {
		props.add("opacity", number(*style.Opacity))
	}
}

// rgba converts a #rgb or #rrggbb colour into rgba() with alpha. Any other
// notation is blended with transparent through color-mix so the alpha still
// applies.
func rgba(color string, alpha float64) string {
	alpha = max(0, min(alpha, 1))
	value := strings.TrimPrefix(color, "#")
	if len(value) == 3 {
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	}
	rgb, err := strconv.ParseUint(value, 16, 32)
	if !strings.HasPrefix(color, "#") || len(value) != 6 || err != nil {
		return fmt.Sprintf("color-mix(in srgb, %s %s%%, transparent)", color, number(alpha*100))
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", rgb>>16&0xff, rgb>>8&0xff, rgb&0xff, number(alpha))
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func orDefault(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
