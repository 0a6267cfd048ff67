package settings

// Every field in this package is optional. A nil pointer (or nil slice) means
// "not set at this layer" so the same types serve as base settings, responsive
// overrides, presets and brandkit patches. Values are treated as immutable:
// merges allocate new nested structs and never write through pointers.

// WidthMode selects how a section's content box is constrained.
type WidthMode string

const (
	WidthFull      WidthMode = "full"
	WidthContainer WidthMode = "container"
	WidthNarrow    WidthMode = "narrow"
	WidthCustom    WidthMode = "custom"
)

// BackgroundType selects how Background is rendered.
type BackgroundType string

const (
	BackgroundNone     BackgroundType = "none"
	BackgroundColor    BackgroundType = "color"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundImage    BackgroundType = "image"
	BackgroundVideo    BackgroundType = "video"
)

// GradientType is linear or radial.
type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

// Viewport identifies a responsive breakpoint.
type Viewport string

const (
	Desktop Viewport = "desktop"
	Tablet  Viewport = "tablet"
	Mobile  Viewport = "mobile"
)

// Viewports lists the supported breakpoints, widest first.
var Viewports = []Viewport{Desktop, Tablet, Mobile}

// Valid reports whether v is a known viewport.
func (v Viewport) Valid() bool {
	switch v {
	case Desktop, Tablet, Mobile:
		return true
	}
	return false
}

// Box is a four-sided spacing value (padding or margin).
type Box struct {
	Top    *float64 `json:"top,omitempty"`
	Right  *float64 `json:"right,omitempty"`
	Bottom *float64 `json:"bottom,omitempty"`
	Left   *float64 `json:"left,omitempty"`
	Unit   *string  `json:"unit,omitempty"`
}

// FlexSettings configures flex display.
type FlexSettings struct {
	Direction *string  `json:"direction,omitempty"`
	Justify   *string  `json:"justify,omitempty"`
	Align     *string  `json:"align,omitempty"`
	Wrap      *string  `json:"wrap,omitempty"`
	Gap       *float64 `json:"gap,omitempty"`
}

// GridSettings configures grid display.
type GridSettings struct {
	Columns *int     `json:"columns,omitempty"`
	Rows    *int     `json:"rows,omitempty"`
	Gap     *float64 `json:"gap,omitempty"`
}

// LayoutSettings is the layout layer of a section.
type LayoutSettings struct {
	Width       *WidthMode    `json:"width,omitempty"`
	CustomWidth *float64      `json:"customWidth,omitempty"`
	MinHeight   *float64      `json:"minHeight,omitempty"`
	Padding     *Box          `json:"padding,omitempty"`
	Margin      *Box          `json:"margin,omitempty"`
	Alignment   *string       `json:"alignment,omitempty"`
	Display     *string       `json:"display,omitempty"`
	Flex        *FlexSettings `json:"flex,omitempty"`
	Grid        *GridSettings `json:"grid,omitempty"`
}

// GradientStop is one colour stop of a gradient.
type GradientStop struct {
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// Gradient describes a gradient background. Stops replace wholesale.
type Gradient struct {
	Type  *GradientType  `json:"type,omitempty"`
	Angle *float64       `json:"angle,omitempty"`
	Stops []GradientStop `json:"stops,omitempty"`
}

// Background describes the section background layer.
type Background struct {
	Type           *BackgroundType `json:"type,omitempty"`
	Color          *string         `json:"color,omitempty"`
	Gradient       *Gradient       `json:"gradient,omitempty"`
	Image          *string         `json:"image,omitempty"`
	Size           *string         `json:"size,omitempty"`
	Position       *string         `json:"position,omitempty"`
	Repeat         *string         `json:"repeat,omitempty"`
	Video          *string         `json:"video,omitempty"`
	OverlayColor   *string         `json:"overlayColor,omitempty"`
	OverlayOpacity *float64        `json:"overlayOpacity,omitempty"`
}

// Typography describes the text style of a section.
type Typography struct {
	FontFamily     *string  `json:"fontFamily,omitempty"`
	FontSize       *float64 `json:"fontSize,omitempty"`
	FontWeight     *int     `json:"fontWeight,omitempty"`
	LineHeight     *float64 `json:"lineHeight,omitempty"`
	LetterSpacing  *float64 `json:"letterSpacing,omitempty"`
	TextTransform  *string  `json:"textTransform,omitempty"`
	TextDecoration *string  `json:"textDecoration,omitempty"`
}

// Border describes the section border. It is only rendered when Width > 0.
type Border struct {
	Width *float64 `json:"width,omitempty"`
	Style *string  `json:"style,omitempty"`
	Color *string  `json:"color,omitempty"`
}

// BoxShadow is one entry of a stacked box-shadow list.
type BoxShadow struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Blur   float64 `json:"blur"`
	Spread float64 `json:"spread"`
	Color  string  `json:"color"`
	Inset  bool    `json:"inset,omitempty"`
}

// Transform is composed as translate, scale, rotate.
type Transform struct {
	TranslateX *float64 `json:"translateX,omitempty"`
	TranslateY *float64 `json:"translateY,omitempty"`
	Scale      *float64 `json:"scale,omitempty"`
	Rotate     *float64 `json:"rotate,omitempty"`
}

// StyleSettings is the visual style layer of a section.
type StyleSettings struct {
	Background   *Background `json:"background,omitempty"`
	TextColor    *string     `json:"textColor,omitempty"`
	Typography   *Typography `json:"typography,omitempty"`
	Border       *Border     `json:"border,omitempty"`
	BorderRadius *float64    `json:"borderRadius,omitempty"`

	// BoxShadows replaces wholesale. A non-nil empty slice clears inherited shadows.
	BoxShadows []BoxShadow `json:"boxShadows"`
	Transform  *Transform  `json:"transform,omitempty"`
	Opacity    *float64    `json:"opacity,omitempty"`
}

// ContentOverride is a partial translation payload applied at a viewport.
type ContentOverride struct {
	Title    *string        `json:"title,omitempty"`
	Subtitle *string        `json:"subtitle,omitempty"`
	Content  *string        `json:"content,omitempty"`
	Excerpt  *string        `json:"excerpt,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Override is the partial settings patch stored per viewport.
type Override struct {
	Layout  *LayoutSettings  `json:"layout,omitempty"`
	Style   *StyleSettings   `json:"style,omitempty"`
	Content *ContentOverride `json:"content,omitempty"`
}

// ResponsiveSettings maps viewports to overrides. Desktop is the base and is
// normally left empty.
type ResponsiveSettings struct {
	Desktop *Override `json:"desktop,omitempty"`
	Tablet  *Override `json:"tablet,omitempty"`
	Mobile  *Override `json:"mobile,omitempty"`
}

// For returns the override stored for viewport, or nil.
func (r ResponsiveSettings) For(viewport Viewport) *Override {
	switch viewport {
	case Desktop:
		return r.Desktop
	case Tablet:
		return r.Tablet
	case Mobile:
		return r.Mobile
	}
	return nil
}

// With returns a copy of r with viewport's override replaced.
func (r ResponsiveSettings) With(viewport Viewport, override *Override) ResponsiveSettings {
	switch viewport {
	case Desktop:
		r.Desktop = override
	case Tablet:
		r.Tablet = override
	case Mobile:
		r.Mobile = override
	}
	return r
}

// CustomSettings carries author-supplied classes and code. CSS and JS are
// untrusted and only ever rendered inside a sandboxed frame.
type CustomSettings struct {
	CSSClasses []string         `json:"cssClasses,omitempty"`
	CustomCSS  UntrustedContent `json:"customCss"`
	CustomJS   UntrustedContent `json:"customJs"`
	Sandbox    bool             `json:"sandbox"`
}

// AnimationSettings is opaque to the builder core.
type AnimationSettings map[string]any

// Ptr returns a pointer to v. Handy for building settings literals.
func Ptr[T any](v T) *T {
	return &v
}
