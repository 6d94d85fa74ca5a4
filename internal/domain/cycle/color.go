package cycle

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

func ParseColor(hex string) (Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q", ErrInvalidValue, hex)
	}
	return fromColorful(c), nil
}

func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Lerp blends linearly in RGB with t clamped to [0,1].
func (c Color) Lerp(to Color, t float64) Color {
	return fromColorful(c.colorful().BlendRgb(to.colorful(), clamp01(t)))
}

func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

func (c Color) String() string { return c.Hex() }

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color) Color {
	return Color{R: c.R, G: c.G, B: c.B}
}

// Palette holds the four reference skybox colors.
type Palette struct {
	Dawn    Color `json:"dawn"`
	Day     Color `json:"day"`
	Evening Color `json:"evening"`
	Night   Color `json:"night"`
}

func DefaultPalette() Palette {
	return Palette{
		Dawn:    Color{R: 0.345, G: 0.486, B: 0.588},
		Day:     Color{R: 0.514, G: 0.812, B: 1},
		Evening: Color{R: 1, G: 0.608, B: 0.514},
		Night:   Color{R: 0.345, G: 0.486, B: 0.588},
	}
}
