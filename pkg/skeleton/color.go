package skeleton

// Color is an RGBA color with components in the 0..1 range.
type Color struct {
	R, G, B, A float64
}

// NewColor returns a color with the given components.
func NewColor(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// White is the default slot color.
func White() Color {
	return Color{1, 1, 1, 1}
}

// Set replaces all four components.
func (c *Color) Set(r, g, b, a float64) {
	c.R, c.G, c.B, c.A = r, g, b, a
	c.Clamp()
}

// SetFromColor copies other into c.
func (c *Color) SetFromColor(other Color) {
	*c = other
}

// Add adds the given amounts to each component and clamps the result.
func (c *Color) Add(r, g, b, a float64) {
	c.R += r
	c.G += g
	c.B += b
	c.A += a
	c.Clamp()
}

// Clamp limits every component to 0..1.
func (c *Color) Clamp() {
	c.R = clamp01(c.R)
	c.G = clamp01(c.G)
	c.B = clamp01(c.B)
	c.A = clamp01(c.A)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
