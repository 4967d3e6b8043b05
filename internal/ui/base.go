package ui

// Base tracks the size given to a component by its parent.
// Embed it in a model to get SetSize, Width and Height.
type Base struct {
	width, height int
}

// SetSize records the component dimensions. Negative values are stored as 0.
func (b *Base) SetSize(width, height int) {
	b.width = max(width, 0)
	b.height = max(height, 0)
}

// Width returns the component width.
func (b Base) Width() int { return b.width }

// Height returns the component height.
func (b Base) Height() int { return b.height }

// Sized reports whether both dimensions are non-zero.
func (b Base) Sized() bool { return b.width > 0 && b.height > 0 }
