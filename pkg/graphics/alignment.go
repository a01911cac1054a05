package graphics

// Alignment positions a child inside a parent. X and Y range from -1 (left,
// top) to 1 (right, bottom); 0 is centered.
type Alignment struct {
	X float64
	Y float64
}

// Common alignments.
var (
	AlignmentTopLeft      = Alignment{X: -1, Y: -1}
	AlignmentTopCenter    = Alignment{X: 0, Y: -1}
	AlignmentTopRight     = Alignment{X: 1, Y: -1}
	AlignmentCenterLeft   = Alignment{X: -1, Y: 0}
	AlignmentCenter       = Alignment{X: 0, Y: 0}
	AlignmentCenterRight  = Alignment{X: 1, Y: 0}
	AlignmentBottomLeft   = Alignment{X: -1, Y: 1}
	AlignmentBottomCenter = Alignment{X: 0, Y: 1}
	AlignmentBottomRight  = Alignment{X: 1, Y: 1}
)

var alignmentNames = map[Alignment]string{
	AlignmentTopLeft:      "topLeading",
	AlignmentTopCenter:    "top",
	AlignmentTopRight:     "topTrailing",
	AlignmentCenterLeft:   "leading",
	AlignmentCenter:       "center",
	AlignmentCenterRight:  "trailing",
	AlignmentBottomLeft:   "bottomLeading",
	AlignmentBottomCenter: "bottom",
	AlignmentBottomRight:  "bottomTrailing",
}

// Opposite mirrors the alignment horizontally, keeping the vertical position.
func (a Alignment) Opposite() Alignment {
	return Alignment{X: -a.X, Y: a.Y}
}

// Inset returns the offset that places a child of size inner inside outer.
func (a Alignment) Inset(outer, inner Size) Offset {
	return Offset{
		X: (outer.Width - inner.Width) * (a.X + 1) / 2,
		Y: (outer.Height - inner.Height) * (a.Y + 1) / 2,
	}
}

// Equal reports whether two alignments match within floating-point tolerance.
func (a Alignment) Equal(other Alignment) bool {
	return floatEqual(a.X, other.X) && floatEqual(a.Y, other.Y)
}

func (a Alignment) String() string {
	if name, ok := alignmentNames[a]; ok {
		return name
	}
	return "custom"
}
