package geom

// Bounds describes how far a window may travel and how small it may get.
// Offsets are relative to the viewport edges.
type Bounds struct {
	// MinX is the most negative left edge (e.g. -400 keeps part of a window
	// reachable after dragging it off the left side).
	MinX int `yaml:"min_x"`
	// RightMargin is subtracted from the viewport width for the max left edge.
	RightMargin int `yaml:"right_margin"`
	// MinY reserves the status bar.
	MinY int `yaml:"min_y"`
	// BottomMargin is subtracted from the viewport height for the max top edge.
	BottomMargin int `yaml:"bottom_margin"`
	MinWidth     int `yaml:"min_width"`
	MinHeight    int `yaml:"min_height"`
}

// DefaultBounds returns the desktop defaults: x in [-400, vw-50],
// y in [24, vh-50], size at least 300x200.
func DefaultBounds() Bounds {
	return Bounds{
		MinX:         -400,
		RightMargin:  50,
		MinY:         24,
		BottomMargin: 50,
		MinWidth:     300,
		MinHeight:    200,
	}
}

// ClampX clamps a left edge into the allowed range for the viewport.
func (b Bounds) ClampX(x int, vp Size) int {
	return Clamp(x, b.MinX, vp.Width-b.RightMargin)
}

// ClampY clamps a top edge into the allowed range for the viewport.
func (b Bounds) ClampY(y int, vp Size) int {
	return Clamp(y, b.MinY, vp.Height-b.BottomMargin)
}

// ClampPosition clamps both coordinates of p.
func (b Bounds) ClampPosition(p Point, vp Size) Point {
	return Point{X: b.ClampX(p.X, vp), Y: b.ClampY(p.Y, vp)}
}

// ClampSize floors s to the minimum window size.
func (b Bounds) ClampSize(s Size) Size {
	return Size{
		Width:  Floor(s.Width, b.MinWidth),
		Height: Floor(s.Height, b.MinHeight),
	}
}
