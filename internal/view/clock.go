package view

import (
	"time"

	"github.com/1broseidon/deskfolio/internal/geom"
)

// ClockInterval is how often the top-bar clock is redrawn.
const ClockInterval = time.Second

// Clock formats the top-bar time as HH:MM.
func Clock(now time.Time) string {
	return now.Format("15:04")
}

// TopBar returns the status bar strip of the given height.
func TopBar(height int, vp geom.Size) geom.Rect {
	return geom.Rect{X: 0, Y: 0, Width: vp.Width, Height: height}
}
