package game

import (
	"fmt"
	"time"

	"github.com/iburimskiy/vusic/internal/config"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func inRect(px, py, x, y, w, h int) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}

// barRect is the progress bar, anchored to the bottom edge of the window.
func barRect() (x, y, w, h int) {
	return config.BarMargin,
		config.WindowHeight - config.BarMargin - config.BarHeight,
		config.WindowWidth - 2*config.BarMargin,
		config.BarHeight
}

// barFraction maps a cursor x onto the bar as 0..1.
func barFraction(mouseX int) float64 {
	x, _, w, _ := barRect()
	return clamp01(float64(mouseX-x) / float64(w))
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
