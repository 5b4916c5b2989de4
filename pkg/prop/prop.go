// Package prop describes display geometry and the capture regions chosen for it.
package prop

import "fmt"

// Resolution is the size of a display in pixels.
type Resolution struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Region is a rectangle of a display to capture. A zero Width or Height
// extends the region to the edge of the display.
type Region struct {
	X      int `yaml:"x" mapstructure:"x"`
	Y      int `yaml:"y" mapstructure:"y"`
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

// Full covers the whole display.
func Full(res Resolution) Region {
	return Region{Width: res.Width, Height: res.Height}
}

// Clamp fits r inside res. The origin is moved inside the display first, then
// the size is cut to what remains right and below it.
func (r Region) Clamp(res Resolution) Region {
	if r.Width <= 0 || r.Width > res.Width {
		r.Width = res.Width
	}
	if r.Height <= 0 || r.Height > res.Height {
		r.Height = res.Height
	}
	r.X = clamp(r.X, 0, res.Width)
	r.Y = clamp(r.Y, 0, res.Height)
	if r.Width > res.Width-r.X {
		r.Width = res.Width - r.X
	}
	if r.Height > res.Height-r.Y {
		r.Height = res.Height - r.Y
	}
	return r
}

// Empty reports whether the region holds no pixel.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Region) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
