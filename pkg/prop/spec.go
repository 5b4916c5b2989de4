package prop

// Specification selects a capture region for displays of a given resolution.
// A nil MatchWidth or MatchHeight matches any value.
type Specification struct {
	MatchWidth  *int `yaml:"match_width,omitempty" mapstructure:"match_width"`
	MatchHeight *int `yaml:"match_height,omitempty" mapstructure:"match_height"`

	X      int `yaml:"x" mapstructure:"x"`
	Y      int `yaml:"y" mapstructure:"y"`
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`

	Display int `yaml:"display" mapstructure:"display"`
}

// Matches reports whether s applies to res.
func (s Specification) Matches(res Resolution) bool {
	if s.MatchWidth != nil && *s.MatchWidth != res.Width {
		return false
	}
	if s.MatchHeight != nil && *s.MatchHeight != res.Height {
		return false
	}
	return true
}

// Region returns the region of s, sizes left at zero are filled up to the
// right and bottom edges of res.
func (s Specification) Region(res Resolution) Region {
	r := Region{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
	if r.Width == 0 {
		r.Width = res.Width - r.X
	}
	if r.Height == 0 {
		r.Height = res.Height - r.Y
	}
	return r
}

// Select returns the first specification matching res with its sizes filled.
// Without a match the whole display 0 is captured.
func Select(res Resolution, specs []Specification) Specification {
	for _, s := range specs {
		if !s.Matches(res) {
			continue
		}
		r := s.Region(res)
		s.Width, s.Height = r.Width, r.Height
		return s
	}
	return Specification{Width: res.Width, Height: res.Height}
}

// Int returns a pointer to v, for building specifications in code.
func Int(v int) *int {
	return &v
}
