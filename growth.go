package jtree

// Growth is the capacity policy of growable containers. The zero value means DefaultGrowth
type Growth struct {
	// Initial is the capacity of the first allocation
	Initial int
	// Factor multiplies the capacity until it fits the requested size
	Factor int
}

// DefaultGrowth starts with four slots and doubles
var DefaultGrowth = Growth{Initial: 4, Factor: 2}

func (g Growth) norm() Growth {
	if g.Initial <= 0 {
		g.Initial = DefaultGrowth.Initial
	}
	if g.Factor < 2 {
		g.Factor = DefaultGrowth.Factor
	}
	return g
}

// next returns the capacity which fits need starting from the current one
func (g Growth) next(cur, need int) int {
	g = g.norm()
	if cur <= 0 {
		cur = g.Initial
	}
	for cur < need {
		cur *= g.Factor
	}
	return cur
}
