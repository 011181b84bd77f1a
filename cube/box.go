package cube

// Box is an axis-aligned volume of blocks. Both the minimum and maximum
// positions are inclusive: a Box spanning a single block has equal minimum
// and maximum positions.
type Box struct {
	min, max Pos
}

// NewBox creates a Box spanning the two positions passed. The coordinates of
// min must be less than or equal to those of max on every axis.
func NewBox(min, max Pos) Box {
	return Box{min: min, max: max}
}

// Min returns the minimum position of the Box.
func (b Box) Min() Pos {
	return b.min
}

// Max returns the maximum position of the Box.
func (b Box) Max() Pos {
	return b.max
}

// Grow expands the Box by n blocks outward on every axis and returns the new
// Box.
func (b Box) Grow(n int) Box {
	return Box{
		min: Pos{b.min[0] - n, b.min[1] - n, b.min[2] - n},
		max: Pos{b.max[0] + n, b.max[1] + n, b.max[2] + n},
	}
}

// Contains checks if the position passed falls within the (inclusive) bounds
// of the Box.
func (b Box) Contains(pos Pos) bool {
	return pos[0] >= b.min[0] && pos[0] <= b.max[0] &&
		pos[1] >= b.min[1] && pos[1] <= b.max[1] &&
		pos[2] >= b.min[2] && pos[2] <= b.max[2]
}

// Clip returns the intersection of the Box with the Box passed. If the two
// boxes do not overlap on an axis, the returned Box has a maximum smaller
// than its minimum on that axis.
func (b Box) Clip(o Box) Box {
	return Box{
		min: Pos{max(b.min[0], o.min[0]), max(b.min[1], o.min[1]), max(b.min[2], o.min[2])},
		max: Pos{min(b.max[0], o.max[0]), min(b.max[1], o.max[1]), min(b.max[2], o.max[2])},
	}
}
