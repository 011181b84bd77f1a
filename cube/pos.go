package cube

import "fmt"

// Pos holds the position of a block in a world. The position is represented
// by an X, Y and Z component.
type Pos [3]int

// X returns the X coordinate of the block position.
func (p Pos) X() int {
	return p[0]
}

// Y returns the Y coordinate of the block position.
func (p Pos) Y() int {
	return p[1]
}

// Z returns the Z coordinate of the block position.
func (p Pos) Z() int {
	return p[2]
}

// Add adds two block positions together and returns a new one with the
// combined values.
func (p Pos) Add(pos Pos) Pos {
	return Pos{p[0] + pos[0], p[1] + pos[1], p[2] + pos[2]}
}

// Sub subtracts a block position from another and returns a new one with the
// subtracted values.
func (p Pos) Sub(pos Pos) Pos {
	return Pos{p[0] - pos[0], p[1] - pos[1], p[2] - pos[2]}
}

// String converts the Pos to a string in the format (1,2,3) and returns it.
func (p Pos) String() string {
	return fmt.Sprintf("(%v,%v,%v)", p[0], p[1], p[2])
}

// OutOfBounds checks if the position is out of bounds for the Range passed.
func (p Pos) OutOfBounds(r Range) bool {
	y := p[1]
	return y > r[1] || y < r[0]
}
