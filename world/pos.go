package world

import (
	"fmt"

	"github.com/dm-vev/worldslice/cube"
)

// ChunkPos holds the position of a chunk. The type is provided as a utility
// struct for keeping track of a chunk's position. Chunks do not themselves
// keep track of that. Chunk positions are different from block positions in
// the way that increasing the X/Z by one means increasing the absolute value
// on the X/Z axis in terms of blocks by 16.
type ChunkPos [2]int32

// X returns the X coordinate of the chunk position.
func (p ChunkPos) X() int32 {
	return p[0]
}

// Z returns the Z coordinate of the chunk position.
func (p ChunkPos) Z() int32 {
	return p[1]
}

// String implements fmt.Stringer and returns (x, z).
func (p ChunkPos) String() string {
	return fmt.Sprintf("(%v, %v)", p[0], p[1])
}

// SubChunkPos holds the position of a sub-chunk, a 16x16x16 section of a
// world. Increasing any coordinate by one means increasing the absolute
// value on that axis in terms of blocks by 16.
type SubChunkPos [3]int32

// X returns the X coordinate of the sub-chunk position.
func (p SubChunkPos) X() int32 {
	return p[0]
}

// Y returns the Y coordinate of the sub-chunk position.
func (p SubChunkPos) Y() int32 {
	return p[1]
}

// Z returns the Z coordinate of the sub-chunk position.
func (p SubChunkPos) Z() int32 {
	return p[2]
}

// String implements fmt.Stringer and returns (x, y, z).
func (p SubChunkPos) String() string {
	return fmt.Sprintf("(%v, %v, %v)", p[0], p[1], p[2])
}

// SubChunkPosFromBlockPos returns the position of the sub-chunk that the
// block position passed falls in.
func SubChunkPosFromBlockPos(p cube.Pos) SubChunkPos {
	return SubChunkPos{int32(p[0] >> 4), int32(p[1] >> 4), int32(p[2] >> 4)}
}

// chunkPosFromBlockPos returns the position of the chunk that the block
// position passed falls in.
func chunkPosFromBlockPos(p cube.Pos) ChunkPos {
	return ChunkPos{int32(p[0] >> 4), int32(p[2] >> 4)}
}

// chunkPosFromSubChunkPos returns the position of the chunk column that the
// sub-chunk position passed falls in.
func chunkPosFromSubChunkPos(p SubChunkPos) ChunkPos {
	return ChunkPos{p[0], p[2]}
}
