package slice

import (
	"fmt"

	"github.com/dm-vev/worldslice/world"
)

// SectionCache caches ClonedSections by their position so that a section
// shared by several snapshots within the same window, typically one world
// tick, is cloned only once.
//
// A SectionCache is only ever used on the world's transaction goroutine: all
// of Acquire, Release and the invalidation methods must be called during a
// world transaction. The clones it hands out, by contrast, are immutable and
// may be read from any goroutine.
type SectionCache struct {
	sections map[world.SubChunkPos]*ClonedSection
}

// NewSectionCache creates an empty SectionCache.
func NewSectionCache() *SectionCache {
	return &SectionCache{sections: map[world.SubChunkPos]*ClonedSection{}}
}

// Acquire returns the ClonedSection for the position passed, cloning the
// live section if no clone is cached. A missing section yields a clone that
// reads as all air. The clone returned must be released using Release once
// no Slice reads from it anymore.
func (c *SectionCache) Acquire(tx *world.Tx, pos world.SubChunkPos) *ClonedSection {
	s, ok := c.sections[pos]
	if !ok {
		s = cloneSection(tx, pos)
		c.sections[pos] = s
	}
	s.refs++
	return s
}

// Release releases a ClonedSection previously returned by Acquire. Release
// panics if the clone has no outstanding references, as that means a release
// was unbalanced.
func (c *SectionCache) Release(s *ClonedSection) {
	if s.refs <= 0 {
		panic(fmt.Sprintf("slice: release of section clone %v that was not acquired", s.pos))
	}
	s.refs--
}

// Invalidate drops the cached clone for the position passed, if any. Slices
// still reading the old clone are unaffected; the next Acquire for the
// position clones the live section anew.
func (c *SectionCache) Invalidate(pos world.SubChunkPos) {
	if s, ok := c.sections[pos]; ok {
		s.invalidated = true
		delete(c.sections, pos)
	}
}

// InvalidateAll drops all cached clones. Callers typically do this once per
// world tick.
func (c *SectionCache) InvalidateAll() {
	for pos, s := range c.sections {
		s.invalidated = true
		delete(c.sections, pos)
	}
}

// Len returns the number of clones currently cached.
func (c *SectionCache) Len() int {
	return len(c.sections)
}

// ReleaseContext releases every clone held by the Context passed. It is a
// convenience for producers that are done with a snapshot.
func (c *SectionCache) ReleaseContext(ctx *Context) {
	for _, s := range ctx.sections {
		if s != nil {
			c.Release(s)
		}
	}
}
