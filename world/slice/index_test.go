package slice

import "testing"

func TestLocalBlockIndex(t *testing.T) {
	seen := map[int]struct{}{}
	for y := 0; y < sectionSize; y++ {
		for z := 0; z < sectionSize; z++ {
			for x := 0; x < sectionSize; x++ {
				i := localBlockIndex(x, y, z)
				if i < 0 || i >= sectionSize*sectionSize*sectionSize {
					t.Fatalf("localBlockIndex(%v,%v,%v) = %v, out of range", x, y, z, i)
				}
				if _, ok := seen[i]; ok {
					t.Fatalf("localBlockIndex(%v,%v,%v) = %v, already produced", x, y, z, i)
				}
				seen[i] = struct{}{}
			}
		}
	}
}

func TestLocalSectionIndex(t *testing.T) {
	seen := map[int]struct{}{}
	for y := 0; y < sectionLength; y++ {
		for z := 0; z < sectionLength; z++ {
			for x := 0; x < sectionLength; x++ {
				i := localSectionIndex(x, y, z)
				if i < 0 || i >= sectionTableSize {
					t.Fatalf("localSectionIndex(%v,%v,%v) = %v, out of range", x, y, z, i)
				}
				if _, ok := seen[i]; ok {
					t.Fatalf("localSectionIndex(%v,%v,%v) = %v, already produced", x, y, z, i)
				}
				seen[i] = struct{}{}
			}
		}
	}
}
