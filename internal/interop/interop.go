// Package interop converts cell sets to and from general purpose bitmaps.
package interop

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"

	"cellset/internal/cellset"
)

// ErrOutOfDomain is returned when a bitmap holds a value the cell set cannot.
var ErrOutOfDomain = cellset.ErrOutOfDomain

// ToRoaring returns a roaring bitmap with the domain members of s.
func ToRoaring(s *cellset.Words) *roaring.Bitmap {
	return roaring.FromBitSet(ToBitSet(s))
}

// FromRoaring builds a cell set from bm.
func FromRoaring(bm *roaring.Bitmap) (cellset.Words, error) {
	var s cellset.Words
	if !bm.IsEmpty() && bm.Maximum() >= cellset.DomainSize {
		return s, fmt.Errorf("%w: value %d", ErrOutOfDomain, bm.Maximum())
	}
	it := bm.Iterator()
	for it.HasNext() {
		s.Add(int(it.Next()))
	}
	return s, nil
}

// ToBitSet returns a bitset holding the domain members of s. It shares no
// memory with s.
func ToBitSet(s *cellset.Words) *bitset.BitSet {
	return bitset.From([]uint64{s.Word0(), s.Word1() & cellset.HighMask})
}

// FromBitSet builds a cell set from b.
func FromBitSet(b *bitset.BitSet) (cellset.Words, error) {
	var s cellset.Words
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		if i >= cellset.DomainSize {
			return cellset.Words{}, fmt.Errorf("%w: value %d", ErrOutOfDomain, i)
		}
		s.Add(int(i))
	}
	return s, nil
}
