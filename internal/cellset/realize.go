package cellset

// highBytes is the number of bytes of word 1 that can hold domain values.
const highBytes = (DomainSize - WordBits + 7) / 8

// realize decodes the words into the ascending member list. Bytes are
// visited low to high and bitPositions is ascending within a byte, so no
// sort is needed. The cost is fixed regardless of cardinality.
func (s *Indexed) realize() {
	if s.members == nil {
		s.members = make([]uint8, DomainSize)
	}
	n := decodeWord(s.members, 0, s.w[0], 0, 8)
	n = decodeWord(s.members, n, s.w[1]&HighMask, WordBits, highBytes)
	s.count = n
	s.stale = false
}

// decodeWord appends the set bits of the first nbytes bytes of w to dst,
// starting at dst[n], offset by base. Returns the new length.
func decodeWord(dst []uint8, n int, w uint64, base uint8, nbytes int) int {
	for k := 0; k < nbytes; k++ {
		b := uint8(w >> (8 * k))
		off := base + uint8(8*k)
		for _, p := range bitPositions[b][:bitCount[b]] {
			dst[n] = off + p
			n++
		}
	}
	return n
}
