package cellset

// bitPositions[b] holds the ascending bit indices set in byte b; only the
// first bitCount[b] entries are meaningful.
var bitPositions, bitCount = buildTables()

func buildTables() (positions [256][8]uint8, counts [256]uint8) {
	for b := 0; b < 256; b++ {
		n := uint8(0)
		for p := uint8(0); p < 8; p++ {
			if b&(1<<p) != 0 {
				positions[b][n] = p
				n++
			}
		}
		counts[b] = n
	}
	return positions, counts
}
