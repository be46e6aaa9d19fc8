package cellset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"cellset/internal/common"
)

// EncodedSize is the number of bytes WriteWords produces.
const EncodedSize = NumWords * 8

// ErrOutOfDomain is returned when decoded words carry bits above the domain.
var ErrOutOfDomain = errors.New("cellset: bits outside domain")

// domainWords returns the words of s with word1 masked to the domain. Bits
// above 80 (left by OrNot) are not members and are never written.
func (s *Words) domainWords() [NumWords]uint64 {
	return [NumWords]uint64{s.w[0], s.w[1] & HighMask}
}

// WriteWords serializes the domain members of s.
// Format: [8 bytes: word0][8 bytes: word1], little endian.
// Returns the number of bytes written.
func WriteWords(w io.Writer, s *Words) (int, error) {
	total := 0
	for _, word := range s.domainWords() {
		n, err := common.WriteUint64(w, word)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadWords deserializes a word pair written by WriteWords.
func ReadWords(r io.Reader) (Words, error) {
	var w [NumWords]uint64
	for i := range w {
		v, err := common.ReadUint64(r)
		if err != nil {
			return Words{}, err
		}
		w[i] = v
	}
	if w[1]&^HighMask != 0 {
		return Words{}, fmt.Errorf("%w: word1=%x", ErrOutOfDomain, w[1])
	}
	return NewWords(w[0], w[1]), nil
}

// MarshalBinary implements encoding.BinaryMarshaler. Like WriteWords it
// drops bits above the domain.
func (s *Words) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, EncodedSize)
	for _, word := range s.domainWords() {
		buf = binary.LittleEndian.AppendUint64(buf, word)
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Words) UnmarshalBinary(data []byte) error {
	if len(data) != EncodedSize {
		return fmt.Errorf("cellset: encoded words must be %d bytes, got %d", EncodedSize, len(data))
	}
	w0 := binary.LittleEndian.Uint64(data[0:8])
	w1 := binary.LittleEndian.Uint64(data[8:16])
	if w1&^HighMask != 0 {
		return fmt.Errorf("%w: word1=%x", ErrOutOfDomain, w1)
	}
	s.store(w0, w1)
	return nil
}
