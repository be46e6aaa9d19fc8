package cellset

import (
	"fmt"
	"math/bits"
)

const (
	// DomainSize is the number of values a set can hold: [0, DomainSize).
	DomainSize = 81

	// WordBits is the width of a backing word.
	WordBits = 64

	// NumWords is the number of words needed to cover the domain.
	NumWords = (DomainSize + WordBits - 1) / WordBits

	// HighMask selects the meaningful bits of the top (partial) word.
	HighMask = uint64(1)<<(DomainSize-(NumWords-1)*WordBits) - 1
)

// Words is a subset of [0, DomainSize) packed into two 64-bit words. Bit i of
// word 0 is value i, bit i of word 1 is value 64+i. The zero value is the
// empty set.
//
// Every mutation marks the set stale so that an enclosing Indexed knows its
// materialized members are out of date. Words is not safe for concurrent use.
type Words struct {
	w     [NumWords]uint64
	stale bool
}

// Empty is the shared empty set. Callers must not mutate it.
var Empty Words

// NewWords returns a set holding the given word pair.
func NewWords(w0, w1 uint64) Words {
	var s Words
	s.store(w0, w1)
	return s
}

// store replaces both words and invalidates materialized members. All
// mutations go through here.
func (s *Words) store(w0, w1 uint64) {
	s.w[0], s.w[1] = w0, w1
	s.stale = true
}

// Word0 returns the word holding values 0..63.
func (s *Words) Word0() uint64 { return s.w[0] }

// Word1 returns the word holding values 64..80 in its low 17 bits.
func (s *Words) Word1() uint64 { return s.w[1] }

// Stale reports whether any mutation happened since the last realization.
func (s *Words) Stale() bool { return s.stale }

// Add inserts v. v must be in [0, DomainSize); values of 128 or more panic,
// values 81..127 silently touch bits outside the domain.
func (s *Words) Add(v int) {
	w := s.w
	w[v>>6] |= 1 << (v & 63)
	s.store(w[0], w[1])
}

// Remove deletes v. Same contract as Add.
func (s *Words) Remove(v int) {
	w := s.w
	w[v>>6] &^= 1 << (v & 63)
	s.store(w[0], w[1])
}

// Contains reports whether v is a member. Same contract as Add.
func (s *Words) Contains(v int) bool {
	return s.w[v>>6]&(1<<(v&63)) != 0
}

// Clear removes every member.
func (s *Words) Clear() {
	s.store(0, 0)
}

// Fill adds every value of the domain.
func (s *Words) Fill() {
	s.store(^uint64(0), HighMask)
}

// IsEmpty returns true if both words are zero.
func (s *Words) IsEmpty() bool {
	return s.w[0] == 0 && s.w[1] == 0
}

// Count returns the number of domain values in the set without
// materializing it. Bits above the domain are ignored.
func (s *Words) Count() int {
	return bits.OnesCount64(s.w[0]) + bits.OnesCount64(s.w[1]&HighMask)
}

// SetValues replaces the contents with values.
func (s *Words) SetValues(values ...int) {
	var w [NumWords]uint64
	for _, v := range values {
		w[v>>6] |= 1 << (v & 63)
	}
	s.store(w[0], w[1])
}

// SetMask replaces the contents with the values 0..31 selected by m.
func (s *Words) SetMask(m uint32) {
	s.store(uint64(m), 0)
}

// SetWords replaces both words verbatim.
func (s *Words) SetWords(w0, w1 uint64) {
	s.store(w0, w1)
}

// Assign copies the words of b into s.
func (s *Words) Assign(b *Words) {
	s.store(b.w[0], b.w[1])
}

// DuplicateWords returns a copy of the words. The copy is always stale.
func (s *Words) DuplicateWords() Words {
	return Words{w: s.w, stale: true}
}

// Equal compares the words only.
func (s *Words) Equal(b *Words) bool {
	return s.w == b.w
}

// Hash combines both words.
func (s *Words) Hash() uint64 {
	h := s.w[0] * 0x9e3779b97f4a7c15
	return bits.RotateLeft64(h, 31) ^ s.w[1]
}

// Or sets s = s | b.
func (s *Words) Or(b *Words) {
	s.store(s.w[0]|b.w[0], s.w[1]|b.w[1])
}

// AndNot sets s = s &^ b.
func (s *Words) AndNot(b *Words) {
	s.store(s.w[0]&^b.w[0], s.w[1]&^b.w[1])
}

// OrNot sets s = s | ^b. Unlike Not, word 1 is not masked back to the
// domain, so bits above 80 become set whenever b lacks them.
func (s *Words) OrNot(b *Words) {
	s.store(s.w[0]|^b.w[0], s.w[1]|^b.w[1])
}

// And sets s = s & b.
func (s *Words) And(b *Words) {
	s.store(s.w[0]&b.w[0], s.w[1]&b.w[1])
}

// Not complements s within the domain.
func (s *Words) Not() {
	s.store(^s.w[0], ^s.w[1]&HighMask)
}

// SetAnd sets s = a & b.
func (s *Words) SetAnd(a, b *Words) {
	s.store(a.w[0]&b.w[0], a.w[1]&b.w[1])
}

// SetOr sets s = a | b.
func (s *Words) SetOr(a, b *Words) {
	s.store(a.w[0]|b.w[0], a.w[1]|b.w[1])
}

// OrAndAnd sets s = s | (a & b).
func (s *Words) OrAndAnd(a, b *Words) {
	s.store(s.w[0]|a.w[0]&b.w[0], s.w[1]|a.w[1]&b.w[1])
}

// AndEmpty reports whether a and b are disjoint. Neither is modified.
func AndEmpty(a, b *Words) bool {
	return a.w[0]&b.w[0] == 0 && a.w[1]&b.w[1] == 0
}

// AndEmpty reports whether s and b are disjoint.
func (s *Words) AndEmpty(b *Words) bool {
	return AndEmpty(s, b)
}

// Intersects reports whether s and b share a member.
func (s *Words) Intersects(b *Words) bool {
	return !AndEmpty(s, b)
}

// IntersectsInto reports whether s and b share a member and ORs the
// intersection into acc. acc is only touched when the intersection is not
// empty; it is never cleared first.
func (s *Words) IntersectsInto(b, acc *Words) bool {
	m0 := s.w[0] & b.w[0]
	m1 := s.w[1] & b.w[1]
	if m0 == 0 && m1 == 0 {
		return false
	}
	acc.store(acc.w[0]|m0, acc.w[1]|m1)
	return true
}

// ContainsAll reports whether every member of b is in s.
func (s *Words) ContainsAll(b *Words) bool {
	return b.w[0]&^s.w[0] == 0 && b.w[1]&^s.w[1] == 0
}

// AndEquals reports whether s & b == s, i.e. s is a subset of b.
func (s *Words) AndEquals(b *Words) bool {
	return s.w[0]&b.w[0] == s.w[0] && s.w[1]&b.w[1] == s.w[1]
}

// AndNotEquals reports whether s &^ b == s, i.e. s and b are disjoint.
func (s *Words) AndNotEquals(b *Words) bool {
	return s.w[0]&^b.w[0] == s.w[0] && s.w[1]&^b.w[1] == s.w[1]
}

// IsCovered reports whether every member of s is in b. Otherwise each word
// of s &^ b that is non-zero overwrites the matching word of fins; a word
// with nothing left over leaves fins untouched.
func (s *Words) IsCovered(b, fins *Words) bool {
	m0 := s.w[0] &^ b.w[0]
	m1 := s.w[1] &^ b.w[1]
	if m0 == 0 && m1 == 0 {
		return true
	}
	f0, f1 := fins.w[0], fins.w[1]
	if m0 != 0 {
		f0 = m0
	}
	if m1 != 0 {
		f1 = m1
	}
	fins.store(f0, f1)
	return false
}

// String renders the words as "word0/word1" in hex.
func (s *Words) String() string {
	return fmt.Sprintf("%x/%x", s.w[0], s.w[1])
}
