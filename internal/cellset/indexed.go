package cellset

import (
	"fmt"
	"iter"
	"strings"
)

// Indexed is a Words with index-based access to its members. Members are
// materialized lazily on the first read after a mutation and the backing
// array is reused afterwards.
//
// Do not copy an Indexed by value: the copy would share the member cache.
// Use DuplicateDiscardingCache instead.
type Indexed struct {
	Words
	members []uint8
	count   int
}

// NewIndexed returns a set holding values.
func NewIndexed(values ...int) *Indexed {
	s := &Indexed{}
	s.SetValues(values...)
	return s
}

// NewFull returns a set holding every value of the domain.
func NewFull() *Indexed {
	s := &Indexed{}
	s.Fill()
	return s
}

// NewFromWords returns a set with the words of b.
func NewFromWords(b *Words) *Indexed {
	return &Indexed{Words: b.DuplicateWords()}
}

// DuplicateDiscardingCache returns a copy of the words. The member cache is
// never copied, even when it is current; the copy realizes on first read.
func (s *Indexed) DuplicateDiscardingCache() *Indexed {
	return &Indexed{Words: s.DuplicateWords()}
}

func (s *Indexed) ensureRealized() {
	if s.stale || s.members == nil {
		s.realize()
	}
}

// Get returns the i-th smallest member. i must be less than Size().
func (s *Indexed) Get(i int) int {
	s.ensureRealized()
	return int(s.members[:s.count][i])
}

// Size returns the number of members. An empty set is answered without
// realizing.
func (s *Indexed) Size() int {
	if s.IsEmpty() {
		return 0
	}
	s.ensureRealized()
	return s.count
}

// Values appends the members to dst in ascending order.
func (s *Indexed) Values(dst []int) []int {
	n := s.Size()
	for i := 0; i < n; i++ {
		dst = append(dst, int(s.members[i]))
	}
	return dst
}

// All iterates over the members in ascending order. The set must not be
// mutated during iteration.
func (s *Indexed) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		n := s.Size()
		for i := 0; i < n; i++ {
			if !yield(int(s.members[i])) {
				return
			}
		}
	}
}

// String renders the members followed by the words, or "empty!".
func (s *Indexed) String() string {
	n := s.Size()
	if n == 0 {
		return "empty!"
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%d ", s.members[i])
	}
	sb.WriteString(s.Words.String())
	return sb.String()
}
