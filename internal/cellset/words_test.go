package cellset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func wordsOf(values ...int) Words {
	var s Words
	s.SetValues(values...)
	return s
}

func TestAddContainsRemove(t *testing.T) {
	var s Words

	for v := 0; v < DomainSize; v++ {
		require.False(t, s.Contains(v), "value %d should initially be absent", v)
		s.Add(v)
		require.True(t, s.Contains(v), "value %d should be present after Add", v)
	}
	require.Equal(t, DomainSize, s.Count())

	for v := 0; v < DomainSize; v++ {
		s.Remove(v)
		require.False(t, s.Contains(v), "value %d should be absent after Remove", v)
	}
	require.True(t, s.IsEmpty())
}

func TestIdempotent(t *testing.T) {
	var s Words

	s.Add(42)
	s.Add(42)
	s.Add(42)
	require.Equal(t, 1, s.Count())

	s.Remove(42)
	s.Remove(42)
	require.True(t, s.IsEmpty())
}

func TestWordBoundaries(t *testing.T) {
	tests := []struct {
		v  int
		w0 uint64
		w1 uint64
	}{
		{0, 1, 0},
		{63, 1 << 63, 0},
		{64, 0, 1},
		{80, 0, 1 << 16},
	}

	for _, tt := range tests {
		var s Words
		s.Add(tt.v)
		require.Equal(t, tt.w0, s.Word0(), "Add(%d) word0", tt.v)
		require.Equal(t, tt.w1, s.Word1(), "Add(%d) word1", tt.v)
	}
}

func TestOutOfRangePanics(t *testing.T) {
	var s Words

	require.Panics(t, func() { s.Add(128) }, "Add(128) should panic")
	require.Panics(t, func() { s.Contains(-1) }, "Contains(-1) should panic")
	require.Panics(t, func() { s.Remove(200) }, "Remove(200) should panic")
}

func TestFillAndNot(t *testing.T) {
	var s Words
	s.Fill()

	require.Equal(t, ^uint64(0), s.Word0())
	require.Equal(t, HighMask, s.Word1())
	require.Equal(t, uint64(0x1FFFF), HighMask)
	require.Equal(t, DomainSize, s.Count())
	for v := 0; v < DomainSize; v++ {
		require.True(t, s.Contains(v), "full set should contain %d", v)
	}

	s.Not()
	require.True(t, s.IsEmpty(), "complement of full set should be empty")

	s.Not()
	require.Equal(t, ^uint64(0), s.Word0())
	require.Equal(t, HighMask, s.Word1(), "Not must mask word1 to the domain")
}

func TestBulkSetters(t *testing.T) {
	s := wordsOf(0, 1, 64, 80)
	require.Equal(t, uint64(0x3), s.Word0())
	require.Equal(t, uint64(0x10001), s.Word1())

	s.SetMask(0x80000001)
	require.Equal(t, uint64(0x80000001), s.Word0())
	require.Zero(t, s.Word1(), "SetMask must clear word1")
	require.True(t, s.Contains(0))
	require.True(t, s.Contains(31))

	s.SetWords(0xF0, 0x3)
	require.Equal(t, uint64(0xF0), s.Word0())
	require.Equal(t, uint64(0x3), s.Word1())

	other := wordsOf(7, 70)
	s.Assign(&other)
	require.True(t, s.Equal(&other))

	s.Clear()
	require.True(t, s.IsEmpty())
}

func TestConcreteScenario(t *testing.T) {
	a := wordsOf(0, 1, 64, 80)
	b := wordsOf(1, 64)

	and := a.DuplicateWords()
	and.And(&b)
	expected := wordsOf(1, 64)
	require.True(t, and.Equal(&expected), "A and B")

	or := a.DuplicateWords()
	or.Or(&b)
	require.True(t, or.Equal(&a), "A or B should equal A")

	diff := a.DuplicateWords()
	diff.AndNot(&b)
	expected = wordsOf(0, 80)
	require.True(t, diff.Equal(&expected), "A andNot B")

	require.True(t, a.ContainsAll(&b), "A contains B")
	require.False(t, b.ContainsAll(&a), "B does not contain A")
	require.True(t, b.AndEquals(&a), "B is a subset of A")
	require.False(t, a.AndEquals(&b), "A is not a subset of B")
}

func TestSetAndSetOrOrAndAnd(t *testing.T) {
	a := wordsOf(0, 1, 2, 64, 65)
	b := wordsOf(1, 2, 3, 65, 66)

	var s Words
	s.Add(80)
	s.SetAnd(&a, &b)
	expected := wordsOf(1, 2, 65)
	require.True(t, s.Equal(&expected), "SetAnd overwrites: %s", s.String())

	s.SetOr(&a, &b)
	expected = wordsOf(0, 1, 2, 3, 64, 65, 66)
	require.True(t, s.Equal(&expected), "SetOr overwrites: %s", s.String())

	acc := wordsOf(40, 80)
	acc.OrAndAnd(&a, &b)
	expected = wordsOf(1, 2, 40, 65, 80)
	require.True(t, acc.Equal(&expected), "OrAndAnd accumulates: %s", acc.String())

	// Operands are untouched.
	require.True(t, a.Equal(&Words{w: [NumWords]uint64{0x7, 0x3}}))
}

func TestDisjointnessPredicates(t *testing.T) {
	a := wordsOf(0, 64)
	b := wordsOf(1, 65)
	c := wordsOf(64)

	require.True(t, AndEmpty(&a, &b))
	require.True(t, a.AndEmpty(&b))
	require.False(t, a.Intersects(&b))
	require.True(t, a.AndNotEquals(&b))

	require.False(t, AndEmpty(&a, &c))
	require.True(t, a.Intersects(&c))
	require.False(t, a.AndNotEquals(&c))

	// The static form never mutates its operands.
	require.Equal(t, "1/1", a.String())
	require.Equal(t, "2/2", b.String())
}

func TestIntersectsInto(t *testing.T) {
	a := wordsOf(0, 64)
	b := wordsOf(0)

	var c Words
	require.True(t, a.IntersectsInto(&b, &c))
	require.Equal(t, uint64(1), c.Word0())
	require.Zero(t, c.Word1(), "only word0 contributed")
	require.True(t, c.Stale())

	// Prior contents are preserved.
	acc := wordsOf(5, 70)
	require.True(t, a.IntersectsInto(&b, &acc))
	expected := wordsOf(0, 5, 70)
	require.True(t, acc.Equal(&expected), "acc=%s", acc.String())

	// Disjoint operands leave the accumulator alone.
	d := wordsOf(1, 65)
	fresh := Words{}
	require.False(t, a.IntersectsInto(&d, &fresh))
	require.True(t, fresh.IsEmpty())
	require.False(t, fresh.Stale(), "accumulator must not be touched")
}

func TestIsCovered(t *testing.T) {
	base := wordsOf(0, 1, 64, 80)

	cover := wordsOf(0, 1, 64, 80, 5)
	var fins Words
	require.True(t, base.IsCovered(&cover, &fins))
	require.True(t, fins.IsEmpty())
	require.False(t, fins.Stale(), "fins must not be touched when covered")

	// Word0 is fully covered, so only word1 of fins is overwritten.
	cover = wordsOf(0, 1)
	fins = wordsOf(2, 70)
	require.False(t, base.IsCovered(&cover, &fins))
	expected := wordsOf(2, 64, 80)
	require.True(t, fins.Equal(&expected), "fins=%s", fins.String())
	require.True(t, fins.Stale())

	// Both words have leftovers: fins becomes exactly base minus cover.
	cover = wordsOf(1, 80)
	fins = wordsOf(3, 4, 66)
	require.False(t, base.IsCovered(&cover, &fins))
	expected = wordsOf(0, 64)
	require.True(t, fins.Equal(&expected), "fins=%s", fins.String())
}

func TestOrNotLeavesHighBits(t *testing.T) {
	var full Words
	full.Fill()

	var s Words
	s.OrNot(&full)
	require.Zero(t, s.Word0())
	require.Equal(t, ^HighMask, s.Word1(), "OrNot does not mask word1")
	require.False(t, s.IsEmpty(), "high bits make the set non-empty")
	require.Zero(t, s.Count(), "no domain value is a member")

	s.Not()
	require.True(t, s.Equal(&full), "Not masks the complement back to the domain")
}

func TestHighBitsStayClear(t *testing.T) {
	var s, t2 Words
	s.Fill()
	t2.SetValues(3, 64, 80)

	ops := []func(){
		func() { s.Not() },
		func() { s.Or(&t2) },
		func() { s.Fill() },
		func() { s.AndNot(&t2) },
		func() { s.And(&t2) },
		func() { s.SetOr(&s, &t2) },
		func() { s.OrAndAnd(&t2, &t2) },
		func() { s.Add(80) },
		func() { s.Remove(64) },
	}
	for i, op := range ops {
		op()
		require.Zero(t, s.Word1()&^HighMask, "op %d set bits above the domain", i)
	}
}

func TestMutationsMarkStale(t *testing.T) {
	other := wordsOf(1, 64)

	tests := []struct {
		name string
		op   func(s *Words)
	}{
		{"Add existing", func(s *Words) { s.Add(1) }},
		{"Remove missing", func(s *Words) { s.Remove(2) }},
		{"Clear", func(s *Words) { s.Clear() }},
		{"Fill", func(s *Words) { s.Fill() }},
		{"SetValues", func(s *Words) { s.SetValues(1, 64) }},
		{"SetMask", func(s *Words) { s.SetMask(2) }},
		{"SetWords", func(s *Words) { s.SetWords(2, 1) }},
		{"Assign", func(s *Words) { s.Assign(&other) }},
		{"Or self", func(s *Words) { s.Or(s) }},
		{"And self", func(s *Words) { s.And(s) }},
		{"AndNot empty", func(s *Words) { s.AndNot(&Empty) }},
		{"OrNot", func(s *Words) { s.OrNot(&other) }},
		{"Not", func(s *Words) { s.Not() }},
		{"SetAnd", func(s *Words) { s.SetAnd(&other, &other) }},
		{"SetOr", func(s *Words) { s.SetOr(&other, &other) }},
		{"OrAndAnd", func(s *Words) { s.OrAndAnd(&Empty, &other) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewIndexed(1, 64)
			require.Equal(t, 2, s.Size())
			require.False(t, s.Stale())

			tt.op(&s.Words)
			require.True(t, s.Stale(), "%s must invalidate members", tt.name)
		})
	}
}

func TestEqualAndHash(t *testing.T) {
	a := wordsOf(0, 64)
	b := wordsOf(64, 0)
	require.True(t, a.Equal(&b))
	require.Equal(t, a.Hash(), b.Hash())

	// Cache state is not part of equality.
	ia := NewIndexed(0, 64)
	ia.Size()
	require.False(t, ia.Stale())
	require.True(t, ia.Equal(&b))

	c := wordsOf(0)
	d := wordsOf(64)
	require.False(t, c.Equal(&d))
	require.NotEqual(t, c.Hash(), d.Hash())
}

func TestDuplicateWords(t *testing.T) {
	a := wordsOf(3, 70)
	dup := a.DuplicateWords()
	require.True(t, dup.Equal(&a))
	require.True(t, dup.Stale())

	a.Add(4)
	require.False(t, dup.Contains(4), "copy must not follow the source")
}

func TestWordsString(t *testing.T) {
	var s Words
	s.Fill()
	require.Equal(t, "ffffffffffffffff/1ffff", s.String())

	s = wordsOf(0, 1, 64, 80)
	require.Equal(t, "3/10001", s.String())
}

func TestCoreOperationsDoNotAllocate(t *testing.T) {
	a := wordsOf(0, 1, 64, 80)
	b := wordsOf(1, 64)
	var c, fins Words

	allocs := testing.AllocsPerRun(100, func() {
		c.SetOr(&a, &b)
		c.And(&b)
		c.AndNot(&a)
		c.OrAndAnd(&a, &b)
		c.Not()
		_ = a.IntersectsInto(&b, &c)
		_ = a.IsCovered(&b, &fins)
		_ = AndEmpty(&a, &b)
		_ = a.ContainsAll(&b)
		c.Add(80)
		c.Remove(0)
	})
	require.Zero(t, allocs)
}
