package common

import "testing"

// IndexedMembers is the indexable view RequireSameMembers walks.
type IndexedMembers interface {
	Size() int
	Get(i int) int
}

// RequireSameMembers compares every member of s, in index order, to the
// expected ascending list. Fails immediately on mismatch.
func RequireSameMembers(t *testing.T, s IndexedMembers, expected []int) {
	t.Helper()

	if got := s.Size(); got != len(expected) {
		t.Fatalf("size mismatch: got %d want %d", got, len(expected))
	}
	for i, want := range expected {
		if got := s.Get(i); got != want {
			t.Fatalf("member mismatch at %d: got %d want %d", i, got, want)
		}
	}
}
