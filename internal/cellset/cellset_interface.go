package cellset

// Members is a read-only, indexable view of a set. Members are enumerated in
// ascending order without duplicates.
type Members interface {
	// IsEmpty returns true if the set has no members.
	IsEmpty() bool

	// Size returns the number of members.
	Size() int

	// Get returns the i-th smallest member. i must be less than Size().
	Get(i int) int
}

var _ Members = (*Indexed)(nil)
