package main

import (
	"fmt"
	"strconv"
	"time"

	"cellset/internal/cellset"
	"cellset/internal/common"
)

// cmdSeed fills a set with n distinct random cells.
func (s *session) cmdSeed(args []string) error {
	if len(args) != 2 {
		return usage("seed <name> <n>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 0 || n > cellset.DomainSize {
		return fmt.Errorf("n must be in [0, %d]", cellset.DomainSize)
	}

	start := time.Now()
	set := s.target(args[0])
	set.SetValues(s.rng.Perm(cellset.DomainSize)[:n]...)
	common.LogDuration(start, "seeded %s with %d cells", args[0], set.Size())
	return nil
}
