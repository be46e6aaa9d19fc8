package main

import (
	"fmt"
	"io"

	"cellset/internal/cellset"
	"cellset/internal/render"
	"cellset/internal/snapshot"
)

const dumpHeader = "%-16s %4s  %-22s %s\n"

// dumpSets prints every set of the session, sorted by name.
func (s *session) dumpSets(out io.Writer) {
	fmt.Fprintf(out, dumpHeader, "NAME", "SIZE", "WORDS", "CELLS")
	names := s.sortedNames()
	for _, name := range names {
		set := s.sets[name]
		fmt.Fprintf(out, dumpHeader, truncate(name), fmt.Sprint(set.Size()), set.Words.String(), render.Compact(set))
	}
	fmt.Fprintf(out, "Total sets: %d\n", len(names))
}

func dumpSnapshot(out io.Writer, sets []snapshot.Named) {
	fmt.Fprintf(out, dumpHeader, "NAME", "SIZE", "WORDS", "CELLS")
	for i := range sets {
		set := sets[i].Set
		fmt.Fprintf(out, dumpHeader, truncate(sets[i].Name), fmt.Sprint(set.Count()), set.String(), render.Compact(cellset.NewFromWords(&set)))
	}
	fmt.Fprintf(out, "Total sets: %d\n", len(sets))
}

// truncate shortens names longer than the name column.
func truncate(name string) string {
	if len(name) > 16 {
		return name[:16]
	}
	return name
}
