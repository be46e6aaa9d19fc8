package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	"cellset/internal/cellset"
	"cellset/internal/common"
	"cellset/internal/render"
	"cellset/internal/snapshot"
)

const replHelp = `commands:
  set <name> <v>...        full <name>          seed <name> <n>
  add|remove <name> <v>    not <name>
  or|and|andnot|ornot <dst> <src>
  cover <base> <cover> <fins>      intersects <a> <b> [acc]
  show <name> | cells <name> | list | drop <name>
  save <file> | load <file> | history [n] | help | exit`

func replFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "history",
			Value:   common.HistoryPath(),
			Usage:   "file the shell history is kept in",
			EnvVars: []string{"CELLSET_HISTORY"},
		},
	}
}

// session holds the named sets of one shell. Sets are owned by the session
// goroutine only.
type session struct {
	sets    map[string]*cellset.Indexed
	rng     *rand.Rand
	history *History
}

func newSession(history *History) *session {
	return &session{
		sets:    make(map[string]*cellset.Indexed),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		history: history,
	}
}

func runRepl(c *cli.Context) error {
	history, err := newHistory(c.String("history"))
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	history.attach(line)

	fmt.Println("cellset - 81-cell set shell")
	fmt.Println(`type "help" for commands`)

	s := newSession(history)
	for {
		input, err := line.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("input error: %w", err)
		}
		if history.add(input) {
			line.AppendHistory(strings.TrimSpace(input))
		}
		if quit := s.exec(input, os.Stdout); quit {
			break
		}
	}

	if err := history.save(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save history: %v\n", err)
	}
	return nil
}

// exec runs one shell line and reports whether the shell should exit.
func (s *session) exec(input string, out io.Writer) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "set":
		err = s.cmdSet(args)
	case "full":
		err = s.cmdFull(args)
	case "seed":
		err = s.cmdSeed(args)
	case "add", "remove":
		err = s.cmdPoint(cmd, args)
	case "not":
		err = s.cmdNot(args)
	case "or", "and", "andnot", "ornot":
		err = s.cmdBinary(cmd, args)
	case "cover":
		err = s.cmdCover(args, out)
	case "intersects":
		err = s.cmdIntersects(args, out)
	case "show":
		err = s.cmdShow(args, out)
	case "cells":
		err = s.cmdCells(args, out)
	case "list":
		s.dumpSets(out)
	case "drop":
		err = s.cmdDrop(args)
	case "save":
		err = s.cmdSave(args)
	case "load":
		err = s.cmdLoad(args, out)
	case "history":
		err = s.cmdHistory(args, out)
	case "help":
		fmt.Fprintln(out, replHelp)
	case "exit", "quit":
		return true
	default:
		fmt.Fprintln(out, "unknown command")
		return false
	}

	if err != nil {
		fmt.Fprintf(out, "%s error: %v\n", cmd, err)
	}
	return false
}

func usage(format string) error {
	return fmt.Errorf("usage: %s", format)
}

// lookup returns the named set or an error when it does not exist.
func (s *session) lookup(name string) (*cellset.Indexed, error) {
	set, ok := s.sets[name]
	if !ok {
		return nil, fmt.Errorf("no set named %q", name)
	}
	return set, nil
}

// target returns the named set, creating an empty one when missing.
func (s *session) target(name string) *cellset.Indexed {
	set, ok := s.sets[name]
	if !ok {
		set = cellset.NewIndexed()
		s.sets[name] = set
	}
	return set
}

// parseValue parses a domain value. Shell input is checked here because
// the set operations do not check their arguments.
func parseValue(arg string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("bad value %q", arg)
	}
	if v < 0 || v >= cellset.DomainSize {
		return 0, fmt.Errorf("value %d out of range [0, %d)", v, cellset.DomainSize)
	}
	return v, nil
}

func (s *session) cmdSet(args []string) error {
	if len(args) < 1 {
		return usage("set <name> <v>...")
	}
	values := make([]int, 0, len(args)-1)
	for _, arg := range args[1:] {
		v, err := parseValue(arg)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	s.target(args[0]).SetValues(values...)
	return nil
}

func (s *session) cmdFull(args []string) error {
	if len(args) != 1 {
		return usage("full <name>")
	}
	s.target(args[0]).Fill()
	return nil
}

func (s *session) cmdPoint(cmd string, args []string) error {
	if len(args) != 2 {
		return usage(cmd + " <name> <v>")
	}
	v, err := parseValue(args[1])
	if err != nil {
		return err
	}
	set := s.target(args[0])
	if cmd == "add" {
		set.Add(v)
	} else {
		set.Remove(v)
	}
	return nil
}

func (s *session) cmdNot(args []string) error {
	if len(args) != 1 {
		return usage("not <name>")
	}
	set, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	set.Not()
	return nil
}

func (s *session) cmdBinary(cmd string, args []string) error {
	if len(args) != 2 {
		return usage(cmd + " <dst> <src>")
	}
	src, err := s.lookup(args[1])
	if err != nil {
		return err
	}
	dst := s.target(args[0])
	switch cmd {
	case "or":
		dst.Or(&src.Words)
	case "and":
		dst.And(&src.Words)
	case "andnot":
		dst.AndNot(&src.Words)
	case "ornot":
		dst.OrNot(&src.Words)
	}
	return nil
}

func (s *session) cmdCover(args []string, out io.Writer) error {
	if len(args) != 3 {
		return usage("cover <base> <cover> <fins>")
	}
	base, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	cover, err := s.lookup(args[1])
	if err != nil {
		return err
	}
	fins := s.target(args[2])
	fins.Clear()
	if base.IsCovered(&cover.Words, &fins.Words) {
		fmt.Fprintln(out, "covered")
		return nil
	}
	fmt.Fprintf(out, "fins: %s\n", render.Compact(fins))
	return nil
}

func (s *session) cmdIntersects(args []string, out io.Writer) error {
	if len(args) != 2 && len(args) != 3 {
		return usage("intersects <a> <b> [acc]")
	}
	a, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	b, err := s.lookup(args[1])
	if err != nil {
		return err
	}
	if len(args) == 2 {
		fmt.Fprintln(out, a.Intersects(&b.Words))
		return nil
	}
	acc := s.target(args[2])
	hit := a.IntersectsInto(&b.Words, &acc.Words)
	fmt.Fprintf(out, "%t %s: %s\n", hit, args[2], render.Compact(acc))
	return nil
}

func (s *session) cmdShow(args []string, out io.Writer) error {
	if len(args) != 1 {
		return usage("show <name>")
	}
	set, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	n := set.Size()
	if n == 0 && !set.IsEmpty() {
		// Only bits above the domain are set; show them.
		fmt.Fprintf(out, "%s (0): empty! %s\n", args[0], set.Words.String())
		return nil
	}
	fmt.Fprintf(out, "%s (%d): %s\n", args[0], n, set)
	return nil
}

func (s *session) cmdCells(args []string, out io.Writer) error {
	if len(args) != 1 {
		return usage("cells <name>")
	}
	set, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, render.Cells(set))
	return nil
}

func (s *session) cmdDrop(args []string) error {
	if len(args) != 1 {
		return usage("drop <name>")
	}
	if _, err := s.lookup(args[0]); err != nil {
		return err
	}
	delete(s.sets, args[0])
	return nil
}

func (s *session) sortedNames() []string {
	names := make([]string, 0, len(s.sets))
	for name := range s.sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (s *session) cmdSave(args []string) error {
	if len(args) != 1 {
		return usage("save <file>")
	}
	names := s.sortedNames()
	sets := make([]snapshot.Named, len(names))
	for i, name := range names {
		sets[i] = snapshot.Named{Name: name, Set: s.sets[name].DuplicateWords()}
	}
	return snapshot.Save(args[0], sets)
}

func (s *session) cmdLoad(args []string, out io.Writer) error {
	if len(args) != 1 {
		return usage("load <file>")
	}
	sets, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}
	for i := range sets {
		s.sets[sets[i].Name] = cellset.NewFromWords(&sets[i].Set)
	}
	fmt.Fprintf(out, "loaded %d sets\n", len(sets))
	return nil
}

func (s *session) cmdHistory(args []string, out io.Writer) error {
	n := 0
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return usage("history [n]")
		}
		n = v
	}
	if s.history == nil {
		return nil
	}
	for _, cmd := range s.history.list(n) {
		fmt.Fprintln(out, cmd)
	}
	return nil
}
