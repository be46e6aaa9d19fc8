package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
)

const maxHistorySize = 1000

type History struct {
	commands []string
	file     string
}

func newHistory(file string) (*History, error) {
	h := &History{
		commands: make([]string, 0, maxHistorySize),
		file:     file,
	}

	// Load existing history
	if err := h.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return h, nil
}

func (h *History) load() error {
	f, err := os.Open(h.file)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.add(scanner.Text())
	}

	return scanner.Err()
}

// attach seeds the line editor so the arrow keys walk the loaded history.
func (h *History) attach(line *liner.State) {
	for _, cmd := range h.commands {
		line.AppendHistory(cmd)
	}
}

func (h *History) add(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return false
	}

	// Don't add duplicates of the last command
	if len(h.commands) > 0 && h.commands[len(h.commands)-1] == cmd {
		return false
	}

	h.commands = append(h.commands, cmd)

	if len(h.commands) > maxHistorySize {
		h.commands = h.commands[len(h.commands)-maxHistorySize:]
	}
	return true
}

func (h *History) save() error {
	f, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, cmd := range h.commands {
		if _, err := fmt.Fprintln(f, cmd); err != nil {
			return err
		}
	}

	return nil
}

func (h *History) list(n int) []string {
	if n <= 0 || n > len(h.commands) {
		n = len(h.commands)
	}

	start := len(h.commands) - n
	return h.commands[start:]
}
