package common

import (
	"os"
	"path/filepath"
)

// HistoryFile is the name of the REPL history file in the home directory.
const HistoryFile = ".cellset_history"

// HistoryPath returns the default REPL history location. It falls back to
// the working directory when the home directory is unknown.
func HistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return HistoryFile
	}
	return filepath.Join(home, HistoryFile)
}
