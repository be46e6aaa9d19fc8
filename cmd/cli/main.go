package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "cellset",
		Usage: "build, combine and inspect 81-cell sets",
		Flags: replFlags(),
		// With no subcommand the interactive shell starts.
		Action: runRepl,
		Commands: []*cli.Command{
			{
				Name:   "repl",
				Usage:  "interactive shell over named sets",
				Flags:  replFlags(),
				Action: runRepl,
			},
			benchCommand(),
			inspectCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cellset: %v\n", err)
		os.Exit(1)
	}
}
