package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"cellset/internal/snapshot"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print the sets stored in a snapshot file",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("usage: inspect <file>")
			}
			path := c.Args().First()
			sets, err := snapshot.Load(path)
			if err != nil {
				return err
			}
			fmt.Printf("Inspecting snapshot: %s\n", path)
			fmt.Println()
			dumpSnapshot(os.Stdout, sets)
			return nil
		},
	}
}
