package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
)

const starterConfig = `# doksit configuration

# package = "mypackage"
title = "API Reference"
output = "docs/api.md"

# "source" keeps declaration order; "a-z" sorts entities alphabetically.
order = "source"

# base_url = "https://github.com/owner/repo/blob/master/"
# template = "docs/_api.md"

# include = ["**/*.py"]
# exclude = ["**/test_*.py"]

# [links]
# "Python docs" = "https://docs.python.org/3/"
`

func newInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter doksit.toml in the current directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing config file",
			},
		},
		Action: initAction,
	}
}

func initAction(_ context.Context, cmd *cli.Command) error {
	const path = "doksit.toml"

	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		return oops.
			Code("CONFIG_EXISTS").
			With("path", path).
			Hint("Pass --force to overwrite").
			Errorf("config file %q already exists", path)
	}

	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "writing config file")
	}

	fmt.Printf("wrote %s\n", path)

	return nil
}
