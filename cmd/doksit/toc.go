package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/g5becks/doksit/internal/config"
	"github.com/g5becks/doksit/internal/manifest"
	"github.com/g5becks/doksit/internal/toc"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
)

func newTocCommand() *cli.Command {
	return &cli.Command{
		Name:      "toc",
		Usage:     "Print a table of contents for a generated document",
		ArgsUsage: "[document]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "URL path prefixed to every anchor link",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the table of contents to a file instead of stdout",
			},
		},
		Action: tocAction,
	}
}

func tocAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: doksit toc [document]").
			Errorf("expected at most 1 argument, got %d", cmd.Args().Len())
	}

	docPath := cmd.Args().First()
	if docPath == "" {
		resolved, err := resolveDocPath(cmd.String("config"))
		if err != nil {
			return err
		}

		docPath = resolved
	}

	rendered, err := toc.BuildFile(docPath, cmd.String("url"))
	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		return writeDocument(output, rendered)
	}

	_, _ = os.Stdout.WriteString(rendered)

	return nil
}

// resolveDocPath prefers the manifest written by the last `doksit api`
// run; without one it falls back to the configured output path.
func resolveDocPath(configPath string) (string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", err
	}

	m, err := manifest.Load(filepath.Dir(cfg.Output))
	if err != nil {
		return "", err
	}

	if m != nil && m.Output != "" {
		return m.Output, nil
	}

	return cfg.Output, nil
}
