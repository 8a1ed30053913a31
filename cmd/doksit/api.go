package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/g5becks/doksit/internal/config"
	"github.com/g5becks/doksit/internal/generate"
	"github.com/g5becks/doksit/internal/manifest"
	"github.com/g5becks/doksit/internal/scan"
	"github.com/g5becks/doksit/internal/ui"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
)

func newAPICommand() *cli.Command {
	return &cli.Command{
		Name:      "api",
		Usage:     "Generate the API reference document",
		ArgsUsage: "[package]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "Document title (overrides config)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (overrides config)",
			},
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "Number of files rendered concurrently",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "Print the document instead of writing the output file",
			},
		},
		Action: apiAction,
	}
}

func apiAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: doksit api [package]").
			Errorf("expected at most 1 argument, got %d", cmd.Args().Len())
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	result, err := generate.Run(ctx, cfg, generate.Options{
		Package:  cmd.Args().First(),
		Title:    cmd.String("title"),
		Parallel: cmd.Int("parallel"),
	})
	if err != nil {
		return err
	}

	ui.PrintWarnings(os.Stderr, result.Warnings)

	if cmd.Bool("stdout") {
		_, _ = os.Stdout.WriteString(result.Markdown)
		return nil
	}

	outputPath := cfg.Output
	if cmd.IsSet("output") {
		outputPath = cmd.String("output")
	}

	if err := writeDocument(outputPath, result.Markdown); err != nil {
		return err
	}

	m := manifest.New(result.Title, result.Package, outputPath)
	for _, moduleResult := range result.Modules {
		info := manifest.ModuleInfo{
			Path:      moduleResult.Module.RelPath,
			Module:    scan.QualifiedName(moduleResult.Module.RelPath),
			Classes:   len(moduleResult.Module.Classes),
			Functions: len(moduleResult.Module.Functions),
		}

		for _, warning := range moduleResult.Warnings {
			info.Warnings = append(info.Warnings, warning.Entity+": "+warning.Warning.Message)
		}

		m.Modules = append(m.Modules, info)
	}

	m.Warnings = len(result.Warnings)

	return m.Save(filepath.Dir(outputPath))
}

func writeDocument(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("dir", dir).
			Wrapf(err, "creating output directory")
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "writing document")
	}

	return nil
}
