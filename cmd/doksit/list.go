package main

import (
	"context"
	"strconv"

	"github.com/g5becks/doksit/internal/config"
	"github.com/g5becks/doksit/internal/scan"
	"github.com/g5becks/doksit/internal/ui"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
)

func newListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List documentable entities in the package",
		ArgsUsage: "[package]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
			&cli.BoolFlag{
				Name:  "undocumented",
				Usage: "Only show entities missing a docstring",
			},
		},
		Action: listAction,
	}
}

func listAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: doksit list [package]").
			Errorf("expected at most 1 argument, got %d", cmd.Args().Len())
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	pkg := cmd.Args().First()
	if pkg == "" {
		pkg = cfg.Package
	}

	if pkg == "" {
		pkg, err = scan.GuessPackage(".")
		if err != nil {
			return err
		}
	}

	files, err := scan.FindFiles(pkg, cfg.Include, cfg.Exclude)
	if err != nil {
		return err
	}

	var rows []ui.EntityRow

	for _, file := range files {
		mod, scanErr := scan.ScanFile(file)
		if scanErr != nil {
			return scanErr
		}

		rows = append(rows, moduleRows(mod)...)
	}

	if cmd.Bool("undocumented") {
		rows = undocumentedOnly(rows)
	}

	return ui.RenderEntityList(rows, ui.ListOptions{JSON: cmd.Bool("json")})
}

func moduleRows(mod *scan.Module) []ui.EntityRow {
	var rows []ui.EntityRow

	for _, class := range mod.Classes {
		rows = append(rows, entityRow(class.Entity))

		for _, member := range class.Members {
			rows = append(rows, entityRow(member))
		}
	}

	for _, fn := range mod.Functions {
		rows = append(rows, entityRow(fn))
	}

	return rows
}

func entityRow(ent scan.Entity) ui.EntityRow {
	lines := ""
	if ent.Meta.LineStart > 0 {
		lines = strconv.Itoa(ent.Meta.LineStart) + "-" + strconv.Itoa(ent.Meta.LineEnd)
	}

	return ui.EntityRow{
		Kind:       string(ent.Meta.Kind),
		Name:       ent.Meta.QualifiedName,
		File:       ent.Meta.SourceFile,
		Lines:      lines,
		Documented: ent.Docstring != "",
	}
}

func undocumentedOnly(rows []ui.EntityRow) []ui.EntityRow {
	var filtered []ui.EntityRow

	for _, row := range rows {
		if !row.Documented {
			filtered = append(filtered, row)
		}
	}

	return filtered
}
