// Package ui renders tables, progress and warning output for the CLI.
package ui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

// EntityRow is one discovered entity in `doksit list` output.
type EntityRow struct {
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	File       string `json:"file"`
	Lines      string `json:"lines,omitempty"`
	Documented bool   `json:"documented"`
}

type ListOptions struct {
	JSON bool
}

func RenderEntityList(rows []EntityRow, opts ListOptions) error {
	if opts.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(rows); err != nil {
			return fmt.Errorf("encode entity list json: %w", err)
		}

		return nil
	}

	writer := table.NewWriter()
	writer.SetOutputMirror(os.Stdout)
	writer.SetStyle(table.StyleRounded)
	writer.AppendHeader(table.Row{"KIND", "NAME", "FILE", "LINES", "DOCUMENTED"})

	for _, row := range rows {
		documented := "yes"
		if !row.Documented {
			documented = "no"
		}

		writer.AppendRow(table.Row{row.Kind, row.Name, row.File, row.Lines, documented})
	}

	writer.Render()
	return nil
}

// LinkRow is one checked reference link in `doksit links` output.
type LinkRow struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Status string `json:"status"`
	OK     bool   `json:"ok"`
}

func RenderLinkTable(rows []LinkRow) {
	writer := table.NewWriter()
	writer.SetOutputMirror(os.Stdout)
	writer.SetStyle(table.StyleRounded)
	writer.AppendHeader(table.Row{"LINK", "URL", "STATUS"})

	for _, row := range rows {
		writer.AppendRow(table.Row{row.Name, row.URL, row.Status})
	}

	writer.Render()
}
