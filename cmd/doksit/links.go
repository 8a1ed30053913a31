package main

import (
	"context"
	"time"

	"github.com/g5becks/doksit/internal/config"
	"github.com/g5becks/doksit/internal/linkcheck"
	"github.com/g5becks/doksit/internal/ui"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
)

func newLinksCommand() *cli.Command {
	return &cli.Command{
		Name:  "links",
		Usage: "Check that configured reference links resolve",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
		},
		Action: linksAction,
	}
}

func linksAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if len(cfg.Links) == 0 {
		return oops.
			Code("LINK_CHECK_FAILED").
			Hint("Add a [links] table to your config").
			Errorf("no reference links configured")
	}

	writer := ui.NewProgressWriter()
	tracker := &progress.Tracker{
		Message: "Checking links",
		Total:   int64(len(cfg.Links)),
	}
	writer.AppendTracker(tracker)

	go writer.Render()

	results := linkcheck.Check(ctx, cfg.Links, tracker)

	tracker.MarkAsDone()
	writer.Stop()

	for writer.IsRenderInProgress() {
		time.Sleep(10 * time.Millisecond)
	}

	rows := make([]ui.LinkRow, 0, len(results))
	dead := 0

	for _, result := range results {
		if !result.OK {
			dead++
		}

		rows = append(rows, ui.LinkRow{
			Name:   result.Name,
			URL:    result.URL,
			Status: result.Status,
			OK:     result.OK,
		})
	}

	ui.RenderLinkTable(rows)

	if dead > 0 {
		return oops.
			Code("LINK_CHECK_FAILED").
			With("dead", dead).
			Errorf("%d of %d links did not resolve", dead, len(results))
	}

	return nil
}
