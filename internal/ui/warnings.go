package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/g5becks/doksit/internal/generate"
)

// PrintWarnings writes one line per finding, colored when the writer is a
// terminal. Warnings are advisory; the exit code stays zero.
func PrintWarnings(w io.Writer, warnings []generate.EntityWarning) {
	if len(warnings) == 0 {
		return
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("%d warning(s):", len(warnings))))

	for _, ew := range warnings {
		fmt.Fprintf(w, "  %s %s: %s [%s]\n",
			yellow("warning:"), ew.Entity, ew.Warning.Message, ew.Warning.Code)
	}
}
