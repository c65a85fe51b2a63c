package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/Apurer/go-vet-office/internal/selector"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen)
	notice  = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
)

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

// renderOutcome prints the status line of a settled search. It reports
// whether candidates follow.
func renderOutcome(w io.Writer, outcome selector.Outcome, minLength int) bool {
	switch outcome {
	case selector.OutcomeResults:
		return true
	case selector.OutcomeEmpty:
		notice.Fprintln(w, "No results found")
	case selector.OutcomeFailed:
		failure.Fprintln(w, "Search unavailable, try again later")
	default:
		notice.Fprintln(w, fmt.Sprintf("Type at least %d characters to search", minLength))
	}
	return false
}
