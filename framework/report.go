package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// PrintResults writes the end-of-run report: a summary line, then a table of failures and a
// table of tolerated deviations if there are any.
func PrintResults(w io.Writer, results Results) {
	deviations := results.Deviations()
	fmt.Fprintf(w, "%d scenarios: %d passed, %d failed, %d skipped, %d tolerated deviations\n",
		len(results.Tests), results.Passed(), len(results.Failures), len(results.Skipped), len(deviations))

	if len(results.Failures) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "FAILED:")
		table := newReportTable(w, "Scenario", "Kind", "Detail")
		for _, f := range results.Failures {
			var details []string
			for _, err := range f.Errors {
				details = append(details, err.Error())
			}
			table.Append([]string{f.TestID.String(), string(f.Kind), strings.Join(details, "\n")})
		}
		table.Render()
	}

	if len(deviations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "TOLERATED:")
		table := newReportTable(w, "Scenario", "Deviation")
		for _, d := range deviations {
			table.Append([]string{d.ID.String(), d.Err.Error()})
		}
		table.Render()
	}
}

func newReportTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}
