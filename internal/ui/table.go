package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// PrintTable writes rows under headers in aligned columns. Rows shorter than
// headers are padded with empty cells so a missing detail column does not
// shift the rest of the table.
func PrintTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(headers) > 0 {
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		cells := row
		if n := len(headers) - len(row); n > 0 {
			cells = append(append([]string(nil), row...), make([]string, n)...)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}
