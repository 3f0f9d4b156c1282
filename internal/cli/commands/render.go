package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/shopdash/internal/cli/config"
	"github.com/leapstack-labs/shopdash/internal/forms"
)

// jsonOutput reports whether results should be printed as JSON.
func (c *CommandContext) jsonOutput() bool {
	return c.Cfg.Output == config.OutputJSON
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTable returns a table writer that renders to w.
func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

// ago formats a timestamp relative to now, e.g. "3 minutes ago".
func ago(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return humanize.Time(ts)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// price formats minor units as a dollar amount.
func price(cents int64) string {
	return "$" + forms.FormatPrice(cents)
}

// countLine prints a summary such as "1,204 products".
func countLine(w io.Writer, n int, noun string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", humanize.Comma(int64(n)), pluralize(n, noun))
}

func pluralize(n int, noun string) string {
	switch {
	case n == 1:
		return noun
	case strings.HasSuffix(noun, "y"):
		return strings.TrimSuffix(noun, "y") + "ies"
	default:
		return noun + "s"
	}
}
