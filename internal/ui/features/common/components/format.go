package components

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDate renders t like "July 1st, 2023".
func FormatDate(t time.Time) string {
	return t.Format("January") + " " + humanize.Ordinal(t.Day()) + ", " + strconv.Itoa(t.Year())
}
