package components

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Row is one line of a DataTable. Key is the value matched by the search box.
type Row struct {
	Key   string
	Href  string
	Cells []string
}

// DataTable renders a table filtered client-side by its search key column.
func DataTable(searchKey string, columns []string, rows []Row) templ.Component {
	return component(func(h *writer) {
		h.raw("<div class=\"data-table\" data-signals=\"{search: ''}\">")
		h.raw("<input type=\"search\" data-bind:search")
		h.attr("placeholder", "Search by "+searchKey)
		h.raw("><table><thead><tr>")
		for _, c := range columns {
			h.raw("<th>")
			h.text(c)
			h.raw("</th>")
		}
		h.raw("<th></th></tr></thead><tbody>")
		if len(rows) == 0 {
			h.raw("<tr><td class=\"empty\"")
			h.attr("colspan", strconv.Itoa(len(columns)+1))
			h.raw(">No results.</td></tr>")
		}
		for _, row := range rows {
			h.raw("<tr")
			h.attr("data-show", "$search == '' || "+JSString(strings.ToLower(row.Key))+".includes($search.toLowerCase())")
			h.raw(">")
			for _, cell := range row.Cells {
				h.raw("<td>")
				h.text(cell)
				h.raw("</td>")
			}
			h.raw("<td>")
			if row.Href != "" {
				h.raw("<a")
				h.attr("href", row.Href)
				h.raw(">Edit</a>")
			}
			h.raw("</td></tr>")
		}
		h.raw("</tbody></table></div>")
	})
}
