package swifttoo

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Table is implemented by result types that render as an aligned text table.
type Table interface {
	TableHeader() []string
	TableRows() [][]string
}

// RenderTable writes t to w as an aligned text table.
func RenderTable(w io.Writer, t Table) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(t.TableHeader())
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(t.TableRows())
	table.Render()
}

func renderString(t Table) string {
	var builder strings.Builder
	RenderTable(&builder, t)
	return builder.String()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func formatInt(value int) string {
	return strconv.Itoa(value)
}
