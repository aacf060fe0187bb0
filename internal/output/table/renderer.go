// Package table renders demo test results as terminal tables.
package table

import (
	"bytes"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Renderer provides table rendering utilities
type Renderer interface {
	RenderToString(headers []string, rows [][]string) string
	RenderToWriter(w io.Writer, headers []string, rows [][]string)
}

type renderer struct{}

// NewRenderer creates a new table renderer
func NewRenderer() Renderer {
	return &renderer{}
}

func (r *renderer) RenderToString(headers []string, rows [][]string) string {
	buf := &bytes.Buffer{}
	r.RenderToWriter(buf, headers, rows)

	return buf.String()
}

func (r *renderer) RenderToWriter(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("│")
	table.SetRowSeparator("─")
	table.SetHeaderLine(true)
	table.SetBorder(true)
	table.SetTablePadding(" ")
	table.SetNoWhiteSpace(false)

	table.AppendBulk(rows)
	table.Render()
}

// Compile-time interface compliance check
var _ Renderer = (*renderer)(nil)
