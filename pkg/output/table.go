package output

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// WriteTable prints rows under a bold header with columns padded to their
// display width, so wide characters in key names stay aligned.
func WriteTable(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if cw := runewidth.StringWidth(row[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	header := lipgloss.NewRenderer(w).NewStyle().Bold(true)
	var b strings.Builder
	b.WriteString(header.Render(strings.TrimRight(formatRow(headers, widths), " ")))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(strings.TrimRight(formatRow(row, widths), " "))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	return strings.Join(padded, "  ")
}
