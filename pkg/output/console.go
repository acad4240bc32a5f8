package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/offlinefirst/keytap/pkg/events"
	"github.com/offlinefirst/keytap/pkg/keys"
)

const nameColumn = 18

type consoleStyles struct {
	time        lipgloss.Style
	down        lipgloss.Style
	up          lipgloss.Style
	name        lipgloss.Style
	placeholder lipgloss.Style
	codes       lipgloss.Style
	device      lipgloss.Style
}

func newConsoleStyles(r *lipgloss.Renderer) consoleStyles {
	return consoleStyles{
		time:        r.NewStyle().Foreground(lipgloss.Color("241")),
		down:        r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		up:          r.NewStyle().Foreground(lipgloss.Color("245")),
		name:        r.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		placeholder: r.NewStyle().Foreground(lipgloss.Color("208")),
		codes:       r.NewStyle().Foreground(lipgloss.Color("110")),
		device:      r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// consoleWriter prints one aligned line per record:
//
//	15:04:05.000 down  A                  vk=0x41 scan=0x1E None      [catalog] USB Receiver
type consoleWriter struct {
	out    io.Writer
	styles consoleStyles
}

func newConsoleWriter(w io.Writer) *consoleWriter {
	return &consoleWriter{out: w, styles: newConsoleStyles(lipgloss.NewRenderer(w))}
}

func (c *consoleWriter) Format() string { return FormatConsole }

func (c *consoleWriter) WriteEvent(e events.KeyEvent) error {
	_, err := io.WriteString(c.out, c.render(e)+"\n")
	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

func (c *consoleWriter) render(e events.KeyEvent) string {
	s := c.styles
	dir := s.down.Render(runewidth.FillRight(string(e.Direction), 5))
	if e.Direction == events.DirectionUp {
		dir = s.up.Render(runewidth.FillRight(string(e.Direction), 5))
	}
	nameStyle := s.name
	if e.Stage == keys.StagePlaceholder {
		nameStyle = s.placeholder
	}
	parts := []string{
		s.time.Render(e.Timestamp.Format("15:04:05.000")),
		dir,
		nameStyle.Render(runewidth.FillRight(printable(e.KeyName), nameColumn)),
		s.codes.Render(fmt.Sprintf("vk=0x%02X scan=0x%02X", uint16(e.VK), uint16(e.Scan))),
		runewidth.FillRight(e.Flags.String(), 10),
	}
	if e.Stage != "" {
		parts = append(parts, "["+string(e.Stage)+"]")
	}
	if d := e.Device; d != nil {
		label := d.Product
		if label == "" {
			label = d.Path
		}
		if d.HasIDs {
			label = fmt.Sprintf("%s %04X:%04X", label, d.VendorID, d.ProductID)
		}
		parts = append(parts, s.device.Render(strings.TrimSpace(label)))
	}
	return strings.Join(parts, " ")
}

// printable replaces control characters so a translated Tab or Enter cannot
// break the line layout.
func printable(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '\uFFFD'
		}
		return r
	}, name)
}
