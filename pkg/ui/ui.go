package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/user/nessusparse/pkg/engine"
)

// Version can be overridden at build time via ldflags.
var Version = "2.0.0"

const bannerArt = `
     __                           ___
  /\ \ \___  ___ ___ _   _ ___   / _ \__ _ _ __ ___  ___
 /  \/ / _ \/ __/ __| | | / __| / /_)/ _' | '__/ __|/ _ \
/ /\  /  __/\__ \__ \ |_| \__ \/ ___/ (_| | |  \__ \  __/
\_\ \/ \___||___/___/\__,_|___/\/    \__,_|_|  |___/\___|
`

var severityColors = map[engine.Severity]lipgloss.Color{
	engine.Critical: lipgloss.Color("#FF0000"),
	engine.High:     lipgloss.Color("#FF6B6B"),
	engine.Moderate: lipgloss.Color("#FFD93D"),
	engine.Low:      lipgloss.Color("#6BCB77"),
}

// Printer writes console messages. Colors come from its own renderer so
// nothing here touches global terminal state.
type Printer struct {
	w        io.Writer
	r        *lipgloss.Renderer
	banner   lipgloss.Style
	status   lipgloss.Style
	success  lipgloss.Style
	errStyle lipgloss.Style
	path     lipgloss.Style
}

// NewPrinter returns a Printer writing to w. With color false all output
// is plain text.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:        w,
		r:        r,
		banner:   r.NewStyle().Foreground(lipgloss.Color("#4D96FF")).Bold(true),
		status:   r.NewStyle().Foreground(lipgloss.Color("#FFD93D")),
		success:  r.NewStyle().Foreground(lipgloss.Color("#00D26A")),
		errStyle: r.NewStyle().Foreground(lipgloss.Color("#FF3838")).Bold(true),
		path:     r.NewStyle().Foreground(lipgloss.Color("#4D96FF")),
	}
}

func (p *Printer) Banner() {
	fmt.Fprintln(p.w, p.banner.Render(bannerArt))
	fmt.Fprintf(p.w, "                NessusParse v%s\n\n", Version)
}

// Status prints a "[-]" progress line.
func (p *Printer) Status(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.status.Render("[-]")+" "+fmt.Sprintf(format, args...))
}

// Success prints a "[+]" completion line.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.success.Render("[+]")+" "+fmt.Sprintf(format, args...))
}

// Error prints an "Error:" diagnostic.
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.errStyle.Render("Error:")+" "+fmt.Sprintf(format, args...))
}

// Path styles a file path for inline use.
func (p *Printer) Path(s string) string {
	return p.path.Render(s)
}

// Counts prints the number of findings per severity, Critical first.
func (p *Printer) Counts(counts map[engine.Severity]int) {
	for _, s := range engine.Severities() {
		label := p.r.NewStyle().Foreground(severityColors[s]).Width(10).Render(s.Label())
		fmt.Fprintf(p.w, "    %s %d\n", label, counts[s])
	}
}
