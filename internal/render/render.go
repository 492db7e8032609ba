// Package render formats search results and statistics for the CLI using
// a small lipgloss style palette, printed as sequential terminal output
// rather than a scrollable interactive view.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/ccsearch/internal/engine"
	"github.com/marcus/ccsearch/internal/stats"
)

// Styles bundles the color profile used to render one CLI invocation's
// output. New(true) strips all styling, matching --no-color.
type Styles struct {
	Role    lipgloss.Style
	File    lipgloss.Style
	Matched lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
}

// New builds a Styles set. When noColor is true every style is the
// identity style, so Render* calls emit plain text.
func New(noColor bool) Styles {
	if noColor {
		return Styles{}
	}
	return Styles{
		Role:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		File:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Matched: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

// Result renders one matched record as a header line (role and file), a
// timestamp line when the record has one, and a line of extracted text,
// cut to a 160-byte preview unless full is set.
func Result(s Styles, r engine.Result, full bool) string {
	text := r.ExtractedText
	const previewLen = 160
	if !full && len(text) > previewLen {
		text = text[:previewLen] + "…"
	}
	text = strings.ReplaceAll(text, "\n", " ")

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.Role.Render("["+r.RoleTag+"]"), s.File.Render(r.FilePath))
	if r.Timestamp != "" {
		fmt.Fprintf(&b, "  %s\n", s.Muted.Render(r.Timestamp))
	}
	fmt.Fprintf(&b, "  %s\n", s.Matched.Render(text))
	return b.String()
}

// Summary renders a stats.Summary footer.
func Summary(s Styles, sum stats.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Muted.Render(fmt.Sprintf(
		"%d matches across %d sessions, %d files, %d projects",
		sum.Total, sum.UniqueSessions, sum.UniqueFiles, sum.UniqueProjects,
	)))
	if sum.EarliestTS != "" {
		fmt.Fprintf(&b, "%s\n", s.Muted.Render(fmt.Sprintf("range: %s .. %s", sum.EarliestTS, sum.LatestTS)))
	}
	for _, p := range sum.TopProjects {
		fmt.Fprintf(&b, "  %s %s\n", s.File.Render(p.ProjectPath), s.Muted.Render(fmt.Sprintf("(%d)", p.Count)))
	}
	return b.String()
}

// Error renders a fatal error message.
func Error(s Styles, err error) string {
	return s.Error.Render(err.Error())
}
