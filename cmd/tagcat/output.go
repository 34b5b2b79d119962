package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/tagcat/internal/batch"
	"github.com/handiism/tagcat/internal/model"
)

// styles are bound to the renderer of the output they are written to, so
// colors disappear when output is not a terminal.
type styles struct {
	name     lipgloss.Style
	conflict lipgloss.Style
	header   lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	dim      lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		name: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")),
		conflict: r.NewStyle().
			Foreground(lipgloss.Color("#FFE66D")),
		header: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")),
		success: r.NewStyle().
			Foreground(lipgloss.Color("#95E1A3")),
		failure: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("#6C757D")),
	}
}

// printTags writes one "NAME: v1, v2" line per tag, sorted by name.
func (st styles) printTags(w io.Writer, tags model.TagMapping) {
	for _, name := range tags.Names() {
		value := strings.Join(tags[name], ", ")
		if tags.IsConflict(name) {
			value = st.conflict.Render(value)
		}
		fmt.Fprintf(w, "%s: %s\n", st.name.Render(name), value)
	}
}

// printSummary writes the per-file outcome lines (failures always, the
// rest when verbose) and a closing count.
func (st styles) printSummary(w io.Writer, s *batch.Summary, verbose bool) {
	for _, r := range s.Results {
		if r.Status != batch.StatusFailed && !verbose {
			continue
		}
		fmt.Fprintln(w, st.resultLine(r))
	}

	line := s.String()
	if s.Failed() {
		fmt.Fprintln(w, st.failure.Render(line))
		return
	}
	fmt.Fprintln(w, st.success.Render(line))
}

func (st styles) resultLine(r batch.Result) string {
	var b strings.Builder
	switch r.Status {
	case batch.StatusFailed:
		b.WriteString(st.failure.Render("✗ " + r.Path))
	case batch.StatusSkipped:
		b.WriteString(st.dim.Render("- " + r.Path))
	default:
		b.WriteString(st.success.Render("✓ " + r.Path))
	}
	if r.Destination != "" {
		b.WriteString(" -> " + r.Destination)
	}
	if r.Err != nil {
		b.WriteString(st.dim.Render(" (" + r.Err.Error() + ")"))
	}
	return b.String()
}
