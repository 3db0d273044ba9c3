package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/sandbox-teardown/internal/teardown"
)

// RenderOptions tunes RenderReport.
type RenderOptions struct {
	DryRun bool
	Err    error // Error returned by the run, if any
}

// RenderReport renders a teardown report as a terminal summary.
func RenderReport(r *teardown.Report, opts RenderOptions) string {
	if r == nil {
		return ""
	}

	var b strings.Builder

	title := "Teardown of reservation " + r.ReservationID
	if opts.DryRun {
		title += " (dry run)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("finished in " + r.Duration.Round(time.Millisecond).String()))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Phases"))
	b.WriteString("\n")
	for _, p := range r.Phases {
		mark, style := checkMark, okStyle
		if p.Err != nil {
			mark, style = crossMark, failedStyle
		}
		line := fmt.Sprintf("%s %-13s %s", mark, p.Name, p.Duration.Round(time.Millisecond))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Resources"))
	b.WriteString("\n")
	writeCount(&b, "routes disconnected", r.RoutesDisconnected)
	writeNames(&b, "marked for deletion", r.MarkedForDeletion, okStyle)
	writeNames(&b, "powered off", r.PoweredOff, okStyle)
	writeNames(&b, "skipped", r.Skipped, dimStyle)
	writeNames(&b, "failed", r.Failed, failedStyle)
	if r.ArtifactsDeleted > 0 {
		writeCount(&b, "artifacts deleted", r.ArtifactsDeleted)
	}

	if len(r.Warnings) > 0 {
		b.WriteString(sectionStyle.Render("Warnings"))
		b.WriteString("\n")
		for _, w := range r.Warnings {
			b.WriteString(warningStyle.Render(warnMark + " " + w))
			b.WriteString("\n")
		}
	}

	switch {
	case opts.Err != nil:
		b.WriteString(footerStyle.Render(failedStyle.Render("Teardown failed: " + opts.Err.Error())))
	case len(r.Failed) > 0 || len(r.Warnings) > 0:
		b.WriteString(footerStyle.Render(warningStyle.Render("Teardown finished with warnings")))
	default:
		b.WriteString(footerStyle.Render(okStyle.Render("Teardown finished successfully")))
	}
	b.WriteString("\n")

	return b.String()
}

func writeCount(b *strings.Builder, label string, n int) {
	fmt.Fprintf(b, "  %-20s %d\n", label, n)
}

func writeNames(b *strings.Builder, label string, names []string, style lipgloss.Style) {
	if len(names) == 0 {
		writeCount(b, label, 0)
		return
	}
	line := fmt.Sprintf("  %-20s %d  %s", label, len(names), strings.Join(names, ", "))
	b.WriteString(style.Render(line))
	b.WriteString("\n")
}
