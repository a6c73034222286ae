package tui

import (
	"fmt"
	"strings"
	"time"
)

var spinnerFrames = []string{"[|  ]", "[ | ]", "[  |]", "[ | ]"}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderPhases(&b, m)

	if len(m.Conflicts) > 0 {
		renderConflicts(&b, m)
	}

	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("txforge export: %s", m.ProjectName)
	if m.NetworkID != "" {
		title += fmt.Sprintf(" (%s)", m.NetworkID)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += readyStyle.Render("Complete")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render("Exporting...")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Pipeline"))
	b.WriteString("\n")

	for _, phase := range m.Phases {
		var mark, name string
		switch {
		case phase.Err != nil:
			mark = failedStyle.Render(crossMark)
			name = failedStyle.Render(phase.Name)
		case phase.Done:
			mark = readyStyle.Render(checkMark)
			name = dimStyle.Render(phase.Name)
		case phase.Active:
			mark = activeStyle.Render(currentSpinner(m.SpinnerFrame))
			name = activeStyle.Render(phase.Name)
		default:
			mark = dimStyle.Render(pending)
			name = dimStyle.Render(phase.Name)
		}
		fmt.Fprintf(b, "  %s %s\n", mark, name)
	}
}

func renderConflicts(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Dependency Conflicts"))
	b.WriteString("\n")

	for _, c := range m.Conflicts {
		mark := warnMark
		style := warningStyle
		if c.Disjoint {
			mark = crossMark
			style = failedStyle
		}
		fmt.Fprintf(b, "  %s %s\n", style.Render(mark),
			style.Render(fmt.Sprintf("%s: base %s vs adapter %s", c.Package, c.BaseRange, c.AdapterRange)))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	footer := fmt.Sprintf("elapsed %s", elapsed)
	if m.Done && m.OutputPath != "" {
		footer += fmt.Sprintf("  output %s", m.OutputPath)
	}
	if !m.Done && m.Err == nil {
		footer += "  (q to abort)"
	}
	b.WriteString(footerStyle.Render("  " + footer))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
