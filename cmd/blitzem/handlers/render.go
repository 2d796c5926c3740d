package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/blitzem/internal/command"
	"github.com/imamik/blitzem/internal/lifecycle"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	redStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

func writeTitle(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  " + title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n")
}

// renderReport prints the final state of every target of a run.
func renderReport(w io.Writer, environment string, report *lifecycle.Report) {
	var b strings.Builder
	writeTitle(&b, fmt.Sprintf("blitzem %s: %s", report.Direction, environment))

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-24s %-14s %s", "Resource", "Kind", "State")))
	b.WriteString("\n")
	for _, e := range report.Entries() {
		fmt.Fprintf(&b, "  %-24s %-14s %s\n", e.Name, e.Kind, stateLabel(e.State))
		if e.Err != nil {
			b.WriteString(redStyle.Render("    " + e.Err.Error()))
			b.WriteString("\n")
		}
	}
	fmt.Fprint(w, b.String())
}

func stateLabel(s lifecycle.State) string {
	switch s {
	case lifecycle.StateStable, lifecycle.StateRemoved:
		return greenStyle.Render(string(s))
	case lifecycle.StateFailed:
		return redStyle.Render(string(s))
	default:
		return dimStyle.Render(string(s))
	}
}

// renderStatus prints whether each declared resource exists.
func renderStatus(w io.Writer, environment string, entries []command.StatusEntry) {
	var b strings.Builder
	writeTitle(&b, "blitzem status: "+environment)

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-24s %-14s %-6s %s", "Resource", "Kind", "Up", "Tags")))
	b.WriteString("\n")
	up := 0
	for _, e := range entries {
		marker := redStyle.Render("no    ")
		if e.Up {
			marker = greenStyle.Render("yes   ")
			up++
		}
		fmt.Fprintf(&b, "  %-24s %-14s %s %s\n", e.Name, e.Kind, marker, strings.Join(e.Tags, ","))
	}
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 40)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %d of %d up\n", up, len(entries))
	fmt.Fprint(w, b.String())
}

// renderList prints everything the provider holds for the environment.
func renderList(w io.Writer, environment string, list *command.List) {
	var b strings.Builder
	writeTitle(&b, "blitzem list: "+environment)

	b.WriteString(sectionStyle.Render("  Servers"))
	b.WriteString("\n")
	if len(list.Instances) == 0 {
		b.WriteString(dimStyle.Render("  none"))
		b.WriteString("\n")
	}
	for _, inst := range list.Instances {
		fmt.Fprintf(&b, "  %-24s %-10s %-10s %s\n", inst.Name, inst.ID, inst.Status, inst.PublicIPv4)
	}

	b.WriteString(sectionStyle.Render("  Load Balancers"))
	b.WriteString("\n")
	if len(list.LoadBalancers) == 0 {
		b.WriteString(dimStyle.Render("  none"))
		b.WriteString("\n")
	}
	for _, lb := range list.LoadBalancers {
		fmt.Fprintf(&b, "  %-24s %-10s %s %d->%d %d targets\n",
			lb.Name, lb.ID, lb.Protocol, lb.Port, lb.NodePort, len(lb.TargetIDs))
	}
	fmt.Fprint(w, b.String())
}
