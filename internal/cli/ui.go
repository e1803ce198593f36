package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gridaxis/pkg/problem"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCollapsed   = lipgloss.NewStyle().Foreground(colorDim)
	styleRelaxed     = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Problem Output
// =============================================================================

// formatSize renders a size, showing unbounded maxima as ∞.
func formatSize(v int, unbounded bool) string {
	if unbounded {
		return "∞"
	}
	return strconv.Itoa(v)
}

func printBounds(w io.Writer, b problem.Bounds) {
	printKeyValue(w, "strategy", b.Strategy)
	printKeyValue(w, "elements", strconv.Itoa(b.Elements))
	printKeyValue(w, "min", strconv.Itoa(b.Min))
	printKeyValue(w, "max", formatSize(b.Max, b.Unbounded))
	printKeyValue(w, "preferred", strconv.Itoa(b.Preferred))
}

// solutionTable renders the placements of sol. Collapsed (zero-size)
// elements are dimmed.
func solutionTable(sol problem.Solution) string {
	rows := make([][]string, len(sol.Elements))
	for i, pl := range sol.Elements {
		rows[i] = []string{strconv.Itoa(pl.Index), strconv.Itoa(pl.Location), strconv.Itoa(pl.Size)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Element", "Location", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return base.Inherit(styleHeader)
			}
			if row >= 0 && row < len(sol.Elements) && sol.Elements[row].Size == 0 {
				return base.Inherit(styleCollapsed)
			}
			if col == 2 {
				return base.Foreground(colorCyan)
			}
			return base
		}).
		Render()
}

func printSolution(w io.Writer, sol problem.Solution) {
	title := fmt.Sprintf("size %d", sol.Size)
	if sol.Clamped {
		title += StyleDim.Render(fmt.Sprintf(" (requested %d)", sol.Requested))
	}
	fmt.Fprintln(w, StyleTitle.Render(title))
	fmt.Fprintln(w, solutionTable(sol))
	for _, r := range sol.Relaxed {
		fmt.Fprintln(w, styleRelaxed.Render(fmt.Sprintf("  range [%d..%d] max relaxed %d %s %d", r.First, r.Last, r.Declared, iconArrow, r.Relaxed)))
	}
}
