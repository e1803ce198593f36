package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridaxis/pkg/axis"
	"github.com/matzehuels/gridaxis/pkg/problem"
)

func (c *CLI) previewCommand() *cobra.Command {
	var (
		size int
		step int
	)

	cmd := &cobra.Command{
		Use:   "preview <problem.toml|problem.json>",
		Short: "Resize a problem interactively",
		Long: `Preview draws the solved axis as a bar and re-solves it as you resize.

Keys: ←/→ resize by --step, shift+←/→ by ten steps, p/m/M jump to the
preferred, minimum and maximum size, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := problem.Load(args[0])
			if err != nil {
				return err
			}
			l, err := p.Build()
			if err != nil {
				return err
			}
			if err := l.Validate(); err != nil {
				return err
			}
			m := newPreviewModel(p.Name, l, step)
			if cmd.Flags().Changed("size") {
				m = m.resize(size)
			}
			prog := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = prog.Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 0, "initial size (default: preferred)")
	cmd.Flags().IntVar(&step, "step", 1, "resize step")
	return cmd
}

var barColors = []lipgloss.Color{colorCyan, colorGreen, lipgloss.Color("75"), lipgloss.Color("141")}

// previewModel is the bubbletea model of the preview command.
type previewModel struct {
	name   string
	l      axis.Layouter
	bounds problem.Bounds
	step   int
	width  int

	size int
	sol  *problem.Solution
	err  error
}

func newPreviewModel(name string, l axis.Layouter, step int) previewModel {
	m := previewModel{
		name:   name,
		l:      l,
		bounds: problem.BoundsOf(l),
		step:   max(step, 1),
		width:  80,
	}
	return m.resize(m.bounds.Preferred)
}

// resize lays the axis out at size, which is kept within the axis bounds.
func (m previewModel) resize(size int) previewModel {
	size = max(size, m.bounds.Min)
	if !m.bounds.Unbounded {
		size = min(size, m.bounds.Max)
	}
	m.size = size
	m.sol, m.err = problem.Solve(m.l, size)
	return m
}

func (m previewModel) Init() tea.Cmd { return nil }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			return m.resize(m.size - m.step), nil
		case "right", "l":
			return m.resize(m.size + m.step), nil
		case "shift+left", "H":
			return m.resize(m.size - 10*m.step), nil
		case "shift+right", "L":
			return m.resize(m.size + 10*m.step), nil
		case "p":
			return m.resize(m.bounds.Preferred), nil
		case "m":
			return m.resize(m.bounds.Min), nil
		case "M":
			if !m.bounds.Unbounded {
				return m.resize(m.bounds.Max), nil
			}
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · min %d · preferred %d · max %s",
		m.bounds.Strategy, m.bounds.Min, m.bounds.Preferred, formatSize(m.bounds.Max, m.bounds.Unbounded))))
	b.WriteString("\n\n")
	b.WriteString("size " + StyleNumber.Render(strconv.Itoa(m.size)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
	} else {
		b.WriteString(m.bar(m.width - 2))
		b.WriteString("\n")
		b.WriteString(solutionTable(*m.sol))
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ resize  shift ×10  p preferred  m min  M max  q quit"))
	b.WriteString("\n")
	return b.String()
}

// bar draws the solution scaled to cols terminal cells. Collapsed elements
// take no cells; spacing shows as gaps.
func (m previewModel) bar(cols int) string {
	if m.sol == nil || m.sol.Size == 0 || cols <= 0 {
		return StyleDim.Render("(empty)")
	}
	scale := func(v int) int { return v * cols / m.sol.Size }

	var b strings.Builder
	pos := 0
	for i, pl := range m.sol.Elements {
		if pl.Size == 0 {
			continue
		}
		start, end := scale(pl.Location), scale(pl.Location+pl.Size)
		if start > pos {
			b.WriteString(strings.Repeat(" ", start-pos))
		}
		w := max(end-start, 1)
		label := strconv.Itoa(pl.Index)
		if len(label) > w {
			label = ""
		}
		style := lipgloss.NewStyle().
			Width(w).
			Align(lipgloss.Center).
			Background(barColors[i%len(barColors)]).
			Foreground(lipgloss.Color("0"))
		b.WriteString(style.Render(label))
		pos = start + w
	}
	return b.String()
}
