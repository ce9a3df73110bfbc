package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ringgauge/pkg/dataview"
	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	// scrubSteps divides the min..max span into arrow-key steps.
	scrubSteps = 20

	// coarseFactor multiplies the step for up/down.
	coarseFactor = 5

	// gradientWidth is the number of cells in the min..max color bar.
	gradientWidth = 40
)

// =============================================================================
// PreviewModel - Interactive value scrubber
// =============================================================================

// PreviewModel is the bubbletea model that moves the current value and shows
// the interpolated stroke color.
type PreviewModel struct {
	VM      settings.ViewModel
	Initial float64
	Step    float64
}

// NewPreviewModel creates a preview over a resolved view-model.
func NewPreviewModel(vm settings.ViewModel) PreviewModel {
	step := math.Abs(vm.Targets.Max-vm.Targets.Min) / scrubSteps
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		step = 0.05
	}
	return PreviewModel{VM: vm, Initial: vm.CurrentValue, Step: step}
}

// Stroke returns the stroke color at the current value.
func (m PreviewModel) Stroke() gauge.Color {
	return gauge.StrokeColor(m.VM)
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			m.VM.CurrentValue += m.Step
		case "left", "h":
			m.VM.CurrentValue -= m.Step
		case "up", "k":
			m.VM.CurrentValue += m.Step * coarseFactor
		case "down", "j":
			m.VM.CurrentValue -= m.Step * coarseFactor
		case "m":
			m.VM.CurrentValue = m.VM.Targets.Mid
		case "r":
			m.VM.CurrentValue = m.Initial
		}
		m.VM.CurrentValue = snap(m.VM.CurrentValue)
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Gauge Preview"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ step  ↑/↓ x5  m mid  r reset  q quit"))
	b.WriteString("\n\n")

	stroke := m.Stroke().Hex()
	block := lipgloss.NewStyle().
		Background(lipgloss.Color(stroke)).
		Width(12).
		Height(3).
		Render("")
	info := lipgloss.JoinVertical(lipgloss.Left,
		listSelectedStyle.Render(dataview.FormatNumber(m.VM.CurrentValue)),
		StyleValue.Render(stroke),
		listDimStyle.Render(m.VM.Symbol.Glyph),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, block, "  ", info))
	b.WriteString("\n\n")

	b.WriteString(m.gradient())
	b.WriteString("\n")
	t := m.VM.Targets
	b.WriteString(listDimStyle.Render(fmt.Sprintf("min %s  mid %s  max %s",
		dataview.FormatNumber(t.Min), dataview.FormatNumber(t.Mid), dataview.FormatNumber(t.Max))))
	b.WriteString("\n")

	return b.String()
}

// gradient draws the stroke color across min..max with a marker under the
// current value.
func (m PreviewModel) gradient() string {
	t := m.VM.Targets
	var bar, marker strings.Builder

	pos := -1
	if span := t.Max - t.Min; span != 0 {
		f := (m.VM.CurrentValue - t.Min) / span
		pos = int(math.Round(math.Max(0, math.Min(1, f)) * (gradientWidth - 1)))
	}

	vm := m.VM
	for i := range gradientWidth {
		vm.CurrentValue = t.Min + (t.Max-t.Min)*float64(i)/(gradientWidth-1)
		bar.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(gauge.StrokeColor(vm).Hex())).Render(" "))
		if i == pos {
			marker.WriteString("▲")
		} else {
			marker.WriteString(" ")
		}
	}
	return bar.String() + "\n" + listSelectedStyle.Render(marker.String())
}

// snap removes float drift from repeated stepping.
func snap(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}
