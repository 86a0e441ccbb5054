package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

// ProgressBar renders a proficiency level against the top of the scale.
type ProgressBar struct {
	completed int
	total     int
	label     string
	width     int
}

// NewProgressBar creates a new progress bar with the specified total and width.
func NewProgressBar(total int, width int) *ProgressBar {
	if width <= 0 {
		width = 15
	}
	return &ProgressBar{
		total: total,
		width: width,
	}
}

// NewProficiencyBar returns a bar on the 1-5 proficiency scale set to level.
func NewProficiencyBar(level uint8, width int) *ProgressBar {
	p := NewProgressBar(models.MaxProficiency, width)
	p.Update(int(level), "")
	return p
}

// Update sets the current progress and label.
func (p *ProgressBar) Update(completed int, label string) {
	p.completed = completed
	p.label = label
}

func (p *ProgressBar) bar() string {
	completed := p.completed
	if completed > p.total {
		completed = p.total
	}
	filled := p.width * completed / p.total
	return strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
}

// Render returns the bar in the proficiency color.
func (p *ProgressBar) Render() string {
	return p.render("#10B981")
}

// RenderGoal returns the bar in the goal color, for target proficiencies.
func (p *ProgressBar) RenderGoal() string {
	return p.render("#F59E0B")
}

func (p *ProgressBar) render(color string) string {
	if p.total == 0 {
		return ""
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true)

	barStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color))

	countStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B6B6B"))

	out := barStyle.Render("["+p.bar()+"]") +
		countStyle.Render(fmt.Sprintf(" %d/%d", p.completed, p.total))
	if p.label != "" {
		out += " " + labelStyle.Render(p.label)
	}
	return out
}

var visibilityColors = map[models.Visibility]string{
	models.VisibilityPrivate: "#EF4444",
	models.VisibilityShared:  "#F59E0B",
	models.VisibilityPublic:  "#10B981",
}

// visibilityBadge renders a visibility code as a colored tag.
func visibilityBadge(v models.Visibility) string {
	color, ok := visibilityColors[v]
	if !ok {
		color = "#6B6B6B"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Render("[" + v.String() + "]")
}

// renderMarkdown renders a skill or goal description for the terminal,
// falling back to the raw text if rendering fails.
func renderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n ")
}
