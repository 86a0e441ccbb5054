package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asteroid-belt/skilltrail/internal/models"
)

func TestProgressBar_Render(t *testing.T) {
	p := NewProficiencyBar(3, 10)
	out := p.Render()

	assert.Contains(t, out, "3/5")
	assert.Equal(t, 6, strings.Count(out, "█"))
	assert.Equal(t, 4, strings.Count(out, "░"))
}

func TestProgressBar_Bounds(t *testing.T) {
	full := NewProficiencyBar(models.MaxProficiency, 5).Render()
	assert.Equal(t, 5, strings.Count(full, "█"))
	assert.Zero(t, strings.Count(full, "░"))

	over := NewProgressBar(5, 5)
	over.Update(9, "")
	assert.Equal(t, 5, strings.Count(over.Render(), "█"), "bar is clamped to its width")

	empty := NewProgressBar(0, 5)
	assert.Empty(t, empty.Render())
}

func TestProgressBar_DefaultWidthAndLabel(t *testing.T) {
	p := NewProgressBar(5, 0)
	p.Update(5, "Go")
	out := p.RenderGoal()

	assert.Equal(t, 15, strings.Count(out, "█"))
	assert.Contains(t, out, "Go")
}

func TestVisibilityBadge(t *testing.T) {
	assert.Contains(t, visibilityBadge(models.VisibilityPrivate), "[private]")
	assert.Contains(t, visibilityBadge(models.VisibilityShared), "[shared]")
	assert.Contains(t, visibilityBadge(models.VisibilityPublic), "[public]")
	assert.Contains(t, visibilityBadge(models.Visibility(9)), "[visibility(9)]")
}

func TestRenderMarkdown(t *testing.T) {
	assert.Empty(t, renderMarkdown("   ", 80))
	assert.Contains(t, renderMarkdown("Learn **generics**", 80), "generics")
}
