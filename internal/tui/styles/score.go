package styles

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

type ScoreTier int

const (
	ScoreLow ScoreTier = iota
	ScoreMid
	ScoreHigh
)

const (
	ScoreHighMin = 80
	ScoreMidMin  = 50
)

func TierOf(score int) ScoreTier {
	switch {
	case score >= ScoreHighMin:
		return ScoreHigh
	case score >= ScoreMidMin:
		return ScoreMid
	default:
		return ScoreLow
	}
}

// ScoreColor blends from the error color at 0 through the warning color at
// the middle tier to the success color at 100.
func (t *Theme) ScoreColor(score int) color.Color {
	score = min(max(score, 0), 100)
	from, to := t.Error, t.Warning
	p := float64(score) / ScoreMidMin
	if score >= ScoreMidMin {
		from, to = t.Warning, t.Success
		p = float64(score-ScoreMidMin) / (100 - ScoreMidMin)
	}
	c1, ok1 := colorful.MakeColor(from)
	c2, ok2 := colorful.MakeColor(to)
	if !ok1 || !ok2 {
		return to
	}
	return c1.BlendHcl(c2, p).Clamped()
}

func (t *Theme) ScoreStyle(score int) lipgloss.Style {
	s := t.S().Base.Foreground(t.ScoreColor(score))
	if TierOf(score) == ScoreHigh {
		s = s.Bold(true)
	}
	return s
}
