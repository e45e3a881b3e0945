package styles

import (
	"image/color"
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

const (
	CheckIcon    = "✓"
	ErrorIcon    = "×"
	WarningIcon  = "⚠"
	InfoIcon     = "ⓘ"
	SortNoneIcon = "↕"
	SortAscIcon  = "↑"
	SortDescIcon = "↓"

	CheckboxOn      = "[x]"
	CheckboxOff     = "[ ]"
	CheckboxPartial = "[-]"

	// AvatarFallback is shown for records without a usable avatar.
	AvatarFallback = "◌"
	AvatarIcon     = "●"
)

type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color

	BgBase        color.Color
	BgBaseLighter color.Color
	BgSubtle      color.Color
	BgOverlay     color.Color

	FgBase      color.Color
	FgMuted     color.Color
	FgHalfMuted color.Color
	FgSubtle    color.Color
	FgSelected  color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	White color.Color

	styles     *Styles
	stylesOnce sync.Once
}

type Styles struct {
	Base         lipgloss.Style
	SelectedBase lipgloss.Style

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style

	Header       lipgloss.Style
	HeaderSorted lipgloss.Style
	Row          lipgloss.Style
	RowCursor    lipgloss.Style
	RowSelected  lipgloss.Style
	Pill         lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Help      help.Styles
	TextInput textinput.Styles
}

func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	return &Styles{
		Base:         base,
		SelectedBase: base.Background(t.Primary),
		Title:        base.Foreground(t.Accent).Bold(true),
		Subtitle:     base.Foreground(t.Secondary).Bold(true),
		Text:         base,
		Muted:        base.Foreground(t.FgMuted),
		Subtle:       base.Foreground(t.FgSubtle),

		Header:       base.Foreground(t.FgHalfMuted).Bold(true),
		HeaderSorted: base.Foreground(t.Secondary).Bold(true),
		Row:          base,
		RowCursor:    base.Background(t.BgSubtle).Foreground(t.FgSelected),
		RowSelected:  base.Foreground(t.Primary),
		Pill: base.Background(t.Primary).Foreground(t.White).
			Padding(0, 1),

		Success: base.Foreground(t.Success),
		Error:   base.Foreground(t.Error),
		Warning: base.Foreground(t.Warning),
		Info:    base.Foreground(t.Info),

		Help: help.Styles{
			ShortKey:       base.Foreground(t.FgMuted),
			ShortDesc:      base.Foreground(t.FgSubtle),
			ShortSeparator: base.Foreground(t.Border),
			Ellipsis:       base.Foreground(t.Border),
			FullKey:        base.Foreground(t.FgMuted),
			FullDesc:       base.Foreground(t.FgSubtle),
			FullSeparator:  base.Foreground(t.Border),
		},
		TextInput: textinput.Styles{
			Focused: textinput.StyleState{
				Text:        base,
				Placeholder: base.Foreground(t.FgSubtle),
				Prompt:      base.Foreground(t.Tertiary),
				Suggestion:  base.Foreground(t.FgSubtle),
			},
			Blurred: textinput.StyleState{
				Text:        base.Foreground(t.FgMuted),
				Placeholder: base.Foreground(t.FgSubtle),
				Prompt:      base.Foreground(t.FgMuted),
				Suggestion:  base.Foreground(t.FgSubtle),
			},
			Cursor: textinput.CursorStyle{
				Color: t.Secondary,
				Shape: tea.CursorBar,
				Blink: true,
			},
		},
	}
}

func NewCharmtoneTheme() *Theme {
	return &Theme{
		Name:   "charmtone",
		IsDark: true,

		Primary:   charmtone.Charple,
		Secondary: charmtone.Dolly,
		Tertiary:  charmtone.Bok,
		Accent:    charmtone.Zest,

		BgBase:        charmtone.Pepper,
		BgBaseLighter: charmtone.BBQ,
		BgSubtle:      charmtone.Charcoal,
		BgOverlay:     charmtone.Iron,

		FgBase:      charmtone.Ash,
		FgMuted:     charmtone.Squid,
		FgHalfMuted: charmtone.Smoke,
		FgSubtle:    charmtone.Oyster,
		FgSelected:  charmtone.Salt,

		Border:      charmtone.Charcoal,
		BorderFocus: charmtone.Charple,

		Success: charmtone.Guac,
		Error:   charmtone.Sriracha,
		Warning: charmtone.Zest,
		Info:    charmtone.Malibu,

		White: charmtone.Butter,
	}
}

var (
	currentTheme *Theme
	themeOnce    sync.Once
)

func CurrentTheme() *Theme {
	themeOnce.Do(func() {
		currentTheme = NewCharmtoneTheme()
	})
	return currentTheme
}
