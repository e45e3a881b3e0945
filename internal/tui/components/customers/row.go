package customers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/roster/internal/customer"
	"github.com/charmbracelet/roster/internal/tui/styles"
	"github.com/zeebo/xxh3"
)

type rowState struct {
	cursor   bool
	selected bool
	compact  bool
}

// avatarHost returns the host of a usable avatar URL.
func avatarHost(avatar string) (string, bool) {
	if avatar == "" {
		return "", false
	}
	u, err := url.Parse(avatar)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return u.Host, true
}

func renderAvatar(t *styles.Theme, avatar string) string {
	if _, ok := avatarHost(avatar); !ok {
		return t.S().Subtle.Render(styles.AvatarFallback)
	}
	palette := []lipgloss.Style{
		t.S().Base.Foreground(t.Primary),
		t.S().Base.Foreground(t.Secondary),
		t.S().Base.Foreground(t.Tertiary),
		t.S().Base.Foreground(t.Accent),
		t.S().Base.Foreground(t.Info),
	}
	return palette[xxh3.HashString(avatar)%uint64(len(palette))].Render(styles.AvatarIcon)
}

func renderCheckbox(t *styles.Theme, state customer.State) string {
	switch state {
	case customer.StateAll:
		return t.S().RowSelected.Render(styles.CheckboxOn)
	case customer.StatePartial:
		return t.S().RowSelected.Render(styles.CheckboxPartial)
	default:
		return t.S().Muted.Render(styles.CheckboxOff)
	}
}

func renderScoreBar(t *styles.Theme, score, width int) string {
	filled := min(width, max(0, score*width/customer.MaxScore))
	return t.ScoreStyle(score).Render(strings.Repeat("━", filled)) +
		t.S().Subtle.Render(strings.Repeat("─", width-filled))
}

// renderRow renders a record in the given columns. Comfortable rows take
// two lines, compact rows one.
func renderRow(t *styles.Theme, r customer.Record, cols []column, state rowState) string {
	mark := " "
	if state.cursor {
		mark = t.S().Base.Foreground(t.Primary).Render("▌")
	}
	checkbox := customer.StateNone
	if state.selected {
		checkbox = customer.StateAll
	}

	text := t.S().Text
	if state.cursor {
		text = text.Foreground(t.FgSelected).Bold(true)
	}
	if state.selected {
		text = t.S().RowSelected
	}
	muted := t.S().Muted

	var line strings.Builder
	line.WriteString(mark)
	line.WriteString(renderCheckbox(t, checkbox))
	line.WriteString(" ")
	line.WriteString(renderAvatar(t, r.Avatar))
	line.WriteString(" ")
	for _, c := range cols {
		switch c.field {
		case customer.SortName:
			line.WriteString(text.Render(cell(r.Name, c.width)))
		case customer.SortEmail:
			line.WriteString(muted.Render(cell(r.Email, c.width)))
		case customer.SortPhone:
			line.WriteString(muted.Render(cell(r.Phone, c.width)))
		case customer.SortScore:
			line.WriteString(t.ScoreStyle(r.Score).Render(cell(fmt.Sprintf("%3d", r.Score), c.width)))
		case customer.SortLastMessage:
			line.WriteString(muted.Render(cell(r.LastMessageAt.Local().Format(lastMessageLayout), c.width)))
		case customer.SortAddedBy:
			line.WriteString(muted.Render(cell(r.AddedBy, c.width)))
		}
		line.WriteString(strings.Repeat(" ", columnGap))
	}
	if state.compact {
		return line.String()
	}

	subtle := t.S().Subtle
	var detail strings.Builder
	detail.WriteString(strings.Repeat(" ", prefixWidth))
	for _, c := range cols {
		switch c.field {
		case customer.SortName:
			detail.WriteString(subtle.Render(cell(fmt.Sprintf("#%d", r.ID), c.width)))
		case customer.SortEmail:
			host, ok := avatarHost(r.Avatar)
			if !ok {
				host = "no avatar"
			}
			detail.WriteString(subtle.Render(cell(host, c.width)))
		case customer.SortScore:
			detail.WriteString(renderScoreBar(t, r.Score, c.width))
		default:
			detail.WriteString(strings.Repeat(" ", c.width))
		}
		detail.WriteString(strings.Repeat(" ", columnGap))
	}
	return line.String() + "\n" + detail.String()
}

func renderHeader(t *styles.Theme, cols []column, s customer.Sort, all customer.State) string {
	var line strings.Builder
	line.WriteString(" ")
	line.WriteString(renderCheckbox(t, all))
	line.WriteString("   ")
	for _, c := range cols {
		d := s.DirectionOf(c.field)
		title := c.title + " " + sortIcon(d)
		style := t.S().Header
		if d != customer.DirectionNone {
			style = t.S().HeaderSorted
		}
		line.WriteString(style.Render(cell(title, c.width)))
		line.WriteString(strings.Repeat(" ", columnGap))
	}
	return line.String()
}
