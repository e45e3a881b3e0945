package customers

import (
	"strings"

	"github.com/charmbracelet/roster/internal/customer"
	"github.com/charmbracelet/roster/internal/tui/styles"
	"github.com/charmbracelet/x/ansi"
)

const (
	// lastMessageLayout renders timestamps like "Aug 1, 2025, 12:00 PM".
	lastMessageLayout = "Jan 2, 2006, 03:04 PM"

	// prefixWidth covers the cursor mark, the checkbox and the avatar.
	prefixWidth = 1 + 3 + 1 + 1 + 1
	columnGap   = 1
)

type column struct {
	title string
	field customer.SortField
	min   int
	flex  int
	// priority decides which columns are hidden first on narrow screens;
	// lower goes first.
	priority int

	x     int
	width int
}

func defaultColumns() []column {
	return []column{
		{title: "Name", field: customer.SortName, min: 14, flex: 3, priority: 5},
		{title: "Email", field: customer.SortEmail, min: 18, flex: 4, priority: 3},
		{title: "Phone", field: customer.SortPhone, min: 14, priority: 1},
		{title: "Score", field: customer.SortScore, min: 7, priority: 4},
		{title: "Last message", field: customer.SortLastMessage, min: len(lastMessageLayout), priority: 2},
		{title: "Added by", field: customer.SortAddedBy, min: 10, flex: 1, priority: 0},
	}
}

// layoutColumns fits the columns into width, dropping the lowest priority
// columns until the rest fit and sharing the remaining space by flex.
func layoutColumns(width int) []column {
	cols := defaultColumns()
	avail := func(cs []column) int {
		need := 0
		for _, c := range cs {
			need += c.min + columnGap
		}
		return width - prefixWidth - need
	}
	for len(cols) > 1 && avail(cols) < 0 {
		drop := 0
		for i, c := range cols {
			if c.priority < cols[drop].priority {
				drop = i
			}
		}
		cols = append(cols[:drop], cols[drop+1:]...)
	}

	extra := max(0, avail(cols))
	flex := 0
	for _, c := range cols {
		flex += c.flex
	}
	x := prefixWidth
	given := 0
	for i := range cols {
		cols[i].width = cols[i].min
		if flex > 0 && cols[i].flex > 0 {
			share := extra * cols[i].flex / flex
			cols[i].width += share
			given += share
		}
		cols[i].x = x
		x += cols[i].width + columnGap
	}
	// Rounding leftovers go to the first flexible column.
	for i := range cols {
		if cols[i].flex > 0 && extra > given {
			cols[i].width += extra - given
			for j := i + 1; j < len(cols); j++ {
				cols[j].x += extra - given
			}
			break
		}
	}
	return cols
}

// columnAt returns the index of the column under x.
func columnAt(cols []column, x int) (int, bool) {
	for i, c := range cols {
		if x >= c.x && x < c.x+c.width {
			return i, true
		}
	}
	return 0, false
}

func sortIcon(d customer.Direction) string {
	switch d {
	case customer.Ascending:
		return styles.SortAscIcon
	case customer.Descending:
		return styles.SortDescIcon
	default:
		return styles.SortNoneIcon
	}
}

// cell truncates s to width cells and pads it with spaces.
func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	return s + strings.Repeat(" ", max(0, width-ansi.StringWidth(s)))
}
