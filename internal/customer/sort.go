package customer

import (
	"cmp"
	"fmt"
	"strings"
)

// SortField is a column the view can be ordered by.
type SortField int

const (
	SortNone SortField = iota
	SortName
	SortEmail
	SortPhone
	SortScore
	SortLastMessage
	SortAddedBy
)

// SortFields lists every sortable field in header order.
var SortFields = []SortField{
	SortName,
	SortEmail,
	SortPhone,
	SortScore,
	SortLastMessage,
	SortAddedBy,
}

func (f SortField) String() string {
	switch f {
	case SortNone:
		return "none"
	case SortName:
		return "name"
	case SortEmail:
		return "email"
	case SortPhone:
		return "phone"
	case SortScore:
		return "score"
	case SortLastMessage:
		return "last_message"
	case SortAddedBy:
		return "added_by"
	default:
		return fmt.Sprintf("SortField(%d)", int(f))
	}
}

func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "name":
		return SortName, nil
	case "email":
		return SortEmail, nil
	case "phone":
		return SortPhone, nil
	case "score":
		return SortScore, nil
	case "last_message", "lastmessage", "last_message_at", "last":
		return SortLastMessage, nil
	case "added_by", "addedby", "added":
		return SortAddedBy, nil
	default:
		return SortNone, fmt.Errorf("unknown sort field: %s", s)
	}
}

type Direction int

const (
	DirectionNone Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// Sort is a sort directive. The zero value is unsorted; a direction is
// set if and only if a field is set.
type Sort struct {
	field     SortField
	direction Direction
}

// SortBy returns a directive for field in direction. Either argument being
// unset yields the unsorted directive.
func SortBy(field SortField, direction Direction) Sort {
	if field == SortNone || direction == DirectionNone {
		return Sort{}
	}
	return Sort{field: field, direction: direction}
}

func (s Sort) Field() SortField     { return s.field }
func (s Sort) Direction() Direction { return s.direction }
func (s Sort) IsSet() bool          { return s.field != SortNone }

// DirectionOf reports the direction applied to field, DirectionNone when
// the view is sorted by another field or not at all.
func (s Sort) DirectionOf(field SortField) Direction {
	if s.field != field {
		return DirectionNone
	}
	return s.direction
}

// Cycle advances the directive for a header activation on field:
// unsorted -> ascending -> descending -> unsorted. Activating a different
// field starts it at ascending and drops the previous field.
func (s Sort) Cycle(field SortField) Sort {
	if field == SortNone {
		return Sort{}
	}
	if s.field != field {
		return SortBy(field, Ascending)
	}
	switch s.direction {
	case Ascending:
		return SortBy(field, Descending)
	default:
		return Sort{}
	}
}

func (s Sort) String() string {
	if !s.IsSet() {
		return "none"
	}
	return s.field.String() + ":" + s.direction.String()
}

// ParseSort parses "field", "field:asc" or "field:desc".
func ParseSort(s string) (Sort, error) {
	name, dir, hasDir := strings.Cut(s, ":")
	field, err := ParseSortField(name)
	if err != nil {
		return Sort{}, err
	}
	if field == SortNone {
		return Sort{}, nil
	}
	if !hasDir {
		return SortBy(field, Ascending), nil
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "asc", "ascending", "":
		return SortBy(field, Ascending), nil
	case "desc", "descending":
		return SortBy(field, Descending), nil
	default:
		return Sort{}, fmt.Errorf("unknown sort direction: %s", dir)
	}
}

// sortKey holds the comparison key of one record for one field, computed
// once per sort instead of once per comparison.
type sortKey struct {
	text   string
	number int64
}

func keyOf(r Record, field SortField) sortKey {
	switch field {
	case SortName:
		return sortKey{text: strings.ToLower(r.Name)}
	case SortEmail:
		return sortKey{text: strings.ToLower(r.Email)}
	case SortPhone:
		return sortKey{text: strings.ToLower(r.Phone)}
	case SortAddedBy:
		return sortKey{text: strings.ToLower(r.AddedBy)}
	case SortScore:
		return sortKey{number: int64(r.Score)}
	case SortLastMessage:
		return sortKey{number: r.LastMessageAt.UnixNano()}
	default:
		panic(fmt.Sprintf("customer: no sort key for %s", field))
	}
}

func compareKeys(a, b sortKey) int {
	if c := cmp.Compare(a.number, b.number); c != 0 {
		return c
	}
	return strings.Compare(a.text, b.text)
}
