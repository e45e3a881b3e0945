package customer

import "slices"

// Selection is the set of checked customer ids. It is independent of the
// current filter and sort: ids stay selected while their records are
// filtered out. Only records from the session's dataset can be added, so
// the set never grows past the dataset size.
type Selection struct {
	ids map[int]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[int]struct{})}
}

func (s *Selection) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// Toggle flips id and reports whether it is now selected.
func (s *Selection) Toggle(id int) bool {
	if s.Has(id) {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// State summarizes how many of records are selected.
type State int

const (
	StateNone State = iota
	StatePartial
	StateAll
)

func (s *Selection) StateOf(records []Record) State {
	if len(records) == 0 {
		return StateNone
	}
	n := 0
	for _, r := range records {
		if s.Has(r.ID) {
			n++
		}
	}
	switch n {
	case 0:
		return StateNone
	case len(records):
		return StateAll
	default:
		return StatePartial
	}
}

// ToggleAll selects every record in records unless all of them are
// already selected, in which case it deselects them. Ids outside records
// are untouched. It reports whether records ended up selected.
func (s *Selection) ToggleAll(records []Record) bool {
	if len(records) > 0 && s.StateOf(records) == StateAll {
		for _, r := range records {
			delete(s.ids, r.ID)
		}
		return false
	}
	for _, r := range records {
		s.ids[r.ID] = struct{}{}
	}
	return len(records) > 0
}

func (s *Selection) Clear() {
	clear(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Selected returns the records of d that are selected, in dataset order.
func (s *Selection) Selected(d *Dataset) []Record {
	if len(s.ids) == 0 {
		return nil
	}
	var out []Record
	for _, r := range d.records {
		if s.Has(r.ID) {
			out = append(out, r)
		}
	}
	return out
}
