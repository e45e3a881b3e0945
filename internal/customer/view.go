package customer

import (
	"log/slog"
	"slices"
	"strings"
	"time"
)

// View is a filtered and ordered projection of a dataset. Generation
// identifies the computation that produced it: two views with the same
// generation hold the same records in the same order.
type View struct {
	Records    []Record
	Term       string
	Sort       Sort
	Generation uint64
}

func (v View) Len() int {
	return len(v.Records)
}

// Matches reports whether r contains term, case-insensitively, in its
// name, email or phone. The empty term matches every record.
func Matches(r Record, term string) bool {
	if term == "" {
		return true
	}
	return matchesLower(r, strings.ToLower(term))
}

func matchesLower(r Record, q string) bool {
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Email), q) ||
		strings.Contains(strings.ToLower(r.Phone), q)
}

// ComputeView filters d by term and orders the result by s. Records that
// compare equal keep their dataset order.
func ComputeView(d *Dataset, term string, s Sort) []Record {
	if d.Len() == 0 {
		return nil
	}

	var result []Record
	if term == "" {
		result = slices.Clone(d.records)
	} else {
		q := strings.ToLower(term)
		result = make([]Record, 0, len(d.records)/4)
		for _, r := range d.records {
			if matchesLower(r, q) {
				result = append(result, r)
			}
		}
	}

	if !s.IsSet() || len(result) < 2 {
		return result
	}

	type keyed struct {
		key    sortKey
		record Record
	}
	keyedRecords := make([]keyed, len(result))
	for i, r := range result {
		keyedRecords[i] = keyed{key: keyOf(r, s.field), record: r}
	}
	desc := s.direction == Descending
	slices.SortStableFunc(keyedRecords, func(a, b keyed) int {
		c := compareKeys(a.key, b.key)
		if desc {
			return -c
		}
		return c
	})
	for i := range keyedRecords {
		result[i] = keyedRecords[i].record
	}
	return result
}

type viewKey struct {
	dataset uint64
	term    string
	sort    Sort
}

// Engine memoizes ComputeView. A view is recomputed only when the dataset
// fingerprint, term or sort directive differ from the previous call.
type Engine struct {
	dataset *Dataset

	key        viewKey
	current    View
	hasCurrent bool

	generation   uint64
	computations int
}

func NewEngine(d *Dataset) *Engine {
	return &Engine{dataset: d}
}

func (e *Engine) Dataset() *Dataset {
	return e.dataset
}

// View returns the view for term and s, reusing the previous one when the
// inputs are unchanged.
func (e *Engine) View(term string, s Sort) View {
	key := viewKey{
		dataset: e.dataset.Fingerprint(),
		term:    term,
		sort:    s,
	}
	if e.hasCurrent && key == e.key {
		return e.current
	}

	start := time.Now()
	records := ComputeView(e.dataset, term, s)
	e.generation++
	e.computations++
	e.key = key
	e.current = View{
		Records:    records,
		Term:       term,
		Sort:       s,
		Generation: e.generation,
	}
	e.hasCurrent = true

	slog.Debug("Computed customer view",
		"term", term,
		"sort", s.String(),
		"matches", len(records),
		"total", e.dataset.Len(),
		"generation", e.generation,
		"took", time.Since(start),
	)
	return e.current
}

// Computations is the number of times the engine recomputed a view.
func (e *Engine) Computations() int {
	return e.computations
}
