package list

const (
	DefaultPageSize = 30
	// DefaultLoadThreshold is the distance from the end of the content, in
	// rows, under which the next page is loaded.
	DefaultLoadThreshold = 20
)

// Window tracks how many leading items of a result set are materialized.
// It only ever exposes a prefix of the result set and grows one page at a
// time.
type Window struct {
	pageSize  int
	threshold int

	generation uint64
	synced     bool
	loaded     int
}

func NewWindow(pageSize, threshold int) *Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Window{
		pageSize:  pageSize,
		threshold: max(0, threshold),
	}
}

func (w *Window) PageSize() int  { return w.pageSize }
func (w *Window) Threshold() int { return w.threshold }

// Loaded is the number of materialized items.
func (w *Window) Loaded() int {
	return w.loaded
}

// Reset discards loading progress for a result set of the given length.
func (w *Window) Reset(length int) {
	w.loaded = min(w.pageSize, max(0, length))
}

// Sync resets the window when the result set identified by generation is
// not the one it was last synced to. Two different result sets of equal
// length still reset. It reports whether a reset happened.
func (w *Window) Sync(generation uint64, length int) bool {
	if w.synced && w.generation == generation {
		w.loaded = min(w.loaded, max(0, length))
		return false
	}
	w.synced = true
	w.generation = generation
	w.Reset(length)
	return true
}

// MaybeGrow loads one more page when distance to the end of the content is
// under the threshold and there is something left to load. It reports
// whether the window grew; calling it on a fully loaded window is a no-op.
func (w *Window) MaybeGrow(distance, length int) bool {
	if distance >= w.threshold || w.loaded >= length {
		return false
	}
	w.loaded = min(w.loaded+w.pageSize, length)
	return true
}

// Done reports whether every item of a result set of length is loaded.
func (w *Window) Done(length int) bool {
	return w.loaded >= length
}

// Displayed returns the materialized prefix of items.
func Displayed[T any](w *Window, items []T) []T {
	return items[:min(w.loaded, len(items))]
}
