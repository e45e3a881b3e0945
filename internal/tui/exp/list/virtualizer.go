package list

import "fmt"

const (
	DefaultEstimatedSize = 2
	DefaultOverscan      = 10
	// ViewportDefaultScrollSize is the distance one mouse wheel step scrolls.
	ViewportDefaultScrollSize = 2
)

// VirtualItem is an item that intersects the viewport (or its overscan
// margin) together with its absolute position in the virtual space.
type VirtualItem struct {
	Index int
	Start int
	Size  int
}

// End is the first offset after the item.
func (v VirtualItem) End() int {
	return v.Start + v.Size
}

// Virtualizer computes which items of a list of count items must be
// rendered for the current scroll offset and viewport size, and where.
// Sizes are estimates until an item is measured; measurements are kept
// until the item stops being part of the list.
type Virtualizer struct {
	*virtualOptions

	sizes    fenwick
	size     []int
	measured []bool

	offset   int
	viewport int
}

type virtualOptions struct {
	estimate func(index int) int
	overscan int
}

type VirtualizerOption func(*virtualOptions)

// WithEstimatedSize uses the same size estimate for every item.
func WithEstimatedSize(size int) VirtualizerOption {
	return func(o *virtualOptions) {
		o.estimate = func(int) int { return size }
	}
}

// WithEstimate sets a per-index size estimate.
func WithEstimate(fn func(index int) int) VirtualizerOption {
	return func(o *virtualOptions) {
		o.estimate = fn
	}
}

// WithOverscan sets how many extra items are rendered on each side of the
// visible range.
func WithOverscan(n int) VirtualizerOption {
	return func(o *virtualOptions) {
		o.overscan = max(0, n)
	}
}

func NewVirtualizer(opts ...VirtualizerOption) *Virtualizer {
	v := &Virtualizer{
		virtualOptions: &virtualOptions{
			estimate: func(int) int { return DefaultEstimatedSize },
			overscan: DefaultOverscan,
		},
		sizes: newFenwick(),
	}
	for _, opt := range opts {
		opt(v.virtualOptions)
	}
	return v
}

func (v *Virtualizer) Count() int {
	return len(v.size)
}

// SetCount grows or shrinks the list. New items start at their estimate;
// measurements of items that remain are kept.
func (v *Virtualizer) SetCount(n int) {
	n = max(0, n)
	switch {
	case n > len(v.size):
		for i := len(v.size); i < n; i++ {
			s := max(0, v.estimate(i))
			v.size = append(v.size, s)
			v.measured = append(v.measured, false)
			v.sizes.push(s)
		}
	case n < len(v.size):
		v.size = v.size[:n]
		v.measured = v.measured[:n]
		v.sizes.truncate(n)
	}
	v.clampOffset()
}

// Measure records the real size of item index. It reports whether the
// item's size changed. Indices outside the list are ignored.
func (v *Virtualizer) Measure(index, size int) bool {
	if index < 0 || index >= len(v.size) {
		return false
	}
	size = max(0, size)
	v.measured[index] = true
	delta := size - v.size[index]
	if delta == 0 {
		return false
	}
	v.size[index] = size
	v.sizes.add(index, delta)
	v.clampOffset()
	return true
}

// IsMeasured reports whether index has a real measurement.
func (v *Virtualizer) IsMeasured(index int) bool {
	return index >= 0 && index < len(v.measured) && v.measured[index]
}

func (v *Virtualizer) SizeOf(index int) int {
	return v.size[index]
}

// StartOf is the absolute offset of item index.
func (v *Virtualizer) StartOf(index int) int {
	return v.sizes.prefix(min(max(0, index), len(v.size)))
}

// TotalSize is the extent of the whole list, estimated where unmeasured.
func (v *Virtualizer) TotalSize() int {
	return v.sizes.prefix(len(v.size))
}

func (v *Virtualizer) Viewport() int {
	return v.viewport
}

func (v *Virtualizer) SetViewport(size int) {
	v.viewport = max(0, size)
	v.clampOffset()
}

func (v *Virtualizer) Offset() int {
	return v.offset
}

// MaxOffset is the largest scroll offset that keeps the viewport filled.
func (v *Virtualizer) MaxOffset() int {
	return max(0, v.TotalSize()-v.viewport)
}

func (v *Virtualizer) clampOffset() {
	v.offset = min(max(0, v.offset), v.MaxOffset())
}

// ScrollTo moves the viewport to offset, clamped to the scrollable range.
// It reports whether the offset changed.
func (v *Virtualizer) ScrollTo(offset int) bool {
	old := v.offset
	v.offset = offset
	v.clampOffset()
	return v.offset != old
}

func (v *Virtualizer) ScrollBy(delta int) bool {
	return v.ScrollTo(v.offset + delta)
}

// ScrollToIndex scrolls the least amount needed to show item index
// entirely. Items larger than the viewport are aligned to their start.
func (v *Virtualizer) ScrollToIndex(index int) bool {
	if index < 0 || index >= len(v.size) {
		return false
	}
	start := v.StartOf(index)
	end := start + v.size[index]
	switch {
	case start < v.offset || end-start >= v.viewport:
		return v.ScrollTo(start)
	case end > v.offset+v.viewport:
		return v.ScrollTo(end - v.viewport)
	}
	return false
}

// DistanceToEnd is how far the bottom of the viewport is from the end of
// the list.
func (v *Virtualizer) DistanceToEnd() int {
	return max(0, v.TotalSize()-(v.offset+v.viewport))
}

// IndexAt returns the item covering the absolute offset.
func (v *Virtualizer) IndexAt(offset int) (int, bool) {
	if offset < 0 {
		return 0, false
	}
	i := v.sizes.search(offset)
	if i >= len(v.size) {
		return 0, false
	}
	return i, true
}

// Range returns the first and last item intersecting the viewport,
// without overscan.
func (v *Virtualizer) Range() (first, last int, ok bool) {
	if len(v.size) == 0 || v.viewport == 0 || v.TotalSize() == 0 {
		return 0, 0, false
	}
	first = v.sizes.search(v.offset)
	if first >= len(v.size) {
		return 0, 0, false
	}
	last = min(v.sizes.search(v.offset+v.viewport-1), len(v.size)-1)
	return first, last, true
}

// Items returns the items to render: the visible range widened by the
// overscan margin, in index order, with absolute start offsets.
func (v *Virtualizer) Items() []VirtualItem {
	first, last, ok := v.Range()
	if !ok {
		return nil
	}
	first = max(0, first-v.overscan)
	last = min(len(v.size)-1, last+v.overscan)

	items := make([]VirtualItem, 0, last-first+1)
	start := v.sizes.prefix(first)
	for i := first; i <= last; i++ {
		items = append(items, VirtualItem{Index: i, Start: start, Size: v.size[i]})
		start += v.size[i]
	}
	return items
}

// Row pairs a virtual item with its value and a callback reporting the
// rendered size back to the virtualizer.
type Row[T any] struct {
	VirtualItem
	Value   T
	Measure func(size int) bool
}

// Rows resolves Items against values. values must cover every index of
// the virtualizer.
func Rows[T any](v *Virtualizer, values []T) []Row[T] {
	if len(values) < v.Count() {
		panic(fmt.Sprintf("list: %d values for %d virtual items", len(values), v.Count()))
	}
	items := v.Items()
	rows := make([]Row[T], len(items))
	for i, item := range items {
		index := item.Index
		rows[i] = Row[T]{
			VirtualItem: item,
			Value:       values[index],
			Measure: func(size int) bool {
				return v.Measure(index, size)
			},
		}
	}
	return rows
}
