package list

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVirtualizer(count, viewport int, opts ...VirtualizerOption) *Virtualizer {
	v := NewVirtualizer(append([]VirtualizerOption{WithEstimatedSize(2), WithOverscan(0)}, opts...)...)
	v.SetCount(count)
	v.SetViewport(viewport)
	return v
}

func indices(items []VirtualItem) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.Index
	}
	return out
}

func TestViewPosition(t *testing.T) {
	t.Parallel()

	t.Run("top of the list", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10, 5)
		assert.Equal(t, 20, v.TotalSize())
		assert.Equal(t, 15, v.MaxOffset())
		assert.Equal(t, []VirtualItem{
			{Index: 0, Start: 0, Size: 2},
			{Index: 1, Start: 2, Size: 2},
			{Index: 2, Start: 4, Size: 2},
		}, v.Items())
	})

	t.Run("middle of the list", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10, 5)
		assert.True(t, v.ScrollTo(3))
		first, last, ok := v.Range()
		require.True(t, ok)
		assert.Equal(t, 1, first)
		assert.Equal(t, 3, last)
	})

	t.Run("past the maximum offset is clamped", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10, 5)
		v.ScrollTo(100)
		assert.Equal(t, 15, v.Offset())
		assert.Equal(t, []int{7, 8, 9}, indices(v.Items()))

		assert.False(t, v.ScrollBy(1))
		v.ScrollTo(-4)
		assert.Equal(t, 0, v.Offset())
	})

	t.Run("content smaller than viewport", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(2, 10)
		assert.Equal(t, 0, v.MaxOffset())
		assert.False(t, v.ScrollTo(3))
		assert.Equal(t, []int{0, 1}, indices(v.Items()))
		assert.Equal(t, 0, v.DistanceToEnd())
	})

	t.Run("overscan widens the range by index", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10, 5, WithOverscan(2))
		v.ScrollTo(8)
		first, last, ok := v.Range()
		require.True(t, ok)
		assert.Equal(t, 4, first)
		assert.Equal(t, 6, last)
		items := v.Items()
		assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8}, indices(items))
		assert.Equal(t, 4, items[0].Start)
	})

	t.Run("overscan stops at the edges", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(4, 5, WithOverscan(10))
		assert.Equal(t, []int{0, 1, 2, 3}, indices(v.Items()))
	})
}

func TestEmptyViewport(t *testing.T) {
	t.Parallel()

	t.Run("no items", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(0, 5)
		assert.Empty(t, v.Items())
		assert.Equal(t, 0, v.TotalSize())
		assert.Equal(t, 0, v.Offset())
		_, _, ok := v.Range()
		assert.False(t, ok)
	})

	t.Run("no viewport", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10, 0)
		assert.Empty(t, v.Items())
	})

	t.Run("all items sized zero", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(3, 5, WithEstimatedSize(0))
		assert.Empty(t, v.Items())
	})
}

func TestShrinkClampsOffset(t *testing.T) {
	t.Parallel()

	v := newTestVirtualizer(10, 5)
	v.ScrollTo(15)
	v.SetCount(3)
	assert.Equal(t, 6, v.TotalSize())
	assert.Equal(t, 1, v.Offset())
	assert.Equal(t, []int{0, 1, 2}, indices(v.Items()))

	v.SetCount(0)
	assert.Equal(t, 0, v.Offset())
	assert.Empty(t, v.Items())

	v = newTestVirtualizer(10, 5)
	v.ScrollTo(15)
	v.SetViewport(18)
	assert.Equal(t, 2, v.Offset())
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	t.Run("measurement shifts later offsets", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10, 5)
		assert.False(t, v.IsMeasured(0))
		assert.True(t, v.Measure(0, 5))
		assert.True(t, v.IsMeasured(0))
		assert.Equal(t, 23, v.TotalSize())
		assert.Equal(t, 5, v.StartOf(1))
		assert.Equal(t, 21, v.StartOf(9))
		assert.Equal(t, []int{0}, indices(v.Items()))
	})

	t.Run("same size is not a change", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10, 5)
		assert.False(t, v.Measure(3, 2))
		assert.True(t, v.IsMeasured(3))
	})

	t.Run("measurement survives growth", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(3, 5)
		v.Measure(2, 7)
		v.SetCount(30)
		assert.Equal(t, 7, v.SizeOf(2))
		assert.Equal(t, 2, v.SizeOf(29))
		assert.Equal(t, 2+2+7+27*2, v.TotalSize())
	})

	t.Run("dropped items forget their measurement", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(3, 5)
		v.Measure(2, 7)
		v.SetCount(2)
		v.SetCount(3)
		assert.False(t, v.IsMeasured(2))
		assert.Equal(t, 2, v.SizeOf(2))
	})

	t.Run("invalid measurements", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(3, 5)
		assert.False(t, v.Measure(-1, 4))
		assert.False(t, v.Measure(3, 4))
		assert.True(t, v.Measure(1, -4))
		assert.Equal(t, 0, v.SizeOf(1))
		assert.Equal(t, 4, v.TotalSize())
	})

	t.Run("shrinking content clamps the offset", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(4, 2)
		v.ScrollTo(6)
		v.Measure(3, 0)
		assert.Equal(t, 4, v.Offset())
	})
}

func TestPerIndexEstimate(t *testing.T) {
	t.Parallel()

	v := NewVirtualizer(WithEstimate(func(i int) int { return i % 3 }), WithOverscan(0))
	v.SetCount(6)
	assert.Equal(t, 0+1+2+0+1+2, v.TotalSize())
	assert.Equal(t, 3, v.StartOf(3))

	i, ok := v.IndexAt(3)
	require.True(t, ok)
	assert.Equal(t, 4, i, "zero sized items cover no offset")

	_, ok = v.IndexAt(6)
	assert.False(t, ok)
	_, ok = v.IndexAt(-1)
	assert.False(t, ok)
}

func TestScrollToIndex(t *testing.T) {
	t.Parallel()

	v := newTestVirtualizer(10, 5)
	assert.False(t, v.ScrollToIndex(1), "already visible")
	assert.True(t, v.ScrollToIndex(5))
	assert.Equal(t, 7, v.Offset())
	assert.True(t, v.ScrollToIndex(1))
	assert.Equal(t, 2, v.Offset())
	assert.False(t, v.ScrollToIndex(10))

	v.Measure(6, 9)
	assert.True(t, v.ScrollToIndex(6))
	assert.Equal(t, v.StartOf(6), v.Offset(), "tall items align to their start")
}

func TestDistanceToEnd(t *testing.T) {
	t.Parallel()

	v := newTestVirtualizer(10, 5)
	assert.Equal(t, 15, v.DistanceToEnd())
	v.ScrollBy(ViewportDefaultScrollSize)
	assert.Equal(t, 13, v.DistanceToEnd())
	v.ScrollTo(v.MaxOffset())
	assert.Equal(t, 0, v.DistanceToEnd())
}

func TestItemsCoverViewport(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(7, 11))
	for range 200 {
		count := r.IntN(60)
		viewport := 1 + r.IntN(20)
		v := NewVirtualizer(WithEstimate(func(int) int { return 1 + r.IntN(5) }), WithOverscan(0))
		v.SetCount(count)
		v.SetViewport(viewport)
		for i := range count {
			if r.IntN(2) == 0 {
				v.Measure(i, 1+r.IntN(5))
			}
		}
		v.ScrollTo(r.IntN(v.TotalSize() + 10))

		items := v.Items()
		if count == 0 {
			assert.Empty(t, items)
			continue
		}
		require.NotEmpty(t, items)
		assert.LessOrEqual(t, v.Offset(), v.MaxOffset())
		assert.LessOrEqual(t, items[0].Start, v.Offset())
		assert.GreaterOrEqual(t, items[len(items)-1].End(), min(v.Offset()+viewport, v.TotalSize()))
		for i, item := range items {
			assert.Equal(t, v.StartOf(item.Index), item.Start)
			assert.Less(t, item.Start, v.Offset()+viewport)
			assert.Greater(t, item.End(), v.Offset())
			if i > 0 {
				assert.Equal(t, items[i-1].Index+1, item.Index)
				assert.Equal(t, items[i-1].End(), item.Start)
			}
		}
	}
}

func TestRows(t *testing.T) {
	t.Parallel()

	v := newTestVirtualizer(4, 3)
	values := []string{"a", "b", "c", "d"}
	rows := Rows(v, values)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Value)
	assert.Equal(t, "b", rows[1].Value)

	assert.True(t, rows[1].Measure(4))
	assert.Equal(t, 4, v.SizeOf(1))
	assert.Panics(t, func() { Rows(v, values[:2]) })
}

func TestFenwick(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	f := newFenwick()
	var naive []int
	check := func() {
		t.Helper()
		require.Equal(t, len(naive), f.len())
		sum := 0
		for i := 0; i <= len(naive); i++ {
			require.Equal(t, sum, f.prefix(i))
			if i < len(naive) {
				sum += naive[i]
			}
		}
		for off := 0; off <= sum; off++ {
			want, acc := len(naive), 0
			for i, s := range naive {
				acc += s
				if acc > off {
					want = i
					break
				}
			}
			require.Equal(t, want, f.search(off), "offset %d", off)
		}
	}

	for range 40 {
		v := r.IntN(4)
		naive = append(naive, v)
		f.push(v)
	}
	check()

	for range 40 {
		i, d := r.IntN(len(naive)), r.IntN(7)-3
		if naive[i]+d < 0 {
			d = -naive[i]
		}
		naive[i] += d
		f.add(i, d)
	}
	check()

	naive = naive[:13]
	f.truncate(13)
	check()
	for range 20 {
		v := r.IntN(4)
		naive = append(naive, v)
		f.push(v)
	}
	check()
}
