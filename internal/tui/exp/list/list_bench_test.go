package list

import (
	"fmt"
	"testing"
)

// BenchmarkVirtualizerItems benchmarks computing the rendered range at
// different list sizes. The cost should not depend on the list size.
func BenchmarkVirtualizerItems(b *testing.B) {
	sizes := []int{100, 1000, 10000, 100000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			v := NewVirtualizer()
			v.SetCount(size)
			v.SetViewport(30)
			v.ScrollTo(v.MaxOffset() / 2)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = v.Items()
			}
		})
	}
}

// BenchmarkVirtualizerScroll benchmarks scrolling through the list.
func BenchmarkVirtualizerScroll(b *testing.B) {
	sizes := []int{100, 1000, 10000, 100000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			v := NewVirtualizer()
			v.SetCount(size)
			v.SetViewport(30)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				v.ScrollBy(10)
				v.ScrollBy(-10)
				_ = v.DistanceToEnd()
			}
		})
	}
}

// BenchmarkVirtualizerMeasure benchmarks measurements that shift offsets.
func BenchmarkVirtualizerMeasure(b *testing.B) {
	v := NewVirtualizer()
	v.SetCount(10000)
	v.SetViewport(30)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.Measure(i%10000, 1+i%3)
	}
}

// BenchmarkWindowGrowth benchmarks loading a long list page by page.
func BenchmarkWindowGrowth(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := NewWindow(DefaultPageSize, DefaultLoadThreshold)
		v := NewVirtualizer()
		v.SetViewport(30)
		w.Sync(uint64(i), 10000)
		v.SetCount(w.Loaded())
		for !w.Done(10000) {
			v.ScrollTo(v.MaxOffset())
			if w.MaybeGrow(v.DistanceToEnd(), 10000) {
				v.SetCount(w.Loaded())
			}
		}
	}
}
