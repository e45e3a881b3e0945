package customer

import "testing"

func BenchmarkComputeView(b *testing.B) {
	d := MustDataset(Generate(100_000, 1, testNow))
	cases := []struct {
		name string
		term string
		sort Sort
	}{
		{name: "filter", term: "ali"},
		{name: "sort by name", sort: SortBy(SortName, Ascending)},
		{name: "sort by last message", sort: SortBy(SortLastMessage, Descending)},
		{name: "filter and sort", term: "a", sort: SortBy(SortScore, Descending)},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				ComputeView(d, c.term, c.sort)
			}
		})
	}
}
