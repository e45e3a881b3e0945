package customer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)

func names(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func ids(records []Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestComputeViewFilter(t *testing.T) {
	t.Parallel()

	t.Run("search alice keeps matches in dataset order", func(t *testing.T) {
		t.Parallel()
		d := MustDataset([]Record{
			{ID: 1, Name: "Alice Kumar", Email: "ak@example.com", Phone: "+91 1111"},
			{ID: 2, Name: "Bob Singh", Email: "bs@example.com", Phone: "+91 2222"},
			{ID: 3, Name: "Alice Raj", Email: "ar@example.com", Phone: "+91 3333"},
		})
		got := ComputeView(d, "alice", Sort{})
		assert.Equal(t, []string{"Alice Kumar", "Alice Raj"}, names(got))
	})

	t.Run("matches email and phone text case-insensitively", func(t *testing.T) {
		t.Parallel()
		d := MustDataset([]Record{
			{ID: 1, Name: "One", Email: "First@Example.com", Phone: "+91 555"},
			{ID: 2, Name: "Two", Email: "second@example.com", Phone: "+1 999"},
			{ID: 3, Name: "Three", Email: "third@example.com", Phone: "ext. 42"},
		})
		assert.Equal(t, []int{1}, ids(ComputeView(d, "FIRST@", Sort{})))
		assert.Equal(t, []int{2}, ids(ComputeView(d, "+1 9", Sort{})))
		assert.Equal(t, []int{3}, ids(ComputeView(d, "EXT", Sort{})))
	})

	t.Run("does not match non-text fields", func(t *testing.T) {
		t.Parallel()
		d := MustDataset([]Record{
			{ID: 1, Name: "Score Holder", Email: "x@example.com", Phone: "0", Score: 77, AddedBy: "Import"},
		})
		assert.Empty(t, ComputeView(d, "77", Sort{}))
		assert.Empty(t, ComputeView(d, "import", Sort{}))
	})

	t.Run("empty term keeps everything", func(t *testing.T) {
		t.Parallel()
		d := MustDataset(Generate(50, 1, testNow))
		assert.Equal(t, ids(d.records), ids(ComputeView(d, "", Sort{})))
	})

	t.Run("empty dataset yields empty view", func(t *testing.T) {
		t.Parallel()
		d := MustDataset(nil)
		assert.Empty(t, ComputeView(d, "anything", SortBy(SortName, Ascending)))
	})

	t.Run("sound and complete over generated data", func(t *testing.T) {
		t.Parallel()
		d := MustDataset(Generate(500, 7, testNow))
		for _, term := range []string{"a", "AL", "kumar", "+91 9", "example", "zz", "@", "1"} {
			got := ComputeView(d, term, Sort{})
			kept := make(map[int]bool, len(got))
			q := strings.ToLower(term)
			for _, r := range got {
				kept[r.ID] = true
				assert.True(t,
					strings.Contains(strings.ToLower(r.Name), q) ||
						strings.Contains(strings.ToLower(r.Email), q) ||
						strings.Contains(strings.ToLower(r.Phone), q),
					"record %d should match %q", r.ID, term)
			}
			for _, r := range d.records {
				if !kept[r.ID] {
					assert.False(t, Matches(r, term), "record %d should not match %q", r.ID, term)
				}
			}
		}
	})
}

func TestComputeViewSort(t *testing.T) {
	t.Parallel()

	base := []Record{
		{ID: 1, Name: "carol", Email: "c@x.io", Phone: "3", Score: 50, LastMessageAt: testNow.Add(-3 * time.Hour), AddedBy: "Import"},
		{ID: 2, Name: "Alice", Email: "a@x.io", Phone: "1", Score: 90, LastMessageAt: testNow.Add(-1 * time.Hour), AddedBy: "import"},
		{ID: 3, Name: "bob", Email: "b@x.io", Phone: "2", Score: 50, LastMessageAt: testNow.Add(-2 * time.Hour), AddedBy: "Sales"},
		{ID: 4, Name: "alice", Email: "d@x.io", Phone: "4", Score: 10, LastMessageAt: testNow.Add(-1 * time.Hour), AddedBy: "Bot"},
	}
	d := MustDataset(base)

	tests := []struct {
		name string
		sort Sort
		want []int
	}{
		{"unsorted keeps dataset order", Sort{}, []int{1, 2, 3, 4}},
		{"name ascending ignores case and keeps ties stable", SortBy(SortName, Ascending), []int{2, 4, 3, 1}},
		{"name descending keeps ties stable", SortBy(SortName, Descending), []int{1, 3, 2, 4}},
		{"score ascending", SortBy(SortScore, Ascending), []int{4, 1, 3, 2}},
		{"score descending keeps ties stable", SortBy(SortScore, Descending), []int{2, 1, 3, 4}},
		{"last message by instant", SortBy(SortLastMessage, Ascending), []int{1, 3, 2, 4}},
		{"added by ignores case", SortBy(SortAddedBy, Ascending), []int{4, 1, 2, 3}},
		{"email descending", SortBy(SortEmail, Descending), []int{4, 1, 3, 2}},
		{"phone ascending", SortBy(SortPhone, Ascending), []int{2, 3, 1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(ComputeView(d, "", tt.sort)))
		})
	}

	t.Run("every field yields a total order over generated data", func(t *testing.T) {
		t.Parallel()
		gen := MustDataset(Generate(300, 3, testNow))
		for _, field := range SortFields {
			for _, dir := range []Direction{Ascending, Descending} {
				got := ComputeView(gen, "", SortBy(field, dir))
				require.Len(t, got, gen.Len())
				pos := make(map[int]int, gen.Len())
				for i, r := range gen.records {
					pos[r.ID] = i
				}
				for i := 1; i < len(got); i++ {
					c := compareKeys(keyOf(got[i-1], field), keyOf(got[i], field))
					if dir == Descending {
						c = -c
					}
					require.LessOrEqual(t, c, 0, "%s %s out of order at %d", field, dir, i)
					if c == 0 {
						require.Less(t, pos[got[i-1].ID], pos[got[i].ID], "%s %s tie not stable at %d", field, dir, i)
					}
				}
			}
		}
	})

	t.Run("sort does not mutate the dataset", func(t *testing.T) {
		t.Parallel()
		_ = ComputeView(d, "", SortBy(SortScore, Descending))
		assert.Equal(t, []int{1, 2, 3, 4}, ids(d.records))
	})
}

func TestKeyOfPanicsOnUnknownField(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { keyOf(Record{}, SortField(99)) })
	assert.Panics(t, func() { keyOf(Record{}, SortNone) })
}

func TestEngineMemoizes(t *testing.T) {
	t.Parallel()
	d := MustDataset(Generate(100, 2, testNow))
	e := NewEngine(d)

	first := e.View("", Sort{})
	again := e.View("", Sort{})
	assert.Equal(t, 1, e.Computations())
	assert.Equal(t, first.Generation, again.Generation)

	filtered := e.View("a", Sort{})
	assert.Equal(t, 2, e.Computations())
	assert.NotEqual(t, first.Generation, filtered.Generation)

	sorted := e.View("a", SortBy(SortScore, Ascending))
	assert.Equal(t, 3, e.Computations())
	assert.Equal(t, filtered.Len(), sorted.Len())
	assert.NotEqual(t, filtered.Generation, sorted.Generation)

	// Returning to earlier inputs is a new computation; only the latest
	// result is cached.
	back := e.View("a", Sort{})
	assert.Equal(t, 4, e.Computations())
	assert.Equal(t, ids(filtered.Records), ids(back.Records))
}
