package list

import "math/bits"

// fenwick is a binary indexed tree over non-negative item sizes. It gives
// O(log n) prefix sums, point updates, appends and offset lookups.
type fenwick struct {
	// tree is 1-based; tree[0] is unused.
	tree []int
}

func newFenwick() fenwick {
	return fenwick{tree: []int{0}}
}

func (f *fenwick) len() int {
	return len(f.tree) - 1
}

// push appends an element of size v.
func (f *fenwick) push(v int) {
	i := len(f.tree)
	low := i & -i
	f.tree = append(f.tree, v+f.prefix(i-1)-f.prefix(i-low))
}

// truncate keeps the first n elements. Nodes up to n only cover elements
// up to n, so no rebuild is needed.
func (f *fenwick) truncate(n int) {
	if n < f.len() {
		f.tree = f.tree[:n+1]
	}
}

// add adds delta to the element at index i (0-based).
func (f *fenwick) add(i, delta int) {
	for i++; i < len(f.tree); i += i & -i {
		f.tree[i] += delta
	}
}

// prefix is the sum of the first n elements.
func (f *fenwick) prefix(n int) int {
	s := 0
	for i := n; i > 0; i -= i & -i {
		s += f.tree[i]
	}
	return s
}

// search returns the index of the element covering offset, that is the
// smallest i with prefix(i+1) > offset. It returns len() when offset is at
// or past the total.
func (f *fenwick) search(offset int) int {
	n := f.len()
	if n == 0 || offset < 0 {
		return 0
	}
	pos := 0
	for step := 1 << (bits.Len(uint(n)) - 1); step > 0; step >>= 1 {
		next := pos + step
		if next <= n && f.tree[next] <= offset {
			pos = next
			offset -= f.tree[next]
		}
	}
	return pos
}
