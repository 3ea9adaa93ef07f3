// Package carousel holds the index arithmetic behind the sliding widgets:
// clamped and wrapping indexes, "load more" paging and the looping
// community spotlight.
package carousel

// Clamp bounds i to [0, n-1]; it is 0 when n is 0.
func Clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// Index is a position that stops at both ends.
type Index struct {
	Pos int
	N   int
}

func NewIndex(pos, n int) Index {
	return Index{Pos: Clamp(pos, n), N: n}
}

func (x Index) Next() Index { return NewIndex(x.Pos+1, x.N) }
func (x Index) Prev() Index { return NewIndex(x.Pos-1, x.N) }

func (x Index) HasNext() bool { return x.Pos < x.N-1 }
func (x Index) HasPrev() bool { return x.Pos > 0 }

// Cycle is a position that wraps around at both ends.
type Cycle struct {
	Pos int
	N   int
}

func NewCycle(pos, n int) Cycle {
	return Cycle{Pos: wrap(pos, n), N: n}
}

func (c Cycle) Next() Cycle { return NewCycle(c.Pos+1, c.N) }
func (c Cycle) Prev() Cycle { return NewCycle(c.Pos-1, c.N) }

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

const DefaultPageSize = 6

// Pager reveals a growing prefix of a list.
type Pager struct {
	Visible  int
	PageSize int
}

func NewPager(visible int) Pager {
	if visible < DefaultPageSize {
		visible = DefaultPageSize
	}
	return Pager{Visible: visible, PageSize: DefaultPageSize}
}

func (p Pager) LoadMore() Pager {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	p.Visible += size
	return p
}

func (p Pager) CanLoadMore(total int) bool { return p.Visible < total }

// Window returns the [start, end) bounds of the visible part.
func (p Pager) Window(total int) (int, int) {
	return 0, min(max(p.Visible, 0), total)
}

// Page slices items to the pager window.
func Page[T any](p Pager, items []T) []T {
	_, end := p.Window(len(items))
	return items[:end]
}
