// Package viewport computes the subset of a long list that must be
// materialized for display. Small lists are returned whole; past the
// activation threshold only the visible slice plus overscan is
// returned, tagged with true cumulative offsets so absolutely
// positioned rendering stays correct.
package viewport

// Item is one materialized list entry. Offset is the cumulative
// distance from the top of the full list, not of the returned slice.
type Item struct {
	Index  int
	Offset int
	Height int
}

// Sizer returns the height of the item at the given index.
type Sizer func(index int) int

// Uniform returns a Sizer with the same height for every item.
func Uniform(height int) Sizer {
	return func(int) int { return height }
}

// Params configures a window computation.
type Params struct {
	Count           int
	Sizer           Sizer
	ContainerHeight int
	ScrollOffset    int
	Overscan        int
	// Threshold is the item count below which windowing is skipped
	// and the whole list is returned.
	Threshold int
}

// Compute returns the items to materialize for the current scroll
// position. The returned range always covers every index whose pixel
// span intersects [ScrollOffset, ScrollOffset+ContainerHeight].
func Compute(p Params) []Item {
	if p.Count <= 0 || p.Sizer == nil {
		return nil
	}

	offsets := cumulative(p.Count, p.Sizer)

	if p.Count <= p.Threshold {
		return materialize(offsets, p.Sizer, 0, p.Count-1)
	}

	viewTop := p.ScrollOffset
	viewBottom := p.ScrollOffset + p.ContainerHeight

	// First index whose end offset exceeds the scroll position.
	first := 0
	for first < p.Count-1 && offsets[first]+p.Sizer(first) <= viewTop {
		first++
	}
	first -= p.Overscan
	if first < 0 {
		first = 0
	}

	// Last index whose start offset is above the bottom edge.
	last := first
	for last < p.Count-1 && offsets[last+1] < viewBottom {
		last++
	}
	last += p.Overscan
	if last > p.Count-1 {
		last = p.Count - 1
	}

	return materialize(offsets, p.Sizer, first, last)
}

// TotalHeight returns the full height of the list, used to size the
// scrollable area.
func TotalHeight(count int, sizer Sizer) int {
	total := 0
	for i := 0; i < count; i++ {
		total += sizer(i)
	}
	return total
}

func cumulative(count int, sizer Sizer) []int {
	offsets := make([]int, count)
	running := 0
	for i := 0; i < count; i++ {
		offsets[i] = running
		running += sizer(i)
	}
	return offsets
}

func materialize(offsets []int, sizer Sizer, first, last int) []Item {
	items := make([]Item, 0, last-first+1)
	for i := first; i <= last; i++ {
		items = append(items, Item{Index: i, Offset: offsets[i], Height: sizer(i)})
	}
	return items
}
