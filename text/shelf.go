package text

import "image"

// shelfAllocator packs glyph cells into horizontal shelves stacked from the
// bottom of the page upward, in the same bottom-up texel space the loop
// kernel reads atlas rectangles in.
//
// A cell goes on the lowest shelf that wastes the least height. Only the
// topmost shelf may grow taller; a new shelf opens above it when nothing
// else fits.
type shelfAllocator struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedArea int
}

// shelf is a horizontal strip of the page.
type shelf struct {
	y      int // bottom edge
	height int // tallest cell so far
	x      int // next free column
}

func newShelfAllocator(width, height, padding int) shelfAllocator {
	return shelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate reserves a w x h cell and returns it in bottom-up texel
// coordinates. It reports false when the page has no room left.
func (a *shelfAllocator) allocate(w, h int) (image.Rectangle, bool) {
	paddedW := w + a.padding
	if paddedW > a.width {
		return image.Rectangle{}, false
	}

	best := -1
	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+paddedW > a.width || !a.fits(i, h) {
			continue
		}
		if best < 0 || waste(s, h) < waste(&a.shelves[best], h) {
			best = i
		}
	}
	if best >= 0 {
		return a.place(&a.shelves[best], w, h), true
	}

	y := a.top()
	if y+h+a.padding > a.height {
		return image.Rectangle{}, false
	}
	a.shelves = append(a.shelves, shelf{y: y, height: h})
	return a.place(&a.shelves[len(a.shelves)-1], w, h), true
}

// fits reports whether shelf i can hold a cell of height h.
func (a *shelfAllocator) fits(i, h int) bool {
	s := &a.shelves[i]
	if h <= s.height {
		return true
	}
	return i == len(a.shelves)-1 && s.y+h+a.padding <= a.height
}

// waste is the height difference between a cell and shelf s. Growing the
// top shelf counts its growth.
func waste(s *shelf, h int) int {
	if h > s.height {
		return h - s.height
	}
	return s.height - h
}

// place puts a w x h cell at the shelf's free column.
func (a *shelfAllocator) place(s *shelf, w, h int) image.Rectangle {
	s.height = max(s.height, h)
	r := image.Rect(s.x, s.y, s.x+w, s.y+h)
	s.x += w + a.padding
	a.usedArea += w * h
	return r
}

// top returns the first free row above the topmost shelf.
func (a *shelfAllocator) top() int {
	if len(a.shelves) == 0 {
		return 0
	}
	last := a.shelves[len(a.shelves)-1]
	return last.y + last.height + a.padding
}

// reset clears all allocations, keeping the shelf slice capacity.
func (a *shelfAllocator) reset() {
	a.shelves = a.shelves[:0]
	a.usedArea = 0
}

// utilization returns the fraction of page area in use.
func (a *shelfAllocator) utilization() float64 {
	total := a.width * a.height
	if total == 0 {
		return 0
	}
	return float64(a.usedArea) / float64(total)
}
