package atlas

import "image"

// packer places rectangles in horizontal shelves.
//
// Each shelf is as tall as the tallest rectangle placed on it. Rectangles
// go left to right on the first shelf with room; when none has room a new
// shelf opens below the last one. Feeding rectangles tallest first keeps
// the wasted space small.
type packer struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedArea int
}

// shelf is one horizontal strip of the packer.
type shelf struct {
	y      int // top edge
	height int // tallest item so far
	x      int // next free column
}

func newPacker(width, height, padding int) *packer {
	return &packer{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// clone returns an independent copy, used to plan placements without
// committing to them.
func (p *packer) clone() *packer {
	c := *p
	c.shelves = append(make([]shelf, 0, cap(p.shelves)), p.shelves...)
	return &c
}

// allocate reserves a w by h rectangle and returns it, or false when the
// packer is full.
func (p *packer) allocate(w, h int) (image.Rectangle, bool) {
	pw := w + p.padding
	ph := h + p.padding
	if pw > p.width || ph > p.height {
		return image.Rectangle{}, false
	}

	for i := range p.shelves {
		s := &p.shelves[i]
		if s.x+pw > p.width {
			continue
		}
		if h > s.height {
			// Only the last shelf can grow downwards.
			if i != len(p.shelves)-1 || s.y+ph > p.height {
				continue
			}
			s.height = h
		}
		r := image.Rect(s.x, s.y, s.x+w, s.y+h)
		s.x += pw
		p.usedArea += w * h
		return r, true
	}

	y := 0
	if n := len(p.shelves); n > 0 {
		last := p.shelves[n-1]
		y = last.y + last.height + p.padding
	}
	if y+ph > p.height {
		return image.Rectangle{}, false
	}
	p.shelves = append(p.shelves, shelf{y: y, height: h, x: pw})
	p.usedArea += w * h
	return image.Rect(0, y, w, y+h), true
}

// reset clears all allocations and resizes the packer.
func (p *packer) reset(width, height int) {
	p.width, p.height = width, height
	p.shelves = p.shelves[:0]
	p.usedArea = 0
}

// utilization returns the fraction of the area covered by rectangles.
func (p *packer) utilization() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.width*p.height)
}
