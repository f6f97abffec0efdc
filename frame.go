package glyphbrush

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// maxFramesInFlight is how many frames the brush assumes the GPU may still
// be executing when the caller never reports submissions with Submitted.
const maxFramesInFlight = 3

// span is the part of a ring written by one frame, from start up to end.
// A span that wrapped has end < start.
type span struct {
	start, end int
}

// ring hands out regions of one GPU buffer, in units of stride bytes. A
// region stays reserved until the frame that wrote it has finished on the
// GPU, so draws recorded into the same encoder never share bytes.
type ring struct {
	label  string
	usage  gputypes.BufferUsage
	stride uint64
	min    int

	buf  hal.Buffer
	size int
	gen  int
	head int

	// spans of unfinished frames in the current buffer, oldest first.
	spans []span
}

// fit returns where n units can be written, or false when the unfinished
// spans leave no contiguous room.
func (r *ring) fit(n int) (int, bool) {
	if n > r.size {
		return 0, false
	}
	if len(r.spans) == 0 {
		return 0, true
	}
	tail := r.spans[0].start
	switch {
	case r.head > tail:
		if r.head+n <= r.size {
			return r.head, true
		}
		if n <= tail {
			return 0, true
		}
	case r.head < tail:
		if r.head+n <= tail {
			return r.head, true
		}
	}
	return 0, false
}

// frameSpan records that a frame owns the newest span of generation gen.
type frameSpan struct {
	gen int
	ok  bool
}

// frame is every draw recorded into one command encoder. Objects replaced
// during the frame are retired with it and released once it has finished.
type frame struct {
	encoder    hal.CommandEncoder
	seq        uint64
	submission uint64

	instances frameSpan
	uniforms  frameSpan
	retired   []func()
}

// frames tracks the open frame and the frames the GPU may still be using.
type frames struct {
	queue  hal.Queue
	seq    uint64
	open   *frame
	flight []*frame
}

// begin makes enc's frame the open one and releases finished frames. A
// different encoder than the open frame's closes the open frame first.
func (fs *frames) begin(enc hal.CommandEncoder, release func(*frame)) {
	if fs.open != nil && fs.open.encoder != enc {
		fs.close()
	}
	if fs.open == nil {
		fs.seq++
		fs.open = &frame{encoder: enc, seq: fs.seq}
	}

	completed := fs.queue.PollCompleted()
	for len(fs.flight) > 0 {
		f := fs.flight[0]
		done := f.submission != 0 && f.submission <= completed ||
			f.submission == 0 && f.seq+maxFramesInFlight <= fs.open.seq
		if !done {
			break
		}
		release(f)
		fs.flight[0] = nil
		fs.flight = fs.flight[1:]
	}
}

func (fs *frames) close() {
	fs.flight = append(fs.flight, fs.open)
	fs.open = nil
}

// submitted closes the open frame and tags every untagged frame with index.
func (fs *frames) submitted(index uint64) {
	if fs.open != nil {
		fs.close()
	}
	for _, f := range fs.flight {
		if f.submission == 0 {
			f.submission = index
		}
	}
}

// retire defers fn until the open frame has finished. Without an open
// frame fn runs now.
func (fs *frames) retire(fn func()) {
	if fs.open == nil {
		fn()
		return
	}
	fs.open.retired = append(fs.open.retired, fn)
}

// all returns the in-flight frames followed by the open one.
func (fs *frames) all() []*frame {
	out := fs.flight
	if fs.open != nil {
		out = append(out[:len(out):len(out)], fs.open)
	}
	return out
}

// reserve finds room for n units of r in the open frame, growing r into a
// new buffer when the current one is too full. It returns the first unit.
func (c *drawCache) reserve(r *ring, owner *frameSpan, n int) (int, error) {
	at, ok := r.fit(n)
	if !ok {
		if err := c.growRing(r, n); err != nil {
			return 0, err
		}
		at = 0
	}

	r.head = at + n
	if owner.ok && owner.gen == r.gen {
		r.spans[len(r.spans)-1].end = r.head
	} else {
		r.spans = append(r.spans, span{start: at, end: r.head})
		*owner = frameSpan{gen: r.gen, ok: true}
	}
	return at, nil
}

// growRing replaces r's buffer with one of at least n units: the next power
// of two, and at least double the old size. The old buffer is retired.
func (c *drawCache) growRing(r *ring, n int) error {
	size := max(r.min, 1<<bits.Len(uint(n-1)))
	if size <= r.size {
		size = r.size * 2
	}
	buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: r.label,
		Size:  uint64(size) * r.stride, //nolint:gosec // size is positive
		Usage: r.usage,
	})
	if err != nil {
		return fmt.Errorf("glyphbrush: create %s buffer for %d entries: %w", r.label, size, err)
	}
	if old := r.buf; old != nil {
		c.frames.retire(func() { c.device.DestroyBuffer(old) })
	}
	r.buf = buf
	r.size = size
	r.gen++
	r.head = 0
	r.spans = r.spans[:0]
	Logger().Debug("glyphbrush: buffer grown", "buffer", r.label, "entries", size)
	return nil
}

// releaseFrame frees f's ring spans and destroys what it retired.
func (c *drawCache) releaseFrame(f *frame) {
	for _, rs := range []struct {
		r     *ring
		owner frameSpan
	}{{&c.instances, f.instances}, {&c.uniforms, f.uniforms}} {
		if rs.owner.ok && rs.owner.gen == rs.r.gen && len(rs.r.spans) > 0 {
			rs.r.spans = rs.r.spans[1:]
		}
	}
	for _, fn := range f.retired {
		fn()
	}
	f.retired = nil
}
