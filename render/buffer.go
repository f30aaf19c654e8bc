package render

// FrameBuffer is a dense width×height grid of composited cells in
// row-major order. The backing array is reallocated only when a resize
// exceeds its capacity.
type FrameBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewFrameBuffer creates a buffer with every cell set to CellEmpty
func NewFrameBuffer(width, height int) *FrameBuffer {
	b := &FrameBuffer{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	b.Reset(CellEmpty)
	return b
}

// Width returns the buffer width
func (b *FrameBuffer) Width() int { return b.width }

// Height returns the buffer height
func (b *FrameBuffer) Height() int { return b.height }

// Cells exposes the backing array for zero-copy row-major scans
func (b *FrameBuffer) Cells() []Cell { return b.cells }

// Resize adjusts buffer dimensions, reallocating only if capacity is
// insufficient, then clears to def
func (b *FrameBuffer) Resize(width, height int, def Cell) {
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Reset(def)
}

// Reset fills every cell with def using exponential copy
func (b *FrameBuffer) Reset(def Cell) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = def
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// InBounds reports whether (x, y) lies inside the grid
func (b *FrameBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y); ok is false outside the grid
func (b *FrameBuffer) Get(x, y int) (Cell, bool) {
	if !b.InBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Set writes the cell at (x, y). Writes outside the grid are clipped.
func (b *FrameBuffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
}

// FramePair owns the current and previous frame buffers and the
// diff between them. Buffers swap by pointer at frame end.
type FramePair struct {
	current  *FrameBuffer
	previous *FrameBuffer
	fullDiff bool
}

// NewFramePair creates a pair of cleared buffers. The first presented
// frame diffs in full against the untouched previous buffer.
func NewFramePair(width, height int) *FramePair {
	return &FramePair{
		current:  NewFrameBuffer(width, height),
		previous: NewFrameBuffer(width, height),
		fullDiff: true,
	}
}

// Current returns the buffer being composed this frame
func (p *FramePair) Current() *FrameBuffer { return p.current }

// Previous returns the last presented buffer
func (p *FramePair) Previous() *FrameBuffer { return p.previous }

// Resize invalidates the previous frame; the next diff emits every
// cell exactly once
func (p *FramePair) Resize(width, height int) {
	p.current.Resize(width, height, CellEmpty)
	p.previous.Resize(width, height, CellEmpty)
	p.fullDiff = true
}

// Diff streams every (x, y, cell) where current differs from previous,
// row-major by (y, x). After a resize every cell is emitted. No heap
// allocation.
func (p *FramePair) Diff(emit func(x, y int, c Cell)) {
	cur := p.current.cells
	prev := p.previous.cells
	width := p.current.width

	x, y := 0, 0
	if p.fullDiff {
		for i := range cur {
			emit(x, y, cur[i])
			x++
			if x == width {
				x, y = 0, y+1
			}
		}
		return
	}

	for i := range cur {
		if cur[i] != prev[i] {
			emit(x, y, cur[i])
		}
		x++
		if x == width {
			x, y = 0, y+1
		}
	}
}

// Present marks the current frame as delivered: buffers swap and the
// next frame composes into the old previous buffer. Not called when
// the backend write fails, so undelivered changes stay diff-pending.
func (p *FramePair) Present() {
	p.current, p.previous = p.previous, p.current
	p.fullDiff = false
}
