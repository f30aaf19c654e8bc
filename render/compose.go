package render

// Compose flattens every queued draw call, in layer order, into dst.
// dst must already be cleared for this frame. base is the terminal
// background color serving as the bottom layer of every blend whose
// accumulated background is still transparent.
func Compose(dst *FrameBuffer, queue *LayeredDrawQueue, base Color) {
	width := dst.width
	height := dst.height
	cells := dst.cells
	opaqueBase := base.Opaque()

	queue.Each(func(call *DrawCall) {
		call.EachCell(func(x, y int, c Cell) {
			if x < 0 || x >= width || y < 0 || y >= height {
				return // clipped
			}
			idx := y*width + x
			cells[idx] = composeCell(cells[idx], c, opaqueBase)
		})
	})
}

// composeCell folds one contribution into an accumulated cell using
// source-over rules. base must be opaque.
func composeCell(old, new Cell, base Color) Cell {
	if new.Attrs&AttrTwoxel != 0 {
		return composeTwoxel(old, new, base)
	}

	newNoFg := new.Attrs&AttrNoFg != 0
	newNoBg := new.Attrs&AttrNoBg != 0

	newFgInvisible := newNoFg || new.Fg.A == 0
	newBgInvisible := newNoBg || new.Bg.A == 0

	// Invisible contribution: nothing to fold (spec: alpha 0 preserves)
	if newFgInvisible && newBgInvisible && !newNoFg && !newNoBg {
		return old
	}

	// --- Glyph ---
	var ch rune
	var format Attr
	switch {
	case newNoFg:
		// Erasing the fg channel also deletes the character
		ch, format = new.Rune, new.Attrs&AttrFormat
	case newFgInvisible:
		ch, format = old.Rune, old.Attrs&AttrFormat
	case new.Attrs&AttrOctad != 0 && old.Attrs&AttrOctad != 0:
		ch, format = mergeOctad(old.Rune, new.Rune), AttrOctad
	case new.Attrs&AttrBlocktad != 0 && old.Attrs&AttrBlocktad != 0:
		ch, format = mergeBlocktad(old.Rune, new.Rune), AttrBlocktad
	default:
		ch, format = new.Rune, new.Attrs&AttrFormat
	}

	// --- Foreground ---
	// A visible new background conceptually covers what was in front:
	// the old fg sinks behind it before the new fg applies.
	fg := old.Fg
	noFg := old.Attrs&AttrNoFg != 0
	if !newBgInvisible {
		fg = BlendSourceOver(fg, new.Bg)
		noFg = false
	}
	switch {
	case newNoFg:
		fg = Color{}
		noFg = true
	case new.Fg.A > 0:
		fg = BlendSourceOver(fg, new.Fg)
		noFg = false
	}

	// --- Background ---
	bg := old.Bg
	noBg := old.Attrs&AttrNoBg != 0
	switch {
	case newNoBg:
		bg = Color{}
		noBg = true
	case new.Bg.A == 0:
		// Keep the accumulated background
	default:
		under := bg
		if noBg || bg.A == 0 {
			under = base
		}
		bg = BlendSourceOver(under, new.Bg)
		noBg = false
	}

	// --- Attributes ---
	attrs := (old.Attrs | new.Attrs) & AttrStyle
	attrs |= format
	if noFg {
		attrs |= AttrNoFg
	}
	if noBg {
		attrs |= AttrNoBg
	}

	return Cell{Rune: ch, Fg: fg, Bg: bg, Attrs: attrs}
}

// composeTwoxel folds a half-block contribution. Two twoxels sharing a
// cell keep independent colors: the opposing pixel moves to the bg
// channel. Same-half twoxels blend in place.
func composeTwoxel(old, new Cell, base Color) Cell {
	oldTwoxel := old.Attrs&AttrTwoxel != 0
	oldNoBg := old.Attrs&AttrNoBg != 0
	styles := (old.Attrs | new.Attrs) & AttrStyle

	under := old.Bg
	if oldNoBg || old.Bg.A == 0 {
		under = base
	}

	if new.Bg.A > 0 {
		// Dual twoxel: top in fg, bottom in bg, composed channel-wise
		// against whichever half the accumulated cell already holds.
		// A lone prior pixel stores its color in fg regardless of
		// which half block it is.
		topUnder, bottomUnder := under, under
		if oldTwoxel {
			if old.Rune == TwoxelUpper {
				topUnder = old.Fg
				if old.Bg.A > 0 {
					bottomUnder = old.Bg
				}
			} else {
				bottomUnder = old.Fg
			}
		}
		return Cell{
			Rune:  TwoxelUpper,
			Fg:    BlendSourceOver(topUnder, new.Fg),
			Bg:    BlendSourceOver(bottomUnder, new.Bg),
			Attrs: styles | AttrTwoxel,
		}
	}

	switch {
	case oldTwoxel && old.Rune == new.Rune:
		// Same half: blend the pixel colors
		return Cell{
			Rune:  old.Rune,
			Fg:    BlendSourceOver(old.Fg, new.Fg),
			Bg:    old.Bg,
			Attrs: old.Attrs | styles,
		}
	case oldTwoxel:
		// Opposing half: the new pixel lands in the bg channel, the
		// old half block and its fg stay
		return Cell{
			Rune:  old.Rune,
			Fg:    old.Fg,
			Bg:    BlendSourceOver(under, new.Fg),
			Attrs: (old.Attrs &^ AttrNoBg) | styles,
		}
	default:
		// Fresh cell: pixel rides the fg channel over whatever
		// background is already there
		return Cell{
			Rune:  new.Rune,
			Fg:    BlendSourceOver(under, new.Fg),
			Bg:    old.Bg,
			Attrs: new.Attrs | styles | (old.Attrs & AttrNoBg),
		}
	}
}
