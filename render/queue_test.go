package render

import (
	"testing"
)

func drainKinds(q *LayeredDrawQueue) []rune {
	var runes []rune
	q.Each(func(c *DrawCall) {
		runes = append(runes, []rune(c.Text)[0])
	})
	return runes
}

func TestQueueOrdering(t *testing.T) {
	q := NewLayeredDrawQueue()
	top := q.CreateLayer(5)
	bottom := q.CreateLayer(0)

	push := func(l LayerIndex, tag string) {
		q.Push(l, TextCall(0, 0, tag, ColorWhite, ColorClear, 0))
	}
	push(top, "c")
	push(bottom, "a")
	push(bottom, "b")
	push(top, "d")

	got := drainKinds(q)
	want := "abcd"
	for i, r := range want {
		if i >= len(got) || got[i] != r {
			t.Fatalf("iteration order: got %q, want %q", string(got), want)
		}
	}
}

func TestQueueStableEqualZ(t *testing.T) {
	q := NewLayeredDrawQueue()
	first := q.CreateLayer(3)
	q.CreateLayer(1)
	second := q.CreateLayer(3)

	q.Push(second, TextCall(0, 0, "late", ColorWhite, ColorClear, 0))
	q.Push(first, TextCall(0, 0, "early", ColorWhite, ColorClear, 0))

	var order []string
	q.Each(func(c *DrawCall) {
		order = append(order, c.Text)
	})

	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("equal-z layers must keep creation order: got %v", order)
	}
}

// The later-created equal-z layer draws on top
func TestQueueEqualZDrawsOnTop(t *testing.T) {
	q := NewLayeredDrawQueue()
	first := q.CreateLayer(2)
	second := q.CreateLayer(2)

	q.Push(second, FillCall(0, 0, 1, 1, ColorRed))
	q.Push(first, FillCall(0, 0, 1, 1, ColorBlue))

	buf := NewFrameBuffer(1, 1)
	Compose(buf, q, testBase)
	got, _ := buf.Get(0, 0)
	if got.Bg != ColorRed {
		t.Errorf("later equal-z layer must win: got %v", got.Bg)
	}
}

func TestQueueClearRetainsCapacity(t *testing.T) {
	q := NewLayeredDrawQueue()
	l := q.CreateLayer(0)
	for i := 0; i < 100; i++ {
		q.Push(l, FillCall(i, 0, 1, 1, ColorRed))
	}
	if q.Len() != 100 {
		t.Fatalf("len: got %d, want 100", q.Len())
	}

	before := cap(q.byHandle[l].calls)
	q.Clear()

	if q.Len() != 0 {
		t.Errorf("len after clear: got %d, want 0", q.Len())
	}
	if got := cap(q.byHandle[l].calls); got != before {
		t.Errorf("clear must retain capacity: got %d, want %d", got, before)
	}
}

func TestQueueHandleStability(t *testing.T) {
	q := NewLayeredDrawQueue()
	a := q.CreateLayer(10)
	q.Push(a, TextCall(0, 0, "a", ColorWhite, ColorClear, 0))

	// Creating a layer below must not disturb existing handles
	b := q.CreateLayer(0)
	q.Push(b, TextCall(0, 0, "b", ColorWhite, ColorClear, 0))
	q.Push(a, TextCall(0, 0, "a2", ColorWhite, ColorClear, 0))

	var order []string
	q.Each(func(c *DrawCall) {
		order = append(order, c.Text)
	})
	want := []string{"b", "a", "a2"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("order after interleaved create: got %v, want %v", order, want)
		}
	}
}
