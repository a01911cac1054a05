package testing

import (
	"fmt"
	"time"

	"github.com/go-drift/swipeactions/pkg/gestures"
	"github.com/go-drift/swipeactions/pkg/graphics"
)

// dragSteps is the number of move events a simulated drag is split into.
const dragSteps = 5

// holdDuration outlasts the velocity window, so a drag that pauses before
// release ends with zero velocity.
const holdDuration = 120 * time.Millisecond

// Tap simulates a tap at the center of the node with key.
func (t *Tester) Tap(key string) error {
	pos, err := t.centerOf("Tap", key)
	if err != nil {
		return err
	}
	return t.TapAt(pos)
}

// TapAt simulates a tap at the given surface position.
func (t *Tester) TapAt(pos graphics.Offset) error {
	id := t.allocPointerID()
	t.SendPointerDown(pos, id)
	t.SendPointerUp(pos, id)
	t.Pump()
	return nil
}

// Drag simulates a deliberate drag on the node with key: the pointer moves
// by delta, pauses, then lifts with no velocity.
func (t *Tester) Drag(key string, delta graphics.Offset) error {
	start, err := t.centerOf("Drag", key)
	if err != nil {
		return err
	}
	t.DragFrom(start, delta)
	return nil
}

// DragFrom simulates a deliberate drag from start by delta.
func (t *Tester) DragFrom(start, delta graphics.Offset) {
	id := t.allocPointerID()
	end := t.moveBy(id, start, delta)
	t.Advance(holdDuration)
	t.SendPointerMove(end, id)
	t.SendPointerUp(end, id)
	t.Pump()
}

// Fling simulates a quick swipe from start by delta that lifts while still
// moving, so the release carries velocity.
func (t *Tester) Fling(start, delta graphics.Offset) {
	id := t.allocPointerID()
	end := t.moveBy(id, start, delta)
	t.SendPointerUp(end, id)
	t.Pump()
}

func (t *Tester) moveBy(id int64, start, delta graphics.Offset) graphics.Offset {
	t.SendPointerDown(start, id)
	pos := start
	for i := 1; i <= dragSteps; i++ {
		t.Advance(FrameDuration)
		frac := float64(i) / dragSteps
		pos = graphics.Offset{X: start.X + delta.X*frac, Y: start.Y + delta.Y*frac}
		t.SendPointerMove(pos, id)
	}
	return pos
}

// SendPointerDown sends a pointer-down event at pos.
func (t *Tester) SendPointerDown(pos graphics.Offset, pointerID int64) {
	t.pointers[pointerID] = pos
	t.send(gestures.PointerEvent{PointerID: pointerID, Position: pos, Phase: gestures.PointerPhaseDown})
}

// SendPointerMove sends a pointer-move event at pos.
func (t *Tester) SendPointerMove(pos graphics.Offset, pointerID int64) {
	t.send(gestures.PointerEvent{
		PointerID: pointerID,
		Position:  pos,
		Delta:     pos.Sub(t.pointers[pointerID]),
		Phase:     gestures.PointerPhaseMove,
	})
	t.pointers[pointerID] = pos
}

// SendPointerUp sends a pointer-up event at pos.
func (t *Tester) SendPointerUp(pos graphics.Offset, pointerID int64) {
	t.send(gestures.PointerEvent{
		PointerID: pointerID,
		Position:  pos,
		Delta:     pos.Sub(t.pointers[pointerID]),
		Phase:     gestures.PointerPhaseUp,
	})
	delete(t.pointers, pointerID)
}

// SendPointerCancel sends a pointer-cancel event.
func (t *Tester) SendPointerCancel(pointerID int64) {
	pos := t.pointers[pointerID]
	t.send(gestures.PointerEvent{PointerID: pointerID, Position: pos, Phase: gestures.PointerPhaseCancel})
	delete(t.pointers, pointerID)
}

func (t *Tester) send(event gestures.PointerEvent) {
	event.Time = t.clock.Now()
	t.surface.HandlePointer(event)
}

func (t *Tester) allocPointerID() int64 {
	t.nextID++
	return t.nextID
}

func (t *Tester) centerOf(op, key string) (graphics.Offset, error) {
	node := t.Find(key)
	if node == nil {
		return graphics.Offset{}, fmt.Errorf("%s: no node with key %q", op, key)
	}
	pos, ok := t.Center(node)
	if !ok {
		return graphics.Offset{}, fmt.Errorf("%s: node %q not in tree", op, key)
	}
	return pos, nil
}
