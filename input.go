package poncho

import "github.com/hajimehoshi/ebiten/v2"

// PointerSnapshot is one raw input sample supplied by the host each frame.
type PointerSnapshot struct {
	X, Y      float64                // cursor in screen space
	Buttons   [mouseButtonCount]bool // pressed state, indexed by MouseButton
	Scroll    float64                // scroll accumulator (not a per-frame delta)
	Modifiers KeyModifiers
}

// Pressed reports whether b is held in this snapshot.
func (p PointerSnapshot) Pressed(b MouseButton) bool {
	return int(b) < len(p.Buttons) && p.Buttons[b]
}

// InputSource produces one PointerSnapshot per frame.
type InputSource interface {
	Poll() PointerSnapshot
}

// --- Ebitengine input ---

// EbitenInput polls the mouse and keyboard through Ebitengine. It keeps a
// running scroll accumulator because ebiten.Wheel reports per-tick deltas.
type EbitenInput struct {
	scroll float64
}

var ebitenButtons = [mouseButtonCount]ebiten.MouseButton{
	MouseButtonLeft:   ebiten.MouseButtonLeft,
	MouseButtonRight:  ebiten.MouseButtonRight,
	MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// Poll samples the current cursor, button, wheel and modifier state.
func (in *EbitenInput) Poll() PointerSnapshot {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	in.scroll += wy

	snap := PointerSnapshot{
		X:         float64(mx),
		Y:         float64(my),
		Scroll:    in.scroll,
		Modifiers: readModifiers(),
	}
	for i, b := range ebitenButtons {
		snap.Buttons[i] = ebiten.IsMouseButtonPressed(b)
	}
	return snap
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// --- Pointer state machine ---

// buttonEdge remembers the target under the pointer at the last press edge
// and the last release edge of one button. A click needs both to be the same
// node.
type buttonEdge struct {
	down *Node
	up   *Node
}

// pointerDispatcher turns raw snapshots and per-frame hit targets into
// semantic events. It owns all state that survives between frames.
type pointerDispatcher struct {
	// Two fixed snapshots swapped every frame; cur indexes the current one.
	frames [2]PointerSnapshot
	cur    int

	target     hitResult
	prevTarget hitResult

	edges [mouseButtonCount]buttonEdge
}

func (d *pointerDispatcher) current() *PointerSnapshot  { return &d.frames[d.cur] }
func (d *pointerDispatcher) previous() *PointerSnapshot { return &d.frames[d.cur^1] }

// sample starts a new frame: the current snapshot becomes the previous one
// and snap becomes current.
func (d *pointerDispatcher) sample(snap PointerSnapshot) {
	d.cur ^= 1
	d.frames[d.cur] = snap
}

// resolve compares this frame's hit and snapshot with the previous frame's
// and emits the resulting events. It must run once per frame, after the walk.
func (d *pointerDispatcher) resolve(hit hitResult, emit func(Event)) {
	d.prevTarget = d.target
	d.target = hit

	cur, prev := d.current(), d.previous()
	target, prevTarget := d.target.node, d.prevTarget.node

	if target != prevTarget {
		// A click needs the same target for the whole press-to-release
		// interval, so any pending pairing is dropped.
		for i := range d.edges {
			d.edges[i] = buttonEdge{}
		}
		if prevTarget != nil {
			emit(d.event(EventPointerLeave, d.prevTarget, target, cur))
		}
		if target != nil {
			emit(d.event(EventPointerEnter, d.target, prevTarget, cur))
		}
		return
	}
	if target == nil {
		return
	}

	for i := range d.edges {
		b := MouseButton(i)
		pressed, wasPressed := cur.Buttons[i], prev.Buttons[i]
		if pressed == wasPressed {
			continue
		}
		edge := &d.edges[i]
		if pressed {
			edge.down = target
			edge.up = nil
			e := d.event(EventPointerDown, d.target, nil, cur)
			e.Button = b
			emit(e)
		} else {
			edge.up = target
			e := d.event(EventPointerUp, d.target, nil, cur)
			e.Button = b
			emit(e)
		}
		if edge.down != nil && edge.down == edge.up {
			edge.down = nil
			edge.up = nil
			e := d.event(EventClick, d.target, nil, cur)
			e.Button = b
			emit(e)
		}
	}

	if delta := cur.Scroll - prev.Scroll; delta != 0 {
		e := d.event(EventWheel, d.target, nil, cur)
		e.WheelDelta = delta
		emit(e)
	}
}

// event builds an event for hit.node with local coordinates computed from the
// matrix the node was hit under.
func (d *pointerDispatcher) event(t EventType, hit hitResult, related *Node, snap *PointerSnapshot) Event {
	lx, ly := transformPoint(invertAffine(hit.matrix), snap.X, snap.Y)
	return Event{
		Type:      t,
		Target:    hit.node,
		Related:   related,
		GlobalX:   snap.X,
		GlobalY:   snap.Y,
		LocalX:    lx,
		LocalY:    ly,
		Modifiers: snap.Modifiers,
	}
}

// Target returns the node currently under the pointer, as resolved by the
// most recent frame, or nil.
func (s *Scene) Target() *Node {
	return s.input.target.node
}

// Pointer returns the most recent pointer snapshot.
func (s *Scene) Pointer() PointerSnapshot {
	return *s.input.current()
}
