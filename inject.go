package poncho

// syntheticPointerEvent represents a single injected pointer change. Each one
// is applied on top of the previous frame's snapshot and consumes one frame.
type syntheticPointerEvent struct {
	x, y    float64
	move    bool
	button  MouseButton
	press   bool
	release bool
	scroll  float64
}

// InjectMove queues a pointer move to the given screen coordinates. Buttons
// keep their current state, so a move between InjectPress and InjectRelease
// is a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, move: true})
}

// InjectPress queues a press of button at the given screen coordinates.
func (s *Scene) InjectPress(x, y float64, button MouseButton) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, move: true,
		button: button, press: true,
	})
}

// InjectRelease queues a release of button at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64, button MouseButton) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, move: true,
		button: button, release: true,
	})
}

// InjectClick queues a move, a left press, and a left release at the same
// screen coordinates. Consumes three frames: the move frame lets the target
// settle, since a press on a frame where the target changes is not paired.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectClickButton(x, y, MouseButtonLeft)
}

// InjectClickButton is InjectClick with an explicit button.
func (s *Scene) InjectClickButton(x, y float64, button MouseButton) {
	s.InjectMove(x, y)
	s.InjectPress(x, y, button)
	s.InjectRelease(x, y, button)
}

// InjectScroll queues a wheel movement of delta at the current pointer
// position.
func (s *Scene) InjectScroll(delta float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{scroll: delta})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY, MouseButtonLeft)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY, MouseButtonLeft)
}

// nextInjected pops one queued event and applies it to the last snapshot.
// Returns false if nothing is queued and real input should be polled.
func (s *Scene) nextInjected() (PointerSnapshot, bool) {
	if len(s.injectQueue) == 0 {
		return PointerSnapshot{}, false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	snap := *s.input.current()
	if evt.move {
		snap.X, snap.Y = evt.x, evt.y
	}
	if int(evt.button) < len(snap.Buttons) {
		switch {
		case evt.press:
			snap.Buttons[evt.button] = true
		case evt.release:
			snap.Buttons[evt.button] = false
		}
	}
	snap.Scroll += evt.scroll
	s.scrollBias += evt.scroll
	return snap, true
}

// pollInput reads the next snapshot, preferring injected events over the
// real input source. Real scroll values are offset by everything injected so
// far so that the accumulator never jumps when switching sources.
func (s *Scene) pollInput() PointerSnapshot {
	if snap, ok := s.nextInjected(); ok {
		return snap
	}
	snap := s.source.Poll()
	snap.Scroll += s.scrollBias
	return snap
}
