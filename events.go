package poncho

// Event is a semantic pointer event delivered to a single target node.
type Event struct {
	Type   EventType
	Target *Node
	// Related is the other side of a target change: the new target for
	// EventPointerLeave, the previous target for EventPointerEnter. May be nil.
	Related *Node
	Button  MouseButton // valid for EventPointerDown, EventPointerUp, EventClick

	GlobalX, GlobalY float64 // pointer in screen space
	LocalX, LocalY   float64 // pointer in the target's local space

	WheelDelta float64 // signed scroll delta, valid for EventWheel
	Modifiers  KeyModifiers
}

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, events for nodes with a non-zero EntityID are
// forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries event data for the ECS bridge. It holds only
// values, so it can outlive the frame that produced it.
type InteractionEvent struct {
	Type       EventType
	EntityID   uint32
	Button     MouseButton
	GlobalX    float64
	GlobalY    float64
	LocalX     float64
	LocalY     float64
	WheelDelta float64
	Modifiers  KeyModifiers
}

// --- Event bus ---

type listener struct {
	id uint32
	fn func(Event)
}

// listenerKey routes listeners by node identity and event type. Node ID 0 is
// used for scene-wide listeners.
type listenerKey struct {
	node  uint32
	event EventType
}

// EventBus delivers events to listeners keyed by node identity. Nodes do not
// hold listener lists themselves. Listeners on disposed nodes are dropped the
// next time a listener is registered or an event is emitted at the node.
type EventBus struct {
	listeners map[listenerKey][]listener
	nodes     map[uint32]*Node // nodes with at least one registered listener
	nextID    uint32
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id  uint32
	key listenerKey
	bus *EventBus
}

// On registers fn for events of type t targeted at node.
func (b *EventBus) On(node *Node, t EventType, fn func(Event)) ListenerHandle {
	if node == nil {
		panic("poncho: cannot listen on nil node")
	}
	h := b.add(listenerKey{node: node.ID, event: t}, fn)
	if b.nodes == nil {
		b.nodes = make(map[uint32]*Node)
	}
	b.nodes[node.ID] = node
	return h
}

// OnAny registers fn for events of type t on every node. Scene-wide listeners
// run before node listeners.
func (b *EventBus) OnAny(t EventType, fn func(Event)) ListenerHandle {
	return b.add(listenerKey{event: t}, fn)
}

func (b *EventBus) add(key listenerKey, fn func(Event)) ListenerHandle {
	if fn == nil {
		panic("poncho: nil listener")
	}
	if b.listeners == nil {
		b.listeners = make(map[listenerKey][]listener)
	}
	b.pruneDisposed()
	b.nextID++
	b.listeners[key] = append(b.listeners[key], listener{id: b.nextID, fn: fn})
	return ListenerHandle{id: b.nextID, key: key, bus: b}
}

// Remove unregisters this listener so it no longer fires.
func (h ListenerHandle) Remove() {
	if h.bus == nil {
		return
	}
	s := h.bus.listeners[h.key]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			s = s[:len(s)-1]
			break
		}
	}
	if len(s) == 0 {
		delete(h.bus.listeners, h.key)
		return
	}
	h.bus.listeners[h.key] = s
}

// RemoveNode drops every listener registered on node.
func (b *EventBus) RemoveNode(node *Node) {
	if node == nil || node.ID == 0 {
		return
	}
	for key := range b.listeners {
		if key.node == node.ID {
			delete(b.listeners, key)
		}
	}
	delete(b.nodes, node.ID)
}

// pruneDisposed drops the listeners of every disposed node.
func (b *EventBus) pruneDisposed() {
	for _, n := range b.nodes {
		if n.disposed {
			b.RemoveNode(n)
		}
	}
}

// HasListeners reports whether any listener for t is registered on node.
func (b *EventBus) HasListeners(node *Node, t EventType) bool {
	return len(b.listeners[listenerKey{node: node.ID, event: t}]) > 0
}

// dispatch delivers e to scene-wide listeners, then to the target's listeners.
// Listener slices are iterated by index against a snapshot so that listeners
// may register or remove handlers while the event is delivered.
func (b *EventBus) dispatch(e Event) {
	if len(b.listeners) == 0 {
		return
	}
	for _, l := range append([]listener(nil), b.listeners[listenerKey{event: e.Type}]...) {
		l.fn(e)
	}
	if e.Target == nil || e.Target.ID == 0 {
		return
	}
	for _, l := range append([]listener(nil), b.listeners[listenerKey{node: e.Target.ID, event: e.Type}]...) {
		l.fn(e)
	}
}

// --- Scene-level registration ---

// Events returns the scene's event bus.
func (s *Scene) Events() *EventBus {
	return &s.bus
}

// On is shorthand for s.Events().On.
func (s *Scene) On(node *Node, t EventType, fn func(Event)) ListenerHandle {
	return s.bus.On(node, t, fn)
}

// FrameEvents returns the events dispatched during the most recent frame, in
// dispatch order. Hosts that prefer polling to callbacks read this after each
// Draw. The returned slice is reused by the next frame and MUST NOT be
// retained.
func (s *Scene) FrameEvents() []Event {
	return s.frameEvents
}

// emit records and delivers one event.
func (s *Scene) emit(e Event) {
	if e.Target != nil && e.Target.disposed {
		s.bus.RemoveNode(e.Target)
		return
	}
	s.frameEvents = append(s.frameEvents, e)
	s.bus.dispatch(e)
	s.emitInteractionEvent(e)
}

// emitInteractionEvent forwards e to the ECS bridge when the target carries
// an entity ID.
func (s *Scene) emitInteractionEvent(e Event) {
	if s.store == nil || e.Target == nil || e.Target.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:       e.Type,
		EntityID:   e.Target.EntityID,
		Button:     e.Button,
		GlobalX:    e.GlobalX,
		GlobalY:    e.GlobalY,
		LocalX:     e.LocalX,
		LocalY:     e.LocalY,
		WheelDelta: e.WheelDelta,
		Modifiers:  e.Modifiers,
	})
}
