package ecs

import (
	"github.com/phanxgames/poncho"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType receives every poncho interaction event.
var InteractionEventType = events.NewEventType[poncho.InteractionEvent]()

// kindEventTypes holds one event type per pointer event kind.
var kindEventTypes = map[poncho.EventType]*events.EventType[poncho.InteractionEvent]{
	poncho.EventPointerDown:  events.NewEventType[poncho.InteractionEvent](),
	poncho.EventPointerUp:    events.NewEventType[poncho.InteractionEvent](),
	poncho.EventClick:        events.NewEventType[poncho.InteractionEvent](),
	poncho.EventPointerEnter: events.NewEventType[poncho.InteractionEvent](),
	poncho.EventPointerLeave: events.NewEventType[poncho.InteractionEvent](),
	poncho.EventWheel:        events.NewEventType[poncho.InteractionEvent](),
}

// EventTypeOf returns the Donburi event type that receives only events of
// kind t, or nil for an unknown kind.
func EventTypeOf(t poncho.EventType) *events.EventType[poncho.InteractionEvent] {
	return kindEventTypes[t]
}

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world. Each
// event is published to InteractionEventType and to its per-kind type;
// consume them with Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) poncho.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event poncho.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
	if et := kindEventTypes[event.Type]; et != nil {
		et.Publish(s.world, event)
	}
}
