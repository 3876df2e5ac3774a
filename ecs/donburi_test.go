package ecs

import (
	"testing"

	"github.com/phanxgames/poncho"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []poncho.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e poncho.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(poncho.InteractionEvent{
		Type:     poncho.EventPointerDown,
		EntityID: 42,
		GlobalX:  100,
		GlobalY:  200,
		Button:   poncho.MouseButtonLeft,
	})
	store.EmitEvent(poncho.InteractionEvent{
		Type:       poncho.EventWheel,
		EntityID:   7,
		WheelDelta: -1,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != poncho.EventPointerDown || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.GlobalX != 100 || e0.GlobalY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.GlobalX, e0.GlobalY)
	}
	e1 := received[1]
	if e1.Type != poncho.EventWheel || e1.WheelDelta != -1 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_PerKindEventType(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var clicks, all int
	EventTypeOf(poncho.EventClick).Subscribe(world, func(w donburi.World, e poncho.InteractionEvent) {
		clicks++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e poncho.InteractionEvent) {
		all++
	})

	store.EmitEvent(poncho.InteractionEvent{Type: poncho.EventPointerEnter, EntityID: 1})
	store.EmitEvent(poncho.InteractionEvent{Type: poncho.EventClick, EntityID: 1})
	store.EmitEvent(poncho.InteractionEvent{Type: poncho.EventPointerLeave, EntityID: 1})
	events.ProcessAllEvents(world)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if all != 3 {
		t.Errorf("all = %d, want 3", all)
	}
}

func TestEventTypeOf_CoversEveryKind(t *testing.T) {
	kinds := []poncho.EventType{
		poncho.EventPointerDown, poncho.EventPointerUp, poncho.EventClick,
		poncho.EventPointerEnter, poncho.EventPointerLeave, poncho.EventWheel,
	}
	seen := map[*events.EventType[poncho.InteractionEvent]]bool{}
	for _, k := range kinds {
		et := EventTypeOf(k)
		if et == nil {
			t.Fatalf("no event type for %v", k)
		}
		if seen[et] {
			t.Errorf("event type for %v is shared", k)
		}
		seen[et] = true
	}
}

func TestDonburiStore_ThroughScene(t *testing.T) {
	world := donburi.NewWorld()
	scene := poncho.NewScene()
	scene.SetEntityStore(NewDonburiStore(world))

	label := poncho.NewText("label", "Hello", poncho.NewTextFormat(poncho.DefaultFont()))
	label.EntityID = 9
	scene.Root().AddChild(label)

	var got []poncho.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e poncho.InteractionEvent) {
		got = append(got, e)
	})

	scene.Frame(nil, poncho.PointerSnapshot{X: 5, Y: 5})
	events.ProcessAllEvents(world)

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d: %+v", len(got), got)
	}
	if got[0].Type != poncho.EventPointerEnter || got[0].EntityID != 9 {
		t.Errorf("event: %+v", got[0])
	}
}
