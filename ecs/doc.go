// Package ecs provides ECS adapters for poncho's pointer event system.
//
// The primary adapter is [NewDonburiStore], which bridges poncho interaction
// events (enter, leave, down, up, click, wheel) into a [Donburi] world as
// typed events. Subscribe to [InteractionEventType] to receive every event,
// or to the per-kind type returned by [EventTypeOf] to receive one kind.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
