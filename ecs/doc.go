// Package ecs bridges bellshake into a [Donburi] world.
//
// [NewDonburiStore] forwards scene interaction events (pointer, click, drag)
// as typed events on [InteractionEventType]. [ForwardShakes] publishes every
// bell shake on [ShakeEventType] and mirrors a summary into a [ShakeStats]
// component.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.SetEntityStore(ecs.NewDonburiStore(world))
//	ecs.ForwardShakes(world, bell)
//	// each frame:
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
