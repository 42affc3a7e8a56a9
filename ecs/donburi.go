// Package ecs provides ECS adapters for bellshake.
package ecs

import (
	"github.com/phanxgames/bellshake"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for scene interaction events.
// Subscribe to this in your ECS systems to receive pointer, click and drag events.
var InteractionEventType = events.NewEventType[bellshake.InteractionEvent]()

// ShakeEventType is the Donburi event type for started bell shakes.
var ShakeEventType = events.NewEventType[bellshake.ShakeEvent]()

// ShakeStatsData is the running summary of one bell's shakes.
type ShakeStatsData struct {
	Count        int
	LastDuration float64
	LastAngle    float64
	LastPivot    float64
}

// ShakeStats is the component holding ShakeStatsData.
var ShakeStats = donburi.NewComponentType[ShakeStatsData]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) bellshake.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event bellshake.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// ForwardShakes publishes every shake of b to ShakeEventType and keeps a
// ShakeStats entity up to date. The bell's EntityID is set to the new entity
// so that taps on the bell reach the world too. Any existing OnShake
// callback still runs first.
func ForwardShakes(world donburi.World, b *bellshake.Bell) donburi.Entity {
	entity := world.Create(ShakeStats)
	b.Glyph().EntityID = uint32(entity.Id())

	prev := b.OnShake
	b.OnShake = func(ev bellshake.ShakeEvent) {
		if prev != nil {
			prev(ev)
		}
		if world.Valid(entity) {
			ShakeStats.SetValue(world.Entry(entity), ShakeStatsData{
				Count:        ev.Count,
				LastDuration: ev.Params.Duration,
				LastAngle:    ev.Params.Angle,
				LastPivot:    ev.Params.PivotFraction.Y,
			})
		}
		ShakeEventType.Publish(world, ev)
	}
	return entity
}
