// Package bellshake is a shakeable bell widget for [Ebitengine], built on a
// small retained-mode scene graph.
//
// # Quick start
//
// [Run] creates a window and game loop:
//
//	scene := bellshake.NewScene()
//	bell := bellshake.NewBell(scene.Animator(), bellshake.BellOptions{
//		Glyph: bellshake.NewBellGlyph(128),
//	})
//	scene.Root().AddChild(bell.Node())
//	bellshake.Run(scene, bellshake.RunConfig{Title: "Bell", Width: 375, Height: 667})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Shaking
//
// [Bell.SetDuration], [Bell.SetAngle] and [Bell.SetPivotFraction] each store
// the new value and start a fresh shake; [Bell.TriggerShake] starts one with
// the current values and [Bell.Reset] restores 1s, pi/8 and a centered pivot.
// A shake is the six-frame [Schedule] returned by [BuildSchedule]:
// -angle, +angle, -angle, +angle, -angle and back to rest, each a sixth of
// the duration. The scene's [Animator] plays it; a newer shake on the same
// glyph replaces the running one.
//
// # Pivots
//
// Nodes rotate about their pivot. [Node.SetAnchor] moves the pivot to a
// normalized point of the node's bounds and shifts the node so that nothing
// moves on screen. [AnchorDelta] and [ReanchorPosition] are the pure forms
// of that computation.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and alpha.
// Sprites stretch their image (or a solid quad in [Node.Color]) over
// Width x Height. Interactable nodes receive pointer callbacks, and a
// [Scene] with an [EntityStore] forwards them to an ECS (see the ecs
// subpackage for the [Donburi] adapter).
//
// # Automation
//
// [Scene.InjectClick] and [Scene.InjectDrag] queue synthetic pointer input.
// [LoadTestScript] reads a YAML step list (click, drag, wait, screenshot and
// host-defined actions) that a [TestRunner] plays frame by frame.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package bellshake
