package bellshake

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
}

const defaultCommandCap = 64

// Scene is the top-level object that owns the node tree, the animator, input
// state and the render command buffer.
type Scene struct {
	root     *Node
	store    EntityStore
	debug    bool
	animator Animator

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	// Render state
	commands []RenderCommand

	// Input state
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	// Synthetic input and scripted runs
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	lastUpdate time.Duration
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		dragDeadZone:  defaultDragDeadZone,
		ScreenshotDir: "screenshots",
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Animator returns the animator that Update advances every frame.
func (s *Scene) Animator() *Animator {
	return &s.animator
}

// Update advances the scene by one tick of 1/TPS seconds.
func (s *Scene) Update() {
	s.Step(1.0 / float64(ebiten.TPS()))
}

// Step advances the scene by dt seconds: scripted input, keyframe tracks,
// node OnUpdate callbacks, world transforms, then pointer input.
func (s *Scene) Step(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.animator.Update(float32(dt))
	updateNodes(s.root, dt)

	// Refresh world transforms so hit testing sees this frame's positions.
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.processInput()

	if s.debug {
		s.lastUpdate = time.Since(t0)
	}
}

// Draw traverses the scene tree, emits render commands and submits them to
// the given screen image. Queued screenshots are captured afterwards.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	s.commands = s.commands[:0]
	s.traverse(s.root, identityTransform, 1.0, false)
	s.submit(screen)

	if s.debug {
		s.debugLog(debugStats{
			updateTime:   s.lastUpdate,
			drawTime:     time.Since(t0),
			commandCount: len(s.commands),
			trackCount:   s.animator.Len(),
		})
	}

	s.flushScreenshots(screen)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are printed, widgets log their
// parameters, and per-frame timing stats are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}
