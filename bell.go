package bellshake

import (
	"errors"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
)

// BellIntrinsicSize is the natural edge length of the bell glyph in logical
// units. Hosts may lay the bell view out larger.
const BellIntrinsicSize = 48

// ErrInvalidParameter is returned by Bell setters for values that cannot be
// animated (NaN or infinite). The update is ignored.
var ErrInvalidParameter = errors.New("bellshake: invalid shake parameter")

// ShakeParameters are the three inputs of a shake.
type ShakeParameters struct {
	Duration      float64 // seconds
	Angle         float64 // radians
	PivotFraction Vec2    // normalized rotation center; X stays at 0.5
}

// DefaultShakeParameters returns duration 1s, angle pi/8 and a centered pivot.
func DefaultShakeParameters() ShakeParameters {
	return ShakeParameters{
		Duration:      1,
		Angle:         math.Pi / 8,
		PivotFraction: Vec2{0.5, 0.5},
	}
}

// Normalize returns p centered horizontally with its pivot clamped to [0,1].
// NaN or infinite values fail with ErrInvalidParameter.
func (p ShakeParameters) Normalize() (ShakeParameters, error) {
	switch {
	case !isFinite(p.Duration):
		return p, invalid("duration", p.Duration)
	case !isFinite(p.Angle):
		return p, invalid("angle", p.Angle)
	case !isFinite(p.PivotFraction.Y):
		return p, invalid("pivot fraction", p.PivotFraction.Y)
	}
	p.PivotFraction = Vec2{0.5, clamp01(p.PivotFraction.Y)}
	return p, nil
}

// initialParams normalizes p, replacing unusable values with the defaults.
func initialParams(p ShakeParameters) ShakeParameters {
	def := DefaultShakeParameters()
	if !isFinite(p.Duration) {
		p.Duration = def.Duration
	}
	if !isFinite(p.Angle) {
		p.Angle = def.Angle
	}
	if !isFinite(p.PivotFraction.Y) {
		p.PivotFraction.Y = def.PivotFraction.Y
	}
	p, _ = p.Normalize()
	return p
}

// ShakeEvent describes one started shake.
type ShakeEvent struct {
	Params   ShakeParameters
	Schedule Schedule
	Before   PivotState // glyph pivot before re-anchoring
	After    PivotState // glyph pivot the shake rotates about
	Count    int        // shakes started by this bell so far
}

// BellOptions configures NewBell. Zero values select the defaults noted on
// each field.
type BellOptions struct {
	Name      string        // default "bell"
	ViewSize  float64       // edge of the square bell view; default 325
	GlyphSize float64       // edge of the glyph inside the view; default 128
	Glyph     *ebiten.Image // glyph image; nil renders a solid quad
	Ease      ease.TweenFunc
	ShowPivot bool // draw a marker at the rotation center

	// Initial replaces DefaultShakeParameters as the starting parameters.
	// Setting it does not start a shake.
	Initial *ShakeParameters
}

// Bell is a shakeable bell widget. Every setter and every tap re-anchors the
// glyph and plays a new shake; a new shake supersedes the running one.
type Bell struct {
	view   *Node
	glyph  *Node
	marker *Node

	animator *Animator
	ease     ease.TweenFunc
	params   ShakeParameters
	schedule Schedule
	shakes   int
	pulse    *TweenGroup

	// OnShake, if set, is called after each shake has been scheduled.
	OnShake func(ShakeEvent)
}

// NewBell builds the bell view. The animator is normally Scene.Animator().
func NewBell(animator *Animator, opts BellOptions) *Bell {
	if opts.Name == "" {
		opts.Name = "bell"
	}
	if opts.ViewSize <= 0 {
		opts.ViewSize = 325
	}
	if opts.GlyphSize <= 0 {
		opts.GlyphSize = 128
	}
	if opts.Ease == nil {
		opts.Ease = ease.Linear
	}

	b := &Bell{
		animator: animator,
		ease:     opts.Ease,
		params:   DefaultShakeParameters(),
	}
	if opts.Initial != nil {
		b.params = initialParams(*opts.Initial)
	}

	b.view = NewContainer(opts.Name)
	b.view.SetSize(opts.ViewSize, opts.ViewSize)
	b.view.Interactable = true

	b.glyph = NewSprite(opts.Name+"_glyph", opts.Glyph)
	b.glyph.Color = ColorBellYellow
	b.glyph.SetSize(opts.GlyphSize, opts.GlyphSize)
	b.glyph.SetPivot(opts.GlyphSize/2, opts.GlyphSize/2)
	b.glyph.SetPosition(opts.ViewSize/2, opts.ViewSize/2)
	b.glyph.Interactable = true
	b.glyph.HitShape = HitRect{Width: opts.GlyphSize, Height: opts.GlyphSize}
	b.glyph.OnClick = func(ClickContext) {
		b.TriggerShake()
	}
	b.view.AddChild(b.glyph)

	b.marker = NewSprite(opts.Name+"_pivot", nil)
	b.marker.Color = Color{0.9, 0.2, 0.2, 1}
	b.marker.SetSize(8, 8)
	b.marker.SetPivot(4, 4)
	b.marker.Visible = opts.ShowPivot
	b.marker.OnUpdate = func(dt float64) {
		if b.pulse != nil {
			b.pulse.Update(float32(dt))
		}
	}
	b.view.AddChild(b.marker)
	b.syncMarker()

	return b
}

// Node returns the bell view, ready to be added to a scene.
func (b *Bell) Node() *Node { return b.view }

// Glyph returns the rotating glyph node.
func (b *Bell) Glyph() *Node { return b.glyph }

// Params returns the current shake parameters.
func (b *Bell) Params() ShakeParameters { return b.params }

// Schedule returns the most recently played schedule.
func (b *Bell) Schedule() Schedule { return b.schedule }

// Shakes returns how many shakes have been started.
func (b *Bell) Shakes() int { return b.shakes }

// SetEase changes the easing applied inside each keyframe from the next shake on.
func (b *Bell) SetEase(fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	b.ease = fn
}

// SetShowPivot toggles the rotation-center marker.
func (b *Bell) SetShowPivot(show bool) {
	b.marker.Visible = show
}

// SetDuration sets the total shake duration in seconds and re-triggers.
// Zero and negative durations are accepted and finish immediately.
func (b *Bell) SetDuration(seconds float64) error {
	if !isFinite(seconds) {
		return b.reject("duration", seconds)
	}
	b.params.Duration = seconds
	b.parameterChanged()
	return nil
}

// SetAngle sets the maximum tilt in radians and re-triggers. Negative angles
// tilt the other way first.
func (b *Bell) SetAngle(radians float64) error {
	if !isFinite(radians) {
		return b.reject("angle", radians)
	}
	b.params.Angle = radians
	b.parameterChanged()
	return nil
}

// SetPivotFraction sets the vertical rotation center as a fraction of the
// glyph height, clamped to [0,1], and re-triggers.
func (b *Bell) SetPivotFraction(y float64) error {
	if !isFinite(y) {
		return b.reject("pivot fraction", y)
	}
	b.params.PivotFraction.Y = clamp01(y)
	b.parameterChanged()
	return nil
}

// Reset restores DefaultShakeParameters and re-triggers.
func (b *Bell) Reset() {
	b.params = DefaultShakeParameters()
	b.parameterChanged()
}

// parameterChanged is the single entry point for every parameter mutation.
func (b *Bell) parameterChanged() {
	b.TriggerShake()
}

// TriggerShake re-anchors the glyph about the configured pivot and plays a
// fresh schedule. It returns at once; the scene's animator plays the frames.
func (b *Bell) TriggerShake() Schedule {
	p := b.params
	before := b.glyph.PivotState()
	b.glyph.SetAnchor(Vec2{0.5, p.PivotFraction.Y})
	after := b.glyph.PivotState()

	sched := BuildSchedule(p.Duration, p.Angle)
	b.animator.Play(NewKeyframeTrack(b.glyph, &b.glyph.Rotation, sched.Duration, sched.Frames[:], b.ease))
	b.schedule = sched
	b.shakes++

	debugf("duration: %v angle: %v offset: %v", p.Duration, p.Angle, p.PivotFraction.Y)
	debugf("anchor: (%.3f, %.3f) position: (%.2f, %.2f)", after.Anchor.X, after.Anchor.Y, after.Position.X, after.Position.Y)

	b.syncMarker()
	if before.Anchor != after.Anchor && b.marker.Visible {
		b.marker.SetScale(2, 2)
		b.pulse = TweenScale(b.marker, 1, 1, 0.25, ease.OutQuad)
	}

	if b.OnShake != nil {
		b.OnShake(ShakeEvent{
			Params:   p,
			Schedule: sched,
			Before:   before,
			After:    after,
			Count:    b.shakes,
		})
	}
	return sched
}

// syncMarker places the marker on the glyph's pivot, which is the glyph's
// position in view space.
func (b *Bell) syncMarker() {
	b.marker.SetPosition(b.glyph.X, b.glyph.Y)
}

func (b *Bell) reject(name string, v float64) error {
	debugf("ignoring %s %v", name, v)
	return invalid(name, v)
}

func invalid(name string, v float64) error {
	return fmt.Errorf("%s %v: %w", name, v, ErrInvalidParameter)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NewBellGlyph draws a bell silhouette of the given edge length in white, so
// that the sprite Color tints it.
func NewBellGlyph(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	s := float32(size)
	c := ColorWhite.toRGBA()

	// handle and dome
	vector.DrawFilledCircle(img, 0.5*s, 0.08*s, 0.06*s, c, true)
	vector.DrawFilledCircle(img, 0.5*s, 0.36*s, 0.26*s, c, true)
	vector.DrawFilledRect(img, 0.24*s, 0.36*s, 0.52*s, 0.34*s, c, true)
	// rim and clapper
	vector.DrawFilledRect(img, 0.12*s, 0.68*s, 0.76*s, 0.08*s, c, true)
	vector.DrawFilledCircle(img, 0.5*s, 0.84*s, 0.08*s, c, true)
	return img
}
