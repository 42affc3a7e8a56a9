package bellshake

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenScale, TweenAlpha) and
// call Update(dt) each frame. The group auto-applies values and marks the node
// dirty. If the target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(node.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// Keyframe is one segment of a piecewise animation. Start and Duration are
// fractions of the whole track; Value is reached at Start+Duration.
type Keyframe struct {
	Start    float64
	Duration float64
	Value    float64
}

// KeyframeTrack plays a list of keyframes on a single float64 field of a node.
// Each keyframe eases from the previous keyframe's value (the field's value
// when the track was created, for the first one) to its own. Frames must be
// ordered by Start; a gap between frames holds the previous value.
type KeyframeTrack struct {
	seq     *gween.Sequence // nil for an instant track
	final   float64
	field   *float64
	target  *Node
	elapsed float64
	Done    bool
}

// NewKeyframeTrack builds a track over total seconds. A non-positive total
// produces a track that finishes on its first update.
func NewKeyframeTrack(node *Node, field *float64, total float64, frames []Keyframe, fn ease.TweenFunc) *KeyframeTrack {
	k := &KeyframeTrack{field: field, target: node, final: *field}
	if len(frames) > 0 {
		k.final = frames[len(frames)-1].Value
	}
	if total <= 0 || len(frames) == 0 {
		k.Done = len(frames) == 0
		return k
	}
	if fn == nil {
		fn = ease.Linear
	}

	seq := gween.NewSequence()
	from := float32(*field)
	cursor := 0.0
	for _, kf := range frames {
		if gap := kf.Start - cursor; gap > 1e-9 {
			seq.Add(gween.New(from, from, float32(gap*total), ease.Linear))
		}
		to := float32(kf.Value)
		seq.Add(gween.New(from, to, float32(kf.Duration*total), fn))
		from = to
		cursor = kf.Start + kf.Duration
	}
	k.seq = seq
	return k
}

// Update advances the track by dt seconds and writes the current value.
func (k *KeyframeTrack) Update(dt float32) {
	if k.Done {
		return
	}
	if k.target != nil && k.target.IsDisposed() {
		k.Done = true
		return
	}

	k.elapsed += float64(dt)
	if k.seq == nil {
		*k.field = k.final
		k.Done = true
	} else {
		val, _, finished := k.seq.Update(dt)
		*k.field = float64(val)
		if finished {
			*k.field = k.final
		}
		k.Done = finished
	}

	if k.target != nil {
		k.target.MarkDirty()
	}
}

// Elapsed returns the seconds played so far.
func (k *KeyframeTrack) Elapsed() float64 {
	return k.elapsed
}

// Target returns the node the track writes to.
func (k *KeyframeTrack) Target() *Node {
	return k.target
}

// Animator drives keyframe tracks from Scene.Update. At most one track runs
// per (node, field) pair: playing a new one discards the old one, and the new
// track starts from whatever value the old one had written.
type Animator struct {
	tracks []*KeyframeTrack
}

// Play starts t, replacing any in-flight track on the same node field.
func (a *Animator) Play(t *KeyframeTrack) {
	for i, cur := range a.tracks {
		if cur.target == t.target && cur.field == t.field {
			a.tracks[i] = t
			return
		}
	}
	a.tracks = append(a.tracks, t)
}

// Stop discards every track targeting node. The node keeps its current values.
func (a *Animator) Stop(node *Node) {
	kept := a.tracks[:0]
	for _, t := range a.tracks {
		if t.target != node {
			kept = append(kept, t)
		}
	}
	clear(a.tracks[len(kept):])
	a.tracks = kept
}

// Active returns the running track on node, or nil.
func (a *Animator) Active(node *Node) *KeyframeTrack {
	for _, t := range a.tracks {
		if t.target == node {
			return t
		}
	}
	return nil
}

// Len returns the number of running tracks.
func (a *Animator) Len() int {
	return len(a.tracks)
}

// Update advances all tracks and drops the finished ones.
func (a *Animator) Update(dt float32) {
	kept := a.tracks[:0]
	for _, t := range a.tracks {
		t.Update(dt)
		if !t.Done {
			kept = append(kept, t)
		}
	}
	clear(a.tracks[len(kept):])
	a.tracks = kept
}
