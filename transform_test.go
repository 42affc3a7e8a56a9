package bellshake

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- computeLocalTransform ---

func TestLocalTransform(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *Node)
		want  [6]float64
	}{
		{"identity", func(n *Node) {}, [6]float64{1, 0, 0, 1, 0, 0}},
		{"translation", func(n *Node) { n.X, n.Y = 10, 20 }, [6]float64{1, 0, 0, 1, 10, 20}},
		{"scale", func(n *Node) { n.ScaleX, n.ScaleY = 2, 3 }, [6]float64{2, 0, 0, 3, 0, 0}},
		// cos(90)=0, sin(90)=1
		{"rot90", func(n *Node) { n.Rotation = math.Pi / 2 }, [6]float64{0, 1, -1, 0, 0, 0}},
		// pivot (16,16) sits at (100,200)
		{"pivot", func(n *Node) { n.X, n.Y, n.PivotX, n.PivotY = 100, 200, 16, 16 }, [6]float64{1, 0, 0, 1, 84, 184}},
		{"skew", func(n *Node) { n.SkewX = math.Pi / 4 }, [6]float64{1, 0, 1, 1, 0, 0}},
		{"scale+rot", func(n *Node) {
			n.X, n.Y = 50, 100
			n.ScaleX, n.ScaleY = 2, 2
			n.Rotation = math.Pi / 2
		}, [6]float64{0, 2, -2, 0, 50, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewContainer("test")
			tt.setup(n)
			assertMatrix(t, tt.name, computeLocalTransform(n), tt.want)
		})
	}
}

func TestLocalTransformRotatesAboutPivot(t *testing.T) {
	n := NewSprite("glyph", nil)
	n.SetSize(40, 40)
	n.SetPivot(20, 10)
	n.SetPosition(100, 100)
	n.Rotation = 0.7

	m := computeLocalTransform(n)
	px, py := transformPoint(m, 20, 10)
	assertNear(t, "pivot.x", px, 100)
	assertNear(t, "pivot.y", py, 100)
}

func TestLinearTransformHasNoTranslation(t *testing.T) {
	n := NewContainer("test")
	n.X, n.Y = 30, 40
	n.PivotX, n.PivotY = 5, 6
	n.Rotation = 0.3
	m := linearTransform(n)
	assertNear(t, "tx", m[4], 0)
	assertNear(t, "ty", m[5], 0)
	assertMatrix(t, "rotation", m, RotationTransform(0.3))
}

// --- multiplyAffine / invertAffine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 1, 3, 4, 5, 6}
	assertMatrix(t, "id*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*id", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyAffineRotations(t *testing.T) {
	got := multiplyAffine(RotationTransform(0.2), RotationTransform(0.5))
	assertMatrix(t, "r(0.2)*r(0.5)", got, RotationTransform(0.7))
}

func TestInvertAffine(t *testing.T) {
	n := NewContainer("test")
	n.ScaleX = 2
	n.Rotation = math.Pi / 3
	n.X, n.Y = 10, 20
	m := computeLocalTransform(n)
	assertMatrix(t, "m*inv=id", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 1, 10, 20}), identityTransform)
	assertMatrix(t, "zero", invertAffine([6]float64{0, 0, 0, 0, 50, 100}), identityTransform)
}

// --- updateWorldTransform ---

func TestWorldTransformParentChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X = 100
	child.X = 10

	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "parent.tx", parent.worldTransform[4], 100)
	assertNear(t, "child.tx", child.worldTransform[4], 110)
}

func TestAlphaPropagation(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.Alpha = 0.5
	child.Alpha = 0.5

	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "parent.worldAlpha", parent.worldAlpha, 0.5)
	assertNear(t, "child.worldAlpha", child.worldAlpha, 0.25)
}

func TestDirtyFlags(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X = 100
	child.X = 10
	updateWorldTransform(parent, identityTransform, 1.0, false)

	// Direct field write without MarkDirty stays stale.
	child.X = 999
	updateWorldTransform(parent, identityTransform, 1.0, false)
	assertNear(t, "stale", child.worldTransform[4], 110)

	child.SetPosition(20, 0)
	updateWorldTransform(parent, identityTransform, 1.0, false)
	assertNear(t, "updated", child.worldTransform[4], 120)

	// Moving the parent recomputes clean children.
	parent.SetPosition(200, 0)
	updateWorldTransform(parent, identityTransform, 1.0, false)
	assertNear(t, "from parent", child.worldTransform[4], 220)
}

func TestSettersMarkDirty(t *testing.T) {
	setters := map[string]func(n *Node){
		"SetPosition": func(n *Node) { n.SetPosition(1, 2) },
		"SetScale":    func(n *Node) { n.SetScale(2, 2) },
		"SetRotation": func(n *Node) { n.SetRotation(1) },
		"SetPivot":    func(n *Node) { n.SetPivot(5, 5) },
		"SetAlpha":    func(n *Node) { n.SetAlpha(0.5) },
		"SetAnchor":   func(n *Node) { n.SetAnchor(Vec2{0.5, 0.5}) },
		"SetSize":     func(n *Node) { n.SetSize(3, 3) },
		"MarkDirty":   func(n *Node) { n.MarkDirty() },
	}
	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			n := NewContainer("test")
			n.transformDirty = false
			set(n)
			if !n.transformDirty {
				t.Errorf("%s did not mark the node dirty", name)
			}
		})
	}
}

// --- WorldToLocal / LocalToWorld ---

func TestWorldToLocalRoundtrip(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X, parent.Y = 100, 50
	child.X, child.Y = 10, 20
	child.ScaleX, child.ScaleY = 2, 3
	child.Rotation = math.Pi / 6

	updateWorldTransform(parent, identityTransform, 1.0, false)

	lx, ly := child.WorldToLocal(150, 80)
	wx, wy := child.LocalToWorld(lx, ly)
	assertNear(t, "roundtrip.x", wx, 150)
	assertNear(t, "roundtrip.y", wy, 80)
}

func TestWorldToLocalZeroScale(t *testing.T) {
	n := NewContainer("test")
	n.ScaleX, n.ScaleY = 0, 0
	updateWorldTransform(n, identityTransform, 1.0, true)

	lx, ly := n.WorldToLocal(100, 200)
	assertNear(t, "lx", lx, 100)
	assertNear(t, "ly", ly, 200)
}

func TestDeepHierarchy(t *testing.T) {
	nodes := make([]*Node, 10)
	for i := range nodes {
		nodes[i] = NewContainer("")
		nodes[i].X = 10
		if i > 0 {
			nodes[i-1].AddChild(nodes[i])
		}
	}
	updateWorldTransform(nodes[0], identityTransform, 1.0, false)
	assertNear(t, "deep.tx", nodes[9].worldTransform[4], 100)
}

// --- Benchmarks ---

func BenchmarkComputeLocalTransform(b *testing.B) {
	n := NewContainer("bench")
	n.X, n.Y = 100, 200
	n.ScaleX, n.ScaleY = 2, 3
	n.Rotation = 0.5
	n.PivotX, n.PivotY = 16, 16
	b.ReportAllocs()
	for b.Loop() {
		_ = computeLocalTransform(n)
	}
}

func BenchmarkUpdateWorldTransform(b *testing.B) {
	root := NewContainer("root")
	for i := 0; i < 10; i++ {
		child := NewContainer("")
		child.X = float64(i)
		root.AddChild(child)
	}
	b.ReportAllocs()
	for b.Loop() {
		root.transformDirty = true
		updateWorldTransform(root, identityTransform, 1.0, false)
	}
}
