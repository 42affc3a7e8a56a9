package bellshake

import (
	"math"
	"testing"
)

func traverseScene(s *Scene) {
	s.commands = s.commands[:0]
	s.traverse(s.root, identityTransform, 1.0, false)
}

func TestTraverseEmitsSizedSpritesOnly(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(box("a", 0, 0, 10, 10))
	s.Root().AddChild(NewSprite("empty", nil)) // zero size
	s.Root().AddChild(NewContainer("c"))

	hidden := box("hidden", 0, 0, 10, 10)
	hidden.Visible = false
	hidden.AddChild(box("under-hidden", 0, 0, 10, 10))
	s.Root().AddChild(hidden)

	norender := box("norender", 0, 0, 10, 10)
	norender.Renderable = false
	norender.AddChild(box("under-norender", 0, 0, 10, 10))
	s.Root().AddChild(norender)

	traverseScene(s)
	if len(s.commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(s.commands))
	}
	if s.commands[0].Width != 10 || s.commands[0].Image != nil {
		t.Errorf("command 0 = %+v", s.commands[0])
	}
}

func TestTraverseOrderIsTreeOrder(t *testing.T) {
	s := NewScene()
	a := box("a", 1, 0, 10, 10)
	b := box("b", 2, 0, 10, 10)
	c := box("c", 3, 0, 10, 10)
	s.Root().AddChild(a)
	a.AddChild(b)
	s.Root().AddChild(c)

	traverseScene(s)
	want := []float64{1, 3, 3}
	for i, cmd := range s.commands {
		assertNear(t, "tx", cmd.Transform[4], want[i])
	}
}

func TestTraverseMultipliesAlpha(t *testing.T) {
	s := NewScene()
	parent := NewContainer("p")
	parent.Alpha = 0.5
	child := box("c", 0, 0, 10, 10)
	child.Color = Color{1, 0.8, 0, 0.5}
	parent.AddChild(child)
	s.Root().AddChild(parent)

	traverseScene(s)
	if len(s.commands) != 1 {
		t.Fatalf("got %d commands", len(s.commands))
	}
	assertNear(t, "alpha", s.commands[0].Color.A, 0.25)
	assertNear(t, "green", s.commands[0].Color.G, 0.8)
}

func TestCommandGeoMMapsBounds(t *testing.T) {
	n := box("g", 100, 50, 40, 20)
	n.SetPivot(20, 10)
	n.SetRotation(math.Pi / 2)
	updateWorldTransform(n, identityTransform, 1, false)

	cmd := RenderCommand{Transform: n.WorldTransform(), Width: 40, Height: 20}
	g := commandGeoM(cmd, 1, 1) // a 1x1 source image

	// Image corners land where the node's local corners do.
	for _, p := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		gx, gy := g.Apply(p[0], p[1])
		wx, wy := n.LocalToWorld(p[0]*40, p[1]*20)
		assertNear(t, "x", gx, wx)
		assertNear(t, "y", gy, wy)
	}

	// The pivot stays on the node position.
	px, py := g.Apply(0.5, 0.5)
	assertNear(t, "pivot x", px, 100)
	assertNear(t, "pivot y", py, 50)
}

func TestTraverseCleanTreeDoesNotAllocate(t *testing.T) {
	s := NewScene()
	for i := 0; i < 50; i++ {
		s.Root().AddChild(box("s", float64(i), 0, 4, 4))
	}
	traverseScene(s)

	allocs := testing.AllocsPerRun(100, func() {
		traverseScene(s)
	})
	if allocs != 0 {
		t.Errorf("traverse allocated %v times per run", allocs)
	}
}
