package bellshake

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Transform [6]float64
	Image     *ebiten.Image
	Width     float64 // destination size in local units
	Height    float64
	Color     Color // tint, alpha already multiplied by world alpha
}

// whitePixel backs sprites without a custom image. Created on first draw.
var whitePixel *ebiten.Image

func solidImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// traverse walks the node tree depth-first in child order, updating
// transforms and emitting one command per visible, renderable sprite.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Renderable && n.Type == NodeTypeSprite && n.Width > 0 && n.Height > 0 {
		c := n.Color
		c.A *= n.worldAlpha
		s.commands = append(s.commands, RenderCommand{
			Transform: n.worldTransform,
			Image:     n.customImage,
			Width:     n.Width,
			Height:    n.Height,
			Color:     c,
		})
	}

	for _, child := range n.children {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// commandGeoM builds the GeoM that stretches an image of size (iw, ih) over
// the command's local bounds and then applies its world transform.
func commandGeoM(cmd RenderCommand, iw, ih int) ebiten.GeoM {
	var g ebiten.GeoM
	if iw > 0 && ih > 0 {
		g.Scale(cmd.Width/float64(iw), cmd.Height/float64(ih))
	}
	var world ebiten.GeoM
	m := cmd.Transform
	world.SetElement(0, 0, m[0])
	world.SetElement(1, 0, m[1])
	world.SetElement(0, 1, m[2])
	world.SetElement(1, 1, m[3])
	world.SetElement(0, 2, m[4])
	world.SetElement(1, 2, m[5])
	g.Concat(world)
	return g
}

// submit draws every command in order.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		img := cmd.Image
		if img == nil {
			img = solidImage()
		}
		b := img.Bounds()

		op.GeoM = commandGeoM(*cmd, b.Dx(), b.Dy())
		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(cmd.Color.R), float32(cmd.Color.G), float32(cmd.Color.B), 1)
		op.ColorScale.ScaleAlpha(float32(cmd.Color.A))
		op.Filter = ebiten.FilterLinear
		target.DrawImage(img, &op)
	}
}
