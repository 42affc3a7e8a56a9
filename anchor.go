package bellshake

// PivotState is a node's normalized anchor and its position in parent space,
// captured immediately before a pivot change.
type PivotState struct {
	Anchor   Vec2
	Position Vec2
}

// AnchorDelta returns how far a node's position has to move when its anchor
// changes from `from` to `to` so that its rendered geometry stays in place.
// size is the node's local bounds and m its current transform; only the
// linear part of m matters because the translation cancels out.
//
// Anchors are fractions of size and are not validated: values outside [0,1]
// place the pivot outside the bounds.
func AnchorDelta(size Vec2, m [6]float64, from, to Vec2) Vec2 {
	oldX, oldY := applyLinear(m, size.X*from.X, size.Y*from.Y)
	newX, newY := applyLinear(m, size.X*to.X, size.Y*to.Y)
	return Vec2{newX - oldX, newY - oldY}
}

// ReanchorPosition returns the position and anchor a node must take to pivot
// about `to` instead of `anchor` without a visual jump.
func ReanchorPosition(size Vec2, m [6]float64, position, anchor, to Vec2) (Vec2, Vec2) {
	return position.Add(AnchorDelta(size, m, anchor, to)), to
}

func applyLinear(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y, m[1]*x + m[3]*y
}

// Anchor returns the node's pivot as a fraction of its bounds. Nodes with an
// empty dimension report 0 on that axis.
func (n *Node) Anchor() Vec2 {
	var a Vec2
	if n.Width != 0 {
		a.X = n.PivotX / n.Width
	}
	if n.Height != 0 {
		a.Y = n.PivotY / n.Height
	}
	return a
}

// PivotState captures the node's current anchor and position.
func (n *Node) PivotState() PivotState {
	return PivotState{Anchor: n.Anchor(), Position: Vec2{n.X, n.Y}}
}

// SetAnchor moves the node's pivot to the normalized point a and shifts X/Y
// so that the node renders exactly where it did before. Subsequent rotation
// and scale happen about the new pivot.
func (n *Node) SetAnchor(a Vec2) {
	size := Vec2{n.Width, n.Height}
	pos, anchor := ReanchorPosition(size, linearTransform(n), Vec2{n.X, n.Y}, n.Anchor(), a)
	n.X = pos.X
	n.Y = pos.Y
	n.PivotX = size.X * anchor.X
	n.PivotY = size.Y * anchor.Y
	n.transformDirty = true
}
