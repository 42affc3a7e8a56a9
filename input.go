package bellshake

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hitNode  *Node
	dragging bool
	button   MouseButton // button captured at press time
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's bounds. Containers without a
// HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type == NodeTypeContainer || (n.Width == 0 && n.Height == 0) {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order, appending interactable
// nodes to buf. Skips Visible=false or Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Reverse painter order: topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Scene.Update to handle all mouse and touch
// input. Injected events take the place of real input for their frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	mods := readModifiers()
	s.processMousePointer(mods)
	s.processTouchPointers(mods)
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button, mods)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, mods)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]
	target := s.hitTest(wx, wy)

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.dragging = false
		s.firePointer(EventPointerDown, target, pointerID, wx, wy, ps.button, mods)

	case !pressed && ps.down:
		if ps.dragging {
			s.fireDrag(EventDragEnd, ps.hitNode, pointerID, wx, wy, ps, wx-ps.lastX, wy-ps.lastY, mods)
		} else if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, pointerID, wx, wy, ps.button, mods)
		}
		s.firePointer(EventPointerUp, target, pointerID, wx, wy, ps.button, mods)
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false

	case pressed && ps.down:
		if wx != ps.lastX || wy != ps.lastY {
			if !ps.dragging {
				dx := wx - ps.startX
				dy := wy - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDrag(EventDragStart, ps.hitNode, pointerID, wx, wy, ps, dx, dy, mods)
				}
			}
			if ps.dragging {
				s.fireDrag(EventDrag, ps.hitNode, pointerID, wx, wy, ps, wx-ps.lastX, wy-ps.lastY, mods)
			}
		}
		ps.lastX, ps.lastY = wx, wy

	default:
		ps.lastX, ps.lastY = wx, wy
	}
}

// --- Event dispatch ---

func localPoint(node *Node, wx, wy float64) (float64, float64, uint32) {
	if node == nil {
		return 0, 0, 0
	}
	lx, ly := node.WorldToLocal(wx, wy)
	return lx, ly, node.EntityID
}

func (s *Scene) firePointer(ev EventType, node *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	lx, ly, entityID := localPoint(node, wx, wy)
	ctx := PointerContext{
		Node: node, EntityID: entityID,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID, Modifiers: mods,
	}
	if node != nil {
		switch {
		case ev == EventPointerDown && node.OnPointerDown != nil:
			node.OnPointerDown(ctx)
		case ev == EventPointerUp && node.OnPointerUp != nil:
			node.OnPointerUp(ctx)
		}
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: ev, EntityID: entityID,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, Modifiers: mods,
	})
}

func (s *Scene) fireClick(node *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	lx, ly, entityID := localPoint(node, wx, wy)
	ctx := ClickContext{
		Node: node, EntityID: entityID,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID, Modifiers: mods,
	}
	if node.OnClick != nil {
		node.OnClick(ctx)
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: EventClick, EntityID: entityID,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, Modifiers: mods,
	})
}

func (s *Scene) fireDrag(ev EventType, node *Node, pointerID int, wx, wy float64, ps *pointerState, deltaX, deltaY float64, mods KeyModifiers) {
	lx, ly, entityID := localPoint(node, wx, wy)
	ctx := DragContext{
		Node: node, EntityID: entityID,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		StartX: ps.startX, StartY: ps.startY, DeltaX: deltaX, DeltaY: deltaY,
		Button: ps.button, PointerID: pointerID, Modifiers: mods,
	}
	if node != nil {
		switch {
		case ev == EventDragStart && node.OnDragStart != nil:
			node.OnDragStart(ctx)
		case ev == EventDrag && node.OnDrag != nil:
			node.OnDrag(ctx)
		case ev == EventDragEnd && node.OnDragEnd != nil:
			node.OnDragEnd(ctx)
		}
	}
	s.emitInteractionEvent(InteractionEvent{
		Type: ev, EntityID: entityID,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: ps.button, Modifiers: mods,
		StartX: ps.startX, StartY: ps.startY, DeltaX: deltaX, DeltaY: deltaY,
	})
}

// emitInteractionEvent forwards to the EntityStore for nodes tagged with an
// EntityID.
func (s *Scene) emitInteractionEvent(ev InteractionEvent) {
	if s.store == nil || ev.EntityID == 0 {
		return
	}
	s.store.EmitEvent(ev)
}
