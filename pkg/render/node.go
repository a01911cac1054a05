// Package render defines the retained render tree produced by the swipe row
// and the demo host, together with hit testing, JSON snapshots and a software
// rasterizer.
//
// A render tree is rebuilt from state on every change: widgets are pure
// functions from their current state to a [Node]. Frames are expressed in
// the parent's coordinate space, so translating a subtree only moves its root.
package render

import (
	"github.com/go-drift/swipeactions/pkg/graphics"
)

// Common node kinds. Producers may use any other kind string.
const (
	KindGroup  = "group"
	KindBox    = "box"
	KindCircle = "circle"
	KindIcon   = "icon"
)

// Node is one element of a render tree.
type Node struct {
	// Kind names the role of the node (e.g. "row", "button", "icon").
	Kind string `json:"kind"`
	// Key identifies the node for finders and snapshots.
	Key string `json:"key,omitempty"`
	// Frame is the node's bounds in its parent's coordinate space.
	Frame graphics.Rect `json:"frame"`
	// Fill paints the frame; transparent fills paint nothing.
	Fill graphics.Color `json:"fill,omitempty"`
	// CornerRadius rounds the fill and, with Clip, the clip shape.
	CornerRadius float64 `json:"cornerRadius,omitempty"`
	// Clip restricts descendants to the rounded frame.
	Clip bool `json:"clip,omitempty"`
	// Mask restricts descendants to a rectangle in local coordinates.
	Mask *graphics.Rect `json:"mask,omitempty"`
	// Icon names a glyph drawn centered in the frame.
	Icon     string         `json:"icon,omitempty"`
	IconTint graphics.Color `json:"iconTint,omitempty"`
	IconSize float64        `json:"iconSize,omitempty"`
	// IgnorePointer removes the node and its subtree from hit testing.
	IgnorePointer bool `json:"ignorePointer,omitempty"`
	// OnTap runs when a tap lands on this node.
	OnTap func() `json:"-"`
	// Props carries extra descriptive values for snapshots.
	Props map[string]string `json:"props,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// Local returns the node's frame translated to its own origin.
func (n *Node) Local() graphics.Rect {
	return graphics.RectFromLTWH(0, 0, n.Frame.Width(), n.Frame.Height())
}

// Widget builds a render tree for the space it is given.
type Widget interface {
	Build(size graphics.Size) *Node
}

// WidgetFunc adapts a function to the Widget interface.
type WidgetFunc func(size graphics.Size) *Node

// Build calls f(size).
func (f WidgetFunc) Build(size graphics.Size) *Node {
	return f(size)
}

// Walk visits n and its descendants in depth-first pre-order. The visitor
// receives each node's origin in root coordinates and returns false to skip
// the node's children.
func Walk(n *Node, visit func(node *Node, origin graphics.Offset) bool) {
	walk(n, graphics.Offset{}, visit)
}

func walk(n *Node, parent graphics.Offset, visit func(*Node, graphics.Offset) bool) {
	if n == nil {
		return
	}
	origin := parent.Add(n.Frame.Origin())
	if !visit(n, origin) {
		return
	}
	for _, child := range n.Children {
		walk(child, origin, visit)
	}
}

// Find returns every node matching pred in depth-first pre-order.
func Find(root *Node, pred func(*Node) bool) []*Node {
	var found []*Node
	Walk(root, func(n *Node, _ graphics.Offset) bool {
		if pred(n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// FindByKind returns every node of the given kind.
func FindByKind(root *Node, kind string) []*Node {
	return Find(root, func(n *Node) bool { return n.Kind == kind })
}

// FindByKey returns the first node with the given key, or nil.
func FindByKey(root *Node, key string) *Node {
	found := Find(root, func(n *Node) bool { return n.Key == key })
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// Bounds returns target's frame in root coordinates. The second result is
// false when target is not part of the tree.
func Bounds(root, target *Node) (graphics.Rect, bool) {
	var (
		bounds graphics.Rect
		ok     bool
	)
	Walk(root, func(n *Node, origin graphics.Offset) bool {
		if ok {
			return false
		}
		if n == target {
			bounds = graphics.RectFromLTWH(origin.X, origin.Y, n.Frame.Width(), n.Frame.Height())
			ok = true
			return false
		}
		return true
	})
	return bounds, ok
}
