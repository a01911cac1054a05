package render

import (
	"github.com/go-drift/swipeactions/pkg/graphics"
)

// HitTest returns the nodes under point, deepest first. Children are tested
// in reverse paint order and only the topmost hit child is followed. Nodes
// marked IgnorePointer are skipped together with their subtree; clips and
// masks hide descendants outside them.
func HitTest(root *Node, point graphics.Offset) []*Node {
	var path []*Node
	hitTest(root, point, &path)
	return path
}

func hitTest(n *Node, point graphics.Offset, path *[]*Node) bool {
	if n == nil || n.IgnorePointer {
		return false
	}
	if !n.Frame.Contains(point) {
		return false
	}
	local := point.Sub(n.Frame.Origin())
	if n.Clip && !graphics.RRectFromRectAndRadius(n.Local(), graphics.CircularRadius(n.CornerRadius)).Contains(local) {
		return false
	}
	if n.Mask == nil || n.Mask.Contains(local) {
		for i := len(n.Children) - 1; i >= 0; i-- {
			if hitTest(n.Children[i], local, path) {
				break
			}
		}
	}
	*path = append(*path, n)
	return true
}

// FindTap returns the tap handler of the deepest node under point that has
// one.
func FindTap(root *Node, point graphics.Offset) (func(), bool) {
	for _, n := range HitTest(root, point) {
		if n.OnTap != nil {
			return n.OnTap, true
		}
	}
	return nil, false
}
