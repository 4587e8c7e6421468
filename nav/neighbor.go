// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: nav/neighbor.go
// Summary: The neighbor search. Walks the focus path of a normalized tree,
// matches ancestors against the target list bottom-up, selects a sibling by
// index or geometry, then descends the result to a focusable leaf.

package nav

import (
	"log"

	"github.com/graythane/swayfocus/tree"
)

// Neighbor finds the leaf that should receive focus next, or nil when focus
// should not change. The tree must be normalized and is never mutated.
func Neighbor(root *tree.Node, targets []Target) *tree.Node {
	path := focusPath(root)

	for i := len(path) - 1; i >= 0; i-- {
		parent := path[i]
		target, ok := Match(parent, targets)
		if !ok {
			continue
		}
		log.Printf("Nav: Node %d matches %v", parent.ID, target)
		n := neighborLocal(parent, target)
		if n == nil {
			if target.Edge == EdgeStop {
				// A stopping target swallows the search: no
				// outer ancestor may be consulted.
				log.Printf("Nav: Stop target ends the search without a neighbor")
				return nil
			}
			continue
		}
		log.Printf("Nav: Neighbor %d, selecting leaf", n.ID)
		return descendToLeaf(n, targets)
	}
	return nil
}

// focusPath returns the ancestors of the focused leaf, root first. The walk
// ends early at a dangling focus pointer; an incomplete path is usable as-is.
func focusPath(root *tree.Node) []*tree.Node {
	var path []*tree.Node
	t := root
	for !t.Focused {
		path = append(path, t)
		c := t.FocusedChild()
		if c == nil {
			log.Printf("Nav: Node %d has no resolvable focused child", t.ID)
			break
		}
		t = c
	}
	return path
}

// neighborLocal selects a sibling of parent's focused child according to
// target. Float and Output kinds compare geometry; everything else is
// resolved by list position.
func neighborLocal(parent *tree.Node, target Target) *tree.Node {
	if len(parent.Focus) == 0 {
		return nil
	}
	idx, ok := parent.ChildIndex(parent.Focus[0])
	if !ok {
		return nil
	}

	switch target.Kind {
	case KindFloat, KindOutput:
		return geometricNeighbor(parent, parent.Nodes[idx], target)
	case KindSplit, KindGroup, KindWorkspace:
		return ordinalNeighbor(parent, idx, target)
	}
	return nil
}

// ordinalNeighbor moves one position through the sibling list. The index is
// offset by the list length before the step so a backward move never
// underflows; wrapping reduces modulo the length, otherwise the offset range
// check doubles as the bounds check.
func ordinalNeighbor(parent *tree.Node, focusIdx int, target Target) *tree.Node {
	n := len(parent.Nodes)
	idx := focusIdx + n
	if target.Backward {
		idx--
	} else {
		idx++
	}
	if target.Edge == EdgeWrap {
		return parent.Nodes[idx%n]
	}
	if idx >= n && idx < 2*n {
		return parent.Nodes[idx-n]
	}
	return nil
}

// geometricNeighbor picks the nearest sibling past the focused child on the
// target's axis. At the edge, a wrapping target flips the predicate and takes
// the farthest sibling in the opposite direction; if even that fails the
// focused child itself is returned so a chained wrap across more than two
// outputs can still make progress on the next invocation.
func geometricNeighbor(parent, focused *tree.Node, target Target) *tree.Node {
	res := closestCandidate(parent.Nodes, focused, target, target.Backward, false)
	if res == nil && target.Edge == EdgeWrap {
		res = closestCandidate(parent.Nodes, focused, target, !target.Backward, true)
		if res == nil {
			res = focused
		}
	}
	return res
}

// candidate scoring: distance first, then an id-derived key whose polarity
// follows the direction flip so forward and backward traversals visit
// tied siblings in reverse order of each other.
type score struct {
	dist int64
	key  int64
}

func (s score) less(o score) bool {
	if s.dist != o.dist {
		return s.dist < o.dist
	}
	return s.key < o.key
}

func closestCandidate(siblings []*tree.Node, focused *tree.Node, target Target, flip, farthest bool) *tree.Node {
	var best *tree.Node
	var bestScore score
	for _, n := range siblings {
		s, ok := scoreCandidate(n, focused, target, flip)
		if !ok {
			continue
		}
		if best == nil || (farthest && bestScore.less(s)) || (!farthest && s.less(bestScore)) {
			best, bestScore = n, s
		}
	}
	return best
}

func scoreCandidate(n, focused *tree.Node, target Target, flip bool) (score, bool) {
	if n.ID == focused.ID {
		return score{}, false
	}
	a, b := focused.Rect, n.Rect
	if flip {
		a, b = b, a
	}
	aPos, aDim := a.Component(target.Vertical)
	bPos, bDim := b.Component(target.Vertical)
	aMid, bMid := aPos+aDim/2, bPos+bDim/2

	var dist int64
	switch target.Kind {
	case KindFloat:
		// Floats order by midpoint on the axis. Exactly aligned
		// midpoints fall back to id order, with the polarity tied to
		// the direction flip so the ordering stays reversible.
		if aMid < bMid || (aMid == bMid && flip == (n.ID > focused.ID)) {
			dist = abs64(int64(bMid) - int64(aMid))
		} else {
			return score{}, false
		}
	case KindOutput:
		// Outputs must be strictly past the focused one; distance is
		// the squared gap from the focused center to the candidate.
		if aPos+aDim > bPos {
			return score{}, false
		}
		cx, cy := focused.Rect.Center()
		px, py := n.Rect.ClosestPoint(cx, cy)
		dx, dy := int64(cx-px), int64(cy-py)
		dist = dx*dx + dy*dy
	default:
		return score{}, false
	}

	key := n.ID
	if !flip {
		key = -key
	}
	return score{dist: dist, key: key}, true
}

// descendToLeaf resolves a neighbor container down to the leaf that should
// actually be focused. Targets re-match at every level: a Traverse target
// enters at the child nearest the origin of the move, an Inactive target at
// the container's second-most-recently-focused child, anything else follows
// the container's own remembered focus.
func descendToLeaf(t *tree.Node, targets []Target) *tree.Node {
	for {
		var next *tree.Node
		target, ok := Match(t, targets)
		switch {
		case ok && target.Edge == EdgeTraverse:
			next = entryChild(t, target)
		case ok && target.Edge == EdgeInactive:
			next = inactiveChild(t)
		default:
			next = t.FocusedChild()
		}
		if next == nil {
			log.Printf("Nav: Selected leaf %d", t.ID)
			return t
		}
		t = next
	}
}

// entryChild picks the child a traversing move lands on: arriving from the
// right enters at the leftmost child, and so on. Floats compare geometry;
// list-ordered containers take the structurally first or last child. Outputs
// keep their remembered focus since a descent never crosses from one root
// into another.
func entryChild(t *tree.Node, target Target) *tree.Node {
	switch target.Kind {
	case KindFloat:
		return extremeChild(t.Nodes, target)
	case KindSplit, KindGroup, KindWorkspace:
		if len(t.Nodes) == 0 {
			return nil
		}
		if target.Backward {
			return t.Nodes[len(t.Nodes)-1]
		}
		return t.Nodes[0]
	case KindOutput:
		return t.FocusedChild()
	}
	return nil
}

// extremeChild returns the child with the minimum (forward) or maximum
// (backward) center on the target axis, ties broken toward the higher id.
func extremeChild(children []*tree.Node, target Target) *tree.Node {
	var best *tree.Node
	var bestKey score
	for _, c := range children {
		pos, dim := c.Rect.Component(target.Vertical)
		k := score{dist: int64(pos) + int64(dim)/2, key: -c.ID}
		if best == nil || (target.Backward && bestKey.less(k)) || (!target.Backward && k.less(bestKey)) {
			best, bestKey = c, k
		}
	}
	return best
}

// inactiveChild resolves the second entry of a container's focus order,
// falling back to the remembered focus when there is no second entry.
func inactiveChild(t *tree.Node) *tree.Node {
	if len(t.Focus) > 1 {
		if c := t.ChildByID(t.Focus[1]); c != nil {
			return c
		}
	}
	return t.FocusedChild()
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
