// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/preprocess.go
// Summary: Normalizes a raw snapshot into the canonical shape the neighbor
// search assumes: the root is tagged as the outputs container, i3's wrapper
// and dockarea nodes disappear, every workspace gains exactly two synthetic
// children (tiled and floating), and fullscreen windows shadow their
// surroundings.

package tree

import (
	"log"
	"strings"
)

// Normalize rebuilds the tree bottom-up into canonical shape. The input is
// not mutated; subtrees below the workspace level are shared with the result.
// Normalizing an already-normalized tree is a no-op shape-wise.
func Normalize(root *Node) *Node {
	ids := newIDAllocator(root)

	out := &Node{
		ID:      root.ID,
		Name:    root.Name,
		Type:    root.Type,
		Layout:  LayoutOutputs,
		Rect:    root.Rect,
		Focused: root.Focused,
		Focus:   root.Focus,
	}
	for _, o := range root.Nodes {
		// Scratchpad and other reserved pseudo-outputs never hold
		// focusable targets.
		if strings.HasPrefix(o.Name, "__i3") {
			continue
		}
		no := normalizeOutput(o, ids)
		for i, ws := range no.Nodes {
			if ws.Type != TypeWorkspace {
				continue
			}
			fs := findFullscreen(ws)
			if fs == nil {
				continue
			}
			if fs.Fullscreen == FullscreenGlobal {
				log.Printf("Tree: Global fullscreen node %d shadows the whole tree", fs.ID)
				return fs
			}
			// A locally fullscreen node stands in for its entire
			// workspace. It inherits the workspace's identity so
			// by-name workspace commands still resolve; its former
			// siblings cannot receive focus while it is up.
			repl := *fs
			repl.ID = ws.ID
			repl.Type = ws.Type
			repl.Name = ws.Name
			no.Nodes[i] = &repl
			log.Printf("Tree: Fullscreen node %d shadows workspace %q", fs.ID, ws.Name)
		}
		out.Nodes = append(out.Nodes, no)
	}
	return out
}

func normalizeOutput(o *Node, ids *idAllocator) *Node {
	kids := make([]*Node, 0, len(o.Nodes))
	for _, c := range o.Nodes {
		if c.Type == TypeDockarea {
			continue
		}
		kids = append(kids, c)
	}

	focus := o.Focus
	if len(kids) == 1 && kids[0].Type != TypeWorkspace {
		// i3 wraps an output's workspaces in a single "content"
		// container; lift its children onto the output.
		wrapper := kids[0]
		focus = wrapper.Focus
		kids = wrapper.Nodes
	}

	out := &Node{
		ID:      o.ID,
		Name:    o.Name,
		Type:    o.Type,
		Layout:  LayoutOther,
		Rect:    o.Rect,
		Focused: o.Focused,
		Focus:   focus,
	}
	out.Nodes = make([]*Node, 0, len(kids))
	for _, c := range kids {
		if c.Type == TypeWorkspace {
			out.Nodes = append(out.Nodes, normalizeWorkspace(c, ids))
		} else {
			out.Nodes = append(out.Nodes, c)
		}
	}
	return out
}

// normalizeWorkspace splits a workspace into exactly two synthetic children:
// one holding the tiled containers under the workspace's own layout, one
// holding the floating windows under LayoutFloats. The workspace itself keeps
// LayoutOther so no target ever matches it directly. Synthetic children carry
// the workspace's name and type (their focus command stays "workspace <name>")
// but fresh ids, keeping ids unique tree-wide.
func normalizeWorkspace(ws *Node, ids *idAllocator) *Node {
	if isNormalizedWorkspace(ws) {
		return ws
	}

	tiled := &Node{
		ID:     ids.alloc(),
		Name:   ws.Name,
		Type:   ws.Type,
		Layout: ws.Layout,
		Rect:   ws.Rect,
		Focus:  filterFocus(ws.Focus, ws.Nodes),
		Nodes:  ws.Nodes,
	}
	floats := &Node{
		ID:     ids.alloc(),
		Name:   ws.Name,
		Type:   ws.Type,
		Layout: LayoutFloats,
		Rect:   ws.Rect,
		Focus:  filterFocus(ws.Focus, ws.FloatingNodes),
		Nodes:  ws.FloatingNodes,
	}

	focus := []int64{tiled.ID, floats.ID}
	if len(ws.Focus) > 0 && childWithID(ws.FloatingNodes, ws.Focus[0]) {
		focus[0], focus[1] = focus[1], focus[0]
	}

	return &Node{
		ID:      ws.ID,
		Name:    ws.Name,
		Type:    ws.Type,
		Layout:  LayoutOther,
		Rect:    ws.Rect,
		Focused: ws.Focused,
		Focus:   focus,
		Nodes:   []*Node{tiled, floats},
	}
}

func isNormalizedWorkspace(ws *Node) bool {
	return ws.Layout == LayoutOther &&
		len(ws.FloatingNodes) == 0 &&
		len(ws.Nodes) == 2 &&
		ws.Nodes[1].Layout == LayoutFloats
}

// filterFocus keeps the focus entries that refer to the given children,
// preserving recency order.
func filterFocus(focus []int64, children []*Node) []int64 {
	var out []int64
	for _, id := range focus {
		if childWithID(children, id) {
			out = append(out, id)
		}
	}
	return out
}

func childWithID(children []*Node, id int64) bool {
	for _, c := range children {
		if c.ID == id {
			return true
		}
	}
	return false
}

// findFullscreen returns a fullscreen descendant of n, preferring global
// fullscreen over local.
func findFullscreen(n *Node) *Node {
	var local *Node
	var walk func(*Node) *Node
	walk = func(t *Node) *Node {
		if t.Fullscreen == FullscreenGlobal {
			return t
		}
		if t.Fullscreen == FullscreenLocal && local == nil {
			local = t
		}
		for _, c := range t.Nodes {
			if g := walk(c); g != nil {
				return g
			}
		}
		for _, c := range t.FloatingNodes {
			if g := walk(c); g != nil {
				return g
			}
		}
		return nil
	}
	if g := walk(n); g != nil {
		return g
	}
	return local
}

// idAllocator hands out ids above anything present in the snapshot, so
// synthetic nodes never collide with real ones.
type idAllocator struct {
	next int64
}

func newIDAllocator(root *Node) *idAllocator {
	a := &idAllocator{}
	var walk func(*Node)
	walk = func(n *Node) {
		if n.ID > a.next {
			a.next = n.ID
		}
		for _, c := range n.Nodes {
			walk(c)
		}
		for _, c := range n.FloatingNodes {
			walk(c)
		}
	}
	walk(root)
	return a
}

func (a *idAllocator) alloc() int64 {
	a.next++
	return a.next
}
