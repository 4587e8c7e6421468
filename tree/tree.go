// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/tree.go
// Summary: Canonical layout-tree model shared by the preprocessor and the
// neighbor search. Nodes form a strict ownership tree; after normalization the
// tree is treated as read-only.

package tree

import "fmt"

// ContainerType tags a node with its role in the window manager's hierarchy.
type ContainerType int

const (
	TypeRoot ContainerType = iota
	TypeOutput
	TypeCon
	TypeFloatingCon
	TypeWorkspace
	TypeDockarea
)

func (t ContainerType) String() string {
	switch t {
	case TypeRoot:
		return "root"
	case TypeOutput:
		return "output"
	case TypeCon:
		return "con"
	case TypeFloatingCon:
		return "floating_con"
	case TypeWorkspace:
		return "workspace"
	case TypeDockarea:
		return "dockarea"
	}
	return "unknown"
}

// Layout tags how a container arranges its children. LayoutOutputs and
// LayoutFloats are synthetic tags assigned during normalization; LayoutOther
// never matches any search target.
type Layout int

const (
	LayoutSplitH Layout = iota
	LayoutSplitV
	LayoutTabbed
	LayoutStacked
	LayoutFloats
	LayoutOutputs
	LayoutOther
)

func (l Layout) String() string {
	switch l {
	case LayoutSplitH:
		return "splith"
	case LayoutSplitV:
		return "splitv"
	case LayoutTabbed:
		return "tabbed"
	case LayoutStacked:
		return "stacked"
	case LayoutFloats:
		return "floats"
	case LayoutOutputs:
		return "outputs"
	case LayoutOther:
		return "other"
	}
	return "unknown"
}

// FullscreenMode records whether a node covers its workspace or every output.
type FullscreenMode int

const (
	FullscreenNone FullscreenMode = iota
	FullscreenLocal
	FullscreenGlobal
)

// Rect is a node's on-screen rectangle in integer pixels.
type Rect struct {
	X, Y, Width, Height int
}

// Component projects the rectangle onto one axis, returning position and
// extent: (Y, Height) for the vertical axis, (X, Width) otherwise.
func (r Rect) Component(vertical bool) (pos, dim int) {
	if vertical {
		return r.Y, r.Height
	}
	return r.X, r.Width
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// ClosestPoint clamps (x, y) into the rectangle.
func (r Rect) ClosestPoint(x, y int) (int, int) {
	return clamp(x, r.X, r.X+r.Width), clamp(y, r.Y, r.Y+r.Height)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Node is one element of the layout tree. A node with no children is a leaf
// and a valid focus target. FloatingNodes is only populated on freshly parsed
// trees; Normalize folds it into a synthetic Floats container.
type Node struct {
	ID            int64
	Name          string
	Type          ContainerType
	Layout        Layout
	Rect          Rect
	Focused       bool
	Focus         []int64 // child ids, most recently focused first
	Nodes         []*Node
	FloatingNodes []*Node
	Fullscreen    FullscreenMode
}

// ChildByID returns the direct child with the given id, or nil.
func (n *Node) ChildByID(id int64) *Node {
	for _, c := range n.Nodes {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ChildIndex returns the position of the direct child with the given id.
func (n *Node) ChildIndex(id int64) (int, bool) {
	for i, c := range n.Nodes {
		if c.ID == id {
			return i, true
		}
	}
	return 0, false
}

// FocusedChild resolves the node's most recent focus pointer against its
// children. A dangling or missing pointer yields nil; callers treat that as
// "no resolvable focused child", not as an error.
func (n *Node) FocusedChild() *Node {
	if len(n.Focus) == 0 {
		return nil
	}
	return n.ChildByID(n.Focus[0])
}

// IsLeaf reports whether the node has no tiled children.
func (n *Node) IsLeaf() bool {
	return len(n.Nodes) == 0
}

// FocusCommand builds the window manager command that focuses this node.
// The root has no focus command; ok is false for it and for unnamed outputs
// and workspaces.
func (n *Node) FocusCommand() (string, bool) {
	switch n.Type {
	case TypeRoot:
		return "", false
	case TypeOutput:
		if n.Name == "" {
			return "", false
		}
		return fmt.Sprintf("focus output %s", n.Name), true
	case TypeWorkspace:
		if n.Name == "" {
			return "", false
		}
		return fmt.Sprintf("workspace %s", n.Name), true
	case TypeCon, TypeFloatingCon, TypeDockarea:
		return fmt.Sprintf("[con_id=%d] focus", n.ID), true
	}
	return "", false
}

// Windows collects, in depth-first order, every named leaf window in the
// subtree, including floating windows on unnormalized trees.
func (n *Node) Windows() []*Node {
	var out []*Node
	n.walkWindows(&out)
	return out
}

func (n *Node) walkWindows(out *[]*Node) {
	if len(n.Nodes) == 0 && len(n.FloatingNodes) == 0 {
		if (n.Type == TypeCon || n.Type == TypeFloatingCon) && n.Name != "" {
			*out = append(*out, n)
		}
		return
	}
	for _, c := range n.Nodes {
		c.walkWindows(out)
	}
	for _, c := range n.FloatingNodes {
		c.walkWindows(out)
	}
}
