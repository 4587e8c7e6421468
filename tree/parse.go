// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/parse.go
// Summary: Decodes the window manager's GET_TREE JSON reply into the canonical
// node model. Unknown layout keywords degrade to LayoutOther rather than
// failing, so newer compositors stay navigable.

package tree

import (
	"encoding/json"
	"fmt"
)

type rawRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type rawNode struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Layout         string    `json:"layout"`
	Rect           rawRect   `json:"rect"`
	Focused        bool      `json:"focused"`
	Focus          []int64   `json:"focus"`
	Nodes          []rawNode `json:"nodes"`
	FloatingNodes  []rawNode `json:"floating_nodes"`
	FullscreenMode int       `json:"fullscreen_mode"`
}

// Parse decodes a GET_TREE payload into a canonical tree. The result still
// carries floating children and raw layout tags; run Normalize before
// searching it.
func Parse(data []byte) (*Node, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("tree: decoding snapshot: %w", err)
	}
	return raw.convert(), nil
}

func (r *rawNode) convert() *Node {
	n := &Node{
		ID:      r.ID,
		Name:    r.Name,
		Type:    containerType(r.Type),
		Layout:  layoutTag(r.Layout),
		Rect:    Rect(r.Rect),
		Focused: r.Focused,
		Focus:   r.Focus,
	}
	switch r.FullscreenMode {
	case 1:
		n.Fullscreen = FullscreenLocal
	case 2:
		n.Fullscreen = FullscreenGlobal
	}
	if len(r.Nodes) > 0 {
		n.Nodes = make([]*Node, len(r.Nodes))
		for i := range r.Nodes {
			n.Nodes[i] = r.Nodes[i].convert()
		}
	}
	if len(r.FloatingNodes) > 0 {
		n.FloatingNodes = make([]*Node, len(r.FloatingNodes))
		for i := range r.FloatingNodes {
			n.FloatingNodes[i] = r.FloatingNodes[i].convert()
		}
	}
	return n
}

func containerType(s string) ContainerType {
	switch s {
	case "root":
		return TypeRoot
	case "output":
		return TypeOutput
	case "workspace":
		return TypeWorkspace
	case "floating_con":
		return TypeFloatingCon
	case "dockarea":
		return TypeDockarea
	default:
		return TypeCon
	}
}

func layoutTag(s string) Layout {
	switch s {
	case "splith":
		return LayoutSplitH
	case "splitv":
		return LayoutSplitV
	case "tabbed":
		return LayoutTabbed
	case "stacked":
		return LayoutStacked
	default:
		// "output", "dockarea", "none" and anything newer.
		return LayoutOther
	}
}
