// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/preprocess_test.go
// Summary: Exercises tree normalization: workspace splitting, wrapper
// lifting, scratchpad removal, fullscreen shadowing, and idempotency.

package tree

import (
	"reflect"
	"testing"
)

func window(id int64, name string) *Node {
	return &Node{ID: id, Name: name, Type: TypeCon, Layout: LayoutOther}
}

func floatWindow(id int64, name string) *Node {
	return &Node{ID: id, Name: name, Type: TypeFloatingCon, Layout: LayoutOther}
}

func rawWorkspace(id int64, name string, focus []int64, tiled, floating []*Node) *Node {
	return &Node{
		ID: id, Name: name, Type: TypeWorkspace, Layout: LayoutSplitH,
		Focus: focus, Nodes: tiled, FloatingNodes: floating,
	}
}

func rawOutput(id int64, name string, focus []int64, kids ...*Node) *Node {
	return &Node{ID: id, Name: name, Type: TypeOutput, Layout: LayoutOther, Focus: focus, Nodes: kids}
}

func rawRoot(focus []int64, outputs ...*Node) *Node {
	return &Node{ID: 1, Name: "root", Type: TypeRoot, Layout: LayoutSplitH, Focus: focus, Nodes: outputs}
}

func TestNormalizeSplitsWorkspace(t *testing.T) {
	ws := rawWorkspace(4, "1", []int64{20, 10, 11},
		[]*Node{window(10, "a"), window(11, "b")},
		[]*Node{floatWindow(20, "f")})
	root := rawRoot([]int64{3}, rawOutput(3, "eDP-1", []int64{4}, ws))

	got := Normalize(root)

	if got.Layout != LayoutOutputs {
		t.Fatalf("root layout = %v, want outputs", got.Layout)
	}
	nws := got.Nodes[0].Nodes[0]
	if nws.ID != 4 || nws.Layout != LayoutOther {
		t.Fatalf("workspace not retagged: %+v", nws)
	}
	if len(nws.Nodes) != 2 {
		t.Fatalf("workspace has %d children, want 2", len(nws.Nodes))
	}
	if nws.FloatingNodes != nil {
		t.Fatalf("floating children not folded away")
	}

	tiled, floats := nws.Nodes[0], nws.Nodes[1]
	if tiled.Layout != LayoutSplitH || len(tiled.Nodes) != 2 {
		t.Fatalf("tiled child wrong: %+v", tiled)
	}
	if floats.Layout != LayoutFloats || len(floats.Nodes) != 1 {
		t.Fatalf("floats child wrong: %+v", floats)
	}
	if tiled.Name != "1" || floats.Name != "1" || tiled.Type != TypeWorkspace {
		t.Fatalf("synthetic children must inherit workspace identity")
	}

	// The floating window was most recently focused, so the floats child
	// leads the workspace's focus order.
	if nws.Focus[0] != floats.ID || nws.Focus[1] != tiled.ID {
		t.Fatalf("workspace focus order = %v", nws.Focus)
	}
	if !reflect.DeepEqual(tiled.Focus, []int64{10, 11}) {
		t.Fatalf("tiled focus partition = %v", tiled.Focus)
	}
	if !reflect.DeepEqual(floats.Focus, []int64{20}) {
		t.Fatalf("floats focus partition = %v", floats.Focus)
	}
}

func TestNormalizeKeepsIDsUnique(t *testing.T) {
	ws := rawWorkspace(4, "1", []int64{10},
		[]*Node{window(10, "a")},
		[]*Node{floatWindow(20, "f")})
	got := Normalize(rawRoot([]int64{3}, rawOutput(3, "eDP-1", []int64{4}, ws)))

	seen := map[int64]bool{}
	var walk func(*Node)
	walk = func(n *Node) {
		if seen[n.ID] {
			t.Fatalf("duplicate id %d after normalization", n.ID)
		}
		seen[n.ID] = true
		for _, c := range n.Nodes {
			walk(c)
		}
	}
	walk(got)
}

func TestNormalizeIdempotent(t *testing.T) {
	ws := rawWorkspace(4, "1", []int64{10, 20},
		[]*Node{window(10, "a"), window(11, "b")},
		[]*Node{floatWindow(20, "f")})
	root := rawRoot([]int64{3}, rawOutput(3, "eDP-1", []int64{4}, ws))

	once := Normalize(root)
	twice := Normalize(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalization is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
	// In particular the workspace must not be re-split into further layers.
	nws := twice.Nodes[0].Nodes[0]
	if len(nws.Nodes) != 2 || nws.Nodes[0].Layout == LayoutOther {
		t.Fatalf("workspace re-split on second normalization: %+v", nws)
	}
}

func TestNormalizeDropsScratchpad(t *testing.T) {
	ws := rawWorkspace(4, "1", nil, []*Node{window(10, "a")}, nil)
	scratch := rawOutput(8, "__i3", nil,
		rawWorkspace(9, "__i3_scratch", nil, nil, []*Node{floatWindow(30, "s")}))
	got := Normalize(rawRoot([]int64{3}, scratch, rawOutput(3, "eDP-1", []int64{4}, ws)))

	if len(got.Nodes) != 1 || got.Nodes[0].Name != "eDP-1" {
		t.Fatalf("scratchpad output not removed: %+v", got.Nodes)
	}
}

func TestNormalizeLiftsContentWrapper(t *testing.T) {
	// i3 shape: the output holds dockareas plus a single "content" wrapper
	// that owns the workspaces.
	ws := rawWorkspace(5, "1", nil, []*Node{window(10, "a")}, nil)
	content := &Node{ID: 4, Name: "content", Type: TypeCon, Layout: LayoutOther,
		Focus: []int64{5}, Nodes: []*Node{ws}}
	out := rawOutput(3, "eDP-1", []int64{4},
		&Node{ID: 6, Name: "topdock", Type: TypeDockarea},
		content,
		&Node{ID: 7, Name: "bottomdock", Type: TypeDockarea})

	got := Normalize(rawRoot([]int64{3}, out))

	nout := got.Nodes[0]
	if len(nout.Nodes) != 1 || nout.Nodes[0].ID != 5 {
		t.Fatalf("wrapper not lifted: %+v", nout.Nodes)
	}
	if !reflect.DeepEqual(nout.Focus, []int64{5}) {
		t.Fatalf("wrapper focus order not lifted: %v", nout.Focus)
	}
	if nout.Nodes[0].Type != TypeWorkspace || nout.Nodes[0].Layout != LayoutOther {
		t.Fatalf("lifted workspace not normalized: %+v", nout.Nodes[0])
	}
}

func TestNormalizeGlobalFullscreen(t *testing.T) {
	fs := window(10, "video")
	fs.Fullscreen = FullscreenGlobal
	ws1 := rawWorkspace(4, "1", []int64{10}, []*Node{fs}, nil)
	ws2 := rawWorkspace(5, "2", nil, []*Node{window(11, "other")}, nil)
	root := rawRoot([]int64{3},
		rawOutput(3, "eDP-1", []int64{4}, ws1),
		rawOutput(6, "HDMI-1", nil, ws2))

	got := Normalize(root)
	if got.ID != 10 {
		t.Fatalf("global fullscreen must replace the whole tree, got node %d", got.ID)
	}
}

func TestNormalizeLocalFullscreen(t *testing.T) {
	fs := &Node{ID: 10, Name: "video", Type: TypeCon, Layout: LayoutSplitH,
		Fullscreen: FullscreenLocal, Focused: true}
	sibling := window(11, "hidden")
	ws := rawWorkspace(4, "media", []int64{10, 11}, []*Node{fs, sibling}, nil)
	root := rawRoot([]int64{3}, rawOutput(3, "eDP-1", []int64{4}, ws))

	got := Normalize(root)
	repl := got.Nodes[0].Nodes[0]

	// The fullscreen node stands in for the workspace, keeping the
	// workspace's identity so by-name commands still resolve.
	if repl.ID != 4 || repl.Type != TypeWorkspace || repl.Name != "media" {
		t.Fatalf("identity not inherited: %+v", repl)
	}
	if !repl.Focused {
		t.Fatalf("fullscreen node's own state lost")
	}
	// The sibling is gone together with the rest of the workspace.
	for _, c := range repl.Nodes {
		if c.ID == 11 {
			t.Fatalf("fullscreen sibling survived normalization")
		}
	}
}

func TestNormalizeEmptyWorkspaceFocus(t *testing.T) {
	// A workspace with no children at all still gets its two synthetic
	// children and a resolvable focus order.
	ws := rawWorkspace(4, "1", nil, nil, nil)
	got := Normalize(rawRoot([]int64{3}, rawOutput(3, "eDP-1", []int64{4}, ws)))

	nws := got.Nodes[0].Nodes[0]
	if len(nws.Nodes) != 2 {
		t.Fatalf("expected two synthetic children, got %d", len(nws.Nodes))
	}
	if nws.FocusedChild() != nws.Nodes[0] {
		t.Fatalf("workspace focus must resolve to the tiled child")
	}
}
