// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/parse_test.go
// Summary: Exercises GET_TREE decoding against a realistic snapshot excerpt.

package tree

import "testing"

const sampleTree = `{
	"id": 1,
	"name": "root",
	"type": "root",
	"layout": "splith",
	"rect": {"x": 0, "y": 0, "width": 3840, "height": 1080},
	"focused": false,
	"focus": [3],
	"nodes": [
		{
			"id": 3,
			"name": "eDP-1",
			"type": "output",
			"layout": "output",
			"rect": {"x": 0, "y": 0, "width": 1920, "height": 1080},
			"focused": false,
			"focus": [4],
			"nodes": [
				{
					"id": 4,
					"name": "1",
					"type": "workspace",
					"layout": "splith",
					"rect": {"x": 0, "y": 0, "width": 1920, "height": 1080},
					"focused": false,
					"focus": [7, 5],
					"nodes": [
						{
							"id": 5,
							"name": "term",
							"type": "con",
							"layout": "none",
							"rect": {"x": 0, "y": 0, "width": 960, "height": 1080},
							"focused": false,
							"focus": [],
							"nodes": [],
							"fullscreen_mode": 0
						},
						{
							"id": 7,
							"name": "browser",
							"type": "con",
							"layout": "none",
							"rect": {"x": 960, "y": 0, "width": 960, "height": 1080},
							"focused": true,
							"focus": [],
							"nodes": [],
							"fullscreen_mode": 1
						}
					],
					"floating_nodes": [
						{
							"id": 9,
							"name": "dialog",
							"type": "floating_con",
							"layout": "none",
							"rect": {"x": 100, "y": 100, "width": 400, "height": 300},
							"focused": false,
							"focus": [],
							"nodes": [],
							"fullscreen_mode": 2
						}
					]
				}
			]
		}
	]
}`

func TestParse(t *testing.T) {
	root, err := Parse([]byte(sampleTree))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if root.ID != 1 || root.Type != TypeRoot {
		t.Fatalf("unexpected root: %+v", root)
	}
	if len(root.Nodes) != 1 {
		t.Fatalf("expected one output, got %d", len(root.Nodes))
	}

	out := root.Nodes[0]
	if out.Type != TypeOutput || out.Name != "eDP-1" {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.Layout != LayoutOther {
		t.Fatalf("output layout should degrade to Other, got %v", out.Layout)
	}

	ws := out.Nodes[0]
	if ws.Type != TypeWorkspace || ws.Layout != LayoutSplitH {
		t.Fatalf("unexpected workspace: %+v", ws)
	}
	if len(ws.Focus) != 2 || ws.Focus[0] != 7 {
		t.Fatalf("focus order not preserved: %v", ws.Focus)
	}
	if len(ws.FloatingNodes) != 1 || ws.FloatingNodes[0].Type != TypeFloatingCon {
		t.Fatalf("floating child missing: %+v", ws.FloatingNodes)
	}

	browser := ws.Nodes[1]
	if !browser.Focused {
		t.Fatalf("focused flag lost")
	}
	if browser.Fullscreen != FullscreenLocal {
		t.Fatalf("expected local fullscreen, got %v", browser.Fullscreen)
	}
	if ws.FloatingNodes[0].Fullscreen != FullscreenGlobal {
		t.Fatalf("expected global fullscreen, got %v", ws.FloatingNodes[0].Fullscreen)
	}
	if browser.Rect != (Rect{X: 960, Y: 0, Width: 960, Height: 1080}) {
		t.Fatalf("unexpected rect: %+v", browser.Rect)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestLayoutTags(t *testing.T) {
	cases := map[string]Layout{
		"splith":   LayoutSplitH,
		"splitv":   LayoutSplitV,
		"tabbed":   LayoutTabbed,
		"stacked":  LayoutStacked,
		"output":   LayoutOther,
		"dockarea": LayoutOther,
		"none":     LayoutOther,
		"new-toy":  LayoutOther,
	}
	for s, want := range cases {
		if got := layoutTag(s); got != want {
			t.Errorf("layoutTag(%q) = %v, want %v", s, got, want)
		}
	}
}
