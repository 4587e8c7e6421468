// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: inspect/inspect.go
// Summary: Interactive layout-tree viewer. Renders the live tree as an
// indented list, follows window-manager events, and can dispatch the focus
// command for the selected node.

package inspect

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/graythane/swayfocus/ipc"
	"github.com/graythane/swayfocus/tree"
)

type row struct {
	node     *tree.Node
	depth    int
	floating bool
}

// Inspector is the interactive tree view state.
type Inspector struct {
	screen tcell.Screen
	client *ipc.Client

	root    *tree.Node
	rows    []row
	labels  []string
	visible []int // indexes into rows, after filtering

	cursor    int // index into visible
	top       int
	filtering bool
	query     string
	status    string
}

// Run fetches the layout tree and drives the viewer until the user quits.
// events, when non-nil, must be a second connection; it is subscribed to
// window and workspace events and triggers automatic refreshes.
func Run(client, events *ipc.Client) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("inspect: creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("inspect: initializing screen: %w", err)
	}
	defer screen.Fini()

	ins := &Inspector{screen: screen, client: client}
	if err := ins.refresh(); err != nil {
		return err
	}

	if events != nil {
		if err := events.Subscribe("window", "workspace"); err != nil {
			log.Printf("Inspect: Event subscription failed: %v", err)
		} else {
			go func() {
				for {
					if _, _, err := events.NextEvent(); err != nil {
						return
					}
					_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
				}
			}()
		}
	}

	for {
		ins.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
			if err := ins.refresh(); err != nil {
				ins.status = err.Error()
			}
		case *tcell.EventKey:
			if done := ins.handleKey(ev); done {
				return nil
			}
		}
	}
}

func (i *Inspector) refresh() error {
	root, err := i.client.Tree()
	if err != nil {
		return err
	}
	i.root = root
	i.rows = i.rows[:0]
	i.flatten(root, 0, false)
	i.labels = make([]string, len(i.rows))
	for n, r := range i.rows {
		i.labels[n] = label(r.node)
	}
	i.applyFilter()
	return nil
}

func (i *Inspector) flatten(n *tree.Node, depth int, floating bool) {
	i.rows = append(i.rows, row{node: n, depth: depth, floating: floating})
	for _, c := range n.Nodes {
		i.flatten(c, depth+1, false)
	}
	for _, c := range n.FloatingNodes {
		i.flatten(c, depth+1, true)
	}
}

// applyFilter recomputes the visible rows from the fuzzy query, keeping the
// cursor in range.
func (i *Inspector) applyFilter() {
	i.visible = i.visible[:0]
	if i.query == "" {
		for n := range i.rows {
			i.visible = append(i.visible, n)
		}
	} else {
		for _, m := range fuzzy.Find(i.query, i.labels) {
			i.visible = append(i.visible, m.Index)
		}
	}
	if i.cursor >= len(i.visible) {
		i.cursor = len(i.visible) - 1
	}
	if i.cursor < 0 {
		i.cursor = 0
	}
}

func (i *Inspector) handleKey(ev *tcell.EventKey) bool {
	if i.filtering {
		switch ev.Key() {
		case tcell.KeyEscape:
			i.filtering, i.query = false, ""
			i.applyFilter()
		case tcell.KeyEnter:
			i.filtering = false
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(i.query) > 0 {
				i.query = i.query[:len(i.query)-1]
				i.applyFilter()
			}
		case tcell.KeyRune:
			i.query += string(ev.Rune())
			i.applyFilter()
		}
		return false
	}

	switch {
	case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
		return true
	case ev.Key() == tcell.KeyDown, ev.Rune() == 'j':
		if i.cursor < len(i.visible)-1 {
			i.cursor++
		}
	case ev.Key() == tcell.KeyUp, ev.Rune() == 'k':
		if i.cursor > 0 {
			i.cursor--
		}
	case ev.Rune() == 'g':
		i.cursor = 0
	case ev.Rune() == 'G':
		i.cursor = len(i.visible) - 1
	case ev.Rune() == '/':
		i.filtering = true
		i.query = ""
		i.applyFilter()
	case ev.Rune() == 'r':
		if err := i.refresh(); err != nil {
			i.status = err.Error()
		} else {
			i.status = "refreshed"
		}
	case ev.Key() == tcell.KeyEnter:
		i.focusSelected()
	}
	return false
}

func (i *Inspector) focusSelected() {
	if len(i.visible) == 0 {
		return
	}
	n := i.rows[i.visible[i.cursor]].node
	cmd, ok := n.FocusCommand()
	if !ok {
		i.status = "selected node has no focus command"
		return
	}
	if err := i.client.RunCommand(cmd); err != nil {
		i.status = err.Error()
		return
	}
	i.status = cmd
	if err := i.refresh(); err != nil {
		i.status = err.Error()
	}
}

func (i *Inspector) draw() {
	i.screen.Clear()
	w, h := i.screen.Size()
	if h < 3 {
		i.screen.Show()
		return
	}

	header := fmt.Sprintf(" swayfocus tree (%d nodes)", len(i.rows))
	if i.query != "" {
		header += fmt.Sprintf(" (filter: %s)", i.query)
	}
	drawLine(i.screen, 0, 0, w, header, tcell.StyleDefault.Reverse(true))

	body := h - 2
	if i.cursor < i.top {
		i.top = i.cursor
	}
	if i.cursor >= i.top+body {
		i.top = i.cursor - body + 1
	}

	for y := 0; y < body && i.top+y < len(i.visible); y++ {
		r := i.rows[i.visible[i.top+y]]
		style := tcell.StyleDefault
		marker := "  "
		if i.top+y == i.cursor {
			style = style.Reverse(true)
			marker = "> "
		}
		text := marker + indent(r.depth) + rowText(r)
		drawLine(i.screen, 0, y+1, w, runewidth.Truncate(text, w, "…"), style)
	}

	status := i.status
	if i.filtering {
		status = "/" + i.query
	} else if status == "" {
		status = " j/k move  enter focus  / filter  r refresh  q quit"
	}
	drawLine(i.screen, 0, h-1, w, status, tcell.StyleDefault.Dim(true))
	i.screen.Show()
}

func rowText(r row) string {
	text := label(r.node)
	if r.floating {
		text = "~ " + text
	}
	if r.node.Focused {
		text = "* " + text
	}
	return text
}

func label(n *tree.Node) string {
	name := n.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("[%s/%s] %s  %dx%d+%d+%d",
		n.Type, n.Layout, name, n.Rect.Width, n.Rect.Height, n.Rect.X, n.Rect.Y)
}

func indent(depth int) string {
	const pad = "                                                            "
	if depth*2 > len(pad) {
		depth = len(pad) / 2
	}
	return pad[:depth*2]
}

func drawLine(s tcell.Screen, x, y, w int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= w {
			break
		}
		s.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	for ; col < w; col++ {
		s.SetContent(col, y, ' ', nil, style)
	}
}
