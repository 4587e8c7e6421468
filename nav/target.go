// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: nav/target.go
// Summary: Target specifications for the neighbor search and their textual
// form. A target names the container kind to move within, the direction, and
// the policy at the edge of the sibling list.

package nav

import (
	"errors"
	"fmt"

	"github.com/graythane/swayfocus/tree"
)

// Kind selects which containers a target applies to.
type Kind int

const (
	KindSplit Kind = iota
	KindGroup
	KindFloat
	KindWorkspace
	KindOutput
)

func (k Kind) String() string {
	switch k {
	case KindSplit:
		return "split"
	case KindGroup:
		return "group"
	case KindFloat:
		return "float"
	case KindWorkspace:
		return "workspace"
	case KindOutput:
		return "output"
	}
	return "unknown"
}

// EdgeMode is the policy applied when a search would move past the first or
// last sibling.
type EdgeMode int

const (
	// EdgeStop keeps focus where it is and halts the whole search.
	EdgeStop EdgeMode = iota
	// EdgeWrap focuses the opposite end of the sibling list.
	EdgeWrap
	// EdgeTraverse spills into the next matching ancestor; on descent it
	// enters a container at the end nearest the origin.
	EdgeTraverse
	// EdgeInactive spills like Traverse but enters a container at its
	// second-most-recently-focused child.
	EdgeInactive
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeStop:
		return "stop"
	case EdgeWrap:
		return "wrap"
	case EdgeTraverse:
		return "traverse"
	case EdgeInactive:
		return "inactive"
	}
	return "unknown"
}

// Target describes one neighbor-search attempt. Searches take a prioritized
// list of targets and use the first one that matches an ancestor container.
type Target struct {
	Kind     Kind
	Backward bool
	Vertical bool
	Edge     EdgeMode
}

func (t Target) String() string {
	dir := map[[2]bool]string{
		{false, false}: "r",
		{true, false}:  "l",
		{false, true}:  "d",
		{true, true}:   "u",
	}[[2]bool{t.Backward, t.Vertical}]
	edge := map[EdgeMode]string{
		EdgeStop:     "s",
		EdgeWrap:     "w",
		EdgeTraverse: "t",
		EdgeInactive: "i",
	}[t.Edge]
	return fmt.Sprintf("%s-%s%s", t.Kind, dir, edge)
}

// ErrBadTarget reports a target spec that does not follow the
// <kind>-<direction><edge> syntax.
var ErrBadTarget = errors.New("nav: malformed target spec")

// ParseTarget parses a single spec like "split-rt": kind, then one direction
// character (r/l/d/u), then one edge-mode character (s/w/t/i).
func ParseTarget(s string) (Target, error) {
	var t Target
	dash := -1
	for i, r := range s {
		if r == '-' {
			dash = i
			break
		}
	}
	if dash < 0 || len(s) != dash+3 {
		return t, fmt.Errorf("%w: %q", ErrBadTarget, s)
	}

	switch s[:dash] {
	case "split":
		t.Kind = KindSplit
	case "group":
		t.Kind = KindGroup
	case "float":
		t.Kind = KindFloat
	case "workspace":
		t.Kind = KindWorkspace
	case "output":
		t.Kind = KindOutput
	default:
		return t, fmt.Errorf("%w: unknown kind in %q", ErrBadTarget, s)
	}

	switch s[dash+1] {
	case 'r':
	case 'l':
		t.Backward = true
	case 'd':
		t.Vertical = true
	case 'u':
		t.Backward, t.Vertical = true, true
	default:
		return t, fmt.Errorf("%w: unknown direction in %q", ErrBadTarget, s)
	}

	switch s[dash+2] {
	case 's':
		t.Edge = EdgeStop
	case 'w':
		t.Edge = EdgeWrap
	case 't':
		t.Edge = EdgeTraverse
	case 'i':
		t.Edge = EdgeInactive
	default:
		return t, fmt.Errorf("%w: unknown edge mode in %q", ErrBadTarget, s)
	}
	return t, nil
}

// ParseTargets parses a prioritized, non-empty spec list.
func ParseTargets(args []string) ([]Target, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: no targets given", ErrBadTarget)
	}
	targets := make([]Target, len(args))
	for i, a := range args {
		t, err := ParseTarget(a)
		if err != nil {
			return nil, err
		}
		targets[i] = t
	}
	return targets, nil
}

// Match returns the first target that applies at the given container. A
// target matches the parent whose children it would move between: an Output
// target matches the root, a Workspace target matches an output, and the
// container kinds match by layout tag.
func Match(n *tree.Node, targets []Target) (Target, bool) {
	for _, t := range targets {
		if matches(n, t) {
			return t, true
		}
	}
	return Target{}, false
}

func matches(n *tree.Node, t Target) bool {
	switch t.Kind {
	case KindOutput:
		return n.Layout == tree.LayoutOutputs
	case KindWorkspace:
		return n.Type == tree.TypeOutput
	case KindSplit:
		if t.Vertical {
			return n.Layout == tree.LayoutSplitV
		}
		return n.Layout == tree.LayoutSplitH
	case KindGroup:
		if t.Vertical {
			return n.Layout == tree.LayoutStacked
		}
		return n.Layout == tree.LayoutTabbed
	case KindFloat:
		return n.Layout == tree.LayoutFloats
	}
	return false
}
