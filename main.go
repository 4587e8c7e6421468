// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: main.go
// Summary: CLI entry point. Wires flags, config, and the IPC client around
// the neighbor search, and hosts the auxiliary subcommands (fuzzy title
// focus, history jump, tree inspector).

package main

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/term"

	"github.com/graythane/swayfocus/config"
	"github.com/graythane/swayfocus/history"
	"github.com/graythane/swayfocus/inspect"
	"github.com/graythane/swayfocus/ipc"
	"github.com/graythane/swayfocus/nav"
	"github.com/graythane/swayfocus/tree"
)

//go:embed usage.md
var usage string

func main() {
	verbose := flag.Bool("verbose", false, "log progress to stderr")
	logFile := flag.String("log", "", "append logs to a file")
	dryRun := flag.Bool("dry-run", false, "print the focus command instead of dispatching it")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	setupLogging(*verbose, *logFile)

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Main: Config error, using defaults: %v", err)
	}

	var code int
	switch args[0] {
	case "help":
		fmt.Print(usage)
	case "tree":
		code = runInspector()
	case "prev":
		code = runPrevious(cfg, *dryRun)
	case "focus":
		code = runTitleFocus(cfg, args[1:], *dryRun)
	default:
		code = runNavigate(cfg, args, *dryRun)
	}
	os.Exit(code)
}

func setupLogging(verbose bool, logFile string) {
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "swayfocus: opening log file: %v\n", err)
			os.Exit(1)
		}
		log.SetOutput(f)
	case verbose:
		log.SetOutput(os.Stderr)
	default:
		log.SetOutput(io.Discard)
	}
}

// runNavigate is the main flow: parse targets, fetch and normalize the tree,
// search, dispatch. A search that finds no neighbor is a silent success.
func runNavigate(cfg config.Config, args []string, dryRun bool) int {
	specs := cfg.ExpandAliases(args)
	targets, err := nav.ParseTargets(specs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n\n", err)
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	client, err := ipc.Connect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n", err)
		return 1
	}
	defer client.Close()

	log.Printf("Main: Retrieving tree")
	raw, err := client.Tree()
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n", err)
		return 1
	}

	log.Printf("Main: Searching for neighbor")
	root := tree.Normalize(raw)
	neighbor := nav.Neighbor(root, targets)
	if neighbor == nil {
		log.Printf("Main: No neighbor found")
		return 0
	}

	cmd, ok := neighbor.FocusCommand()
	if !ok {
		// Only the root lacks a focus command; the search never
		// resolves to it.
		fmt.Fprintf(os.Stderr, "swayfocus: resolved node %d has no focus command\n", neighbor.ID)
		return 1
	}
	return dispatch(cfg, client, neighbor.ID, cmd, dryRun)
}

func dispatch(cfg config.Config, client *ipc.Client, conID int64, cmd string, dryRun bool) int {
	if dryRun {
		fmt.Println(cmd)
		return 0
	}
	if err := client.RunCommand(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n", err)
		return 1
	}
	recordJump(cfg, conID, cmd)
	return 0
}

// recordJump appends to the focus history. History failures never fail the
// navigation that triggered them.
func recordJump(cfg config.Config, conID int64, cmd string) {
	if cfg.History.Disabled {
		return
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		log.Printf("Main: No history path: %v", err)
		return
	}
	store, err := history.Open(path, cfg.History.Limit)
	if err != nil {
		log.Printf("Main: History unavailable: %v", err)
		return
	}
	defer store.Close()
	if err := store.Record(conID, cmd); err != nil {
		log.Printf("Main: Recording jump: %v", err)
	}
}

// runPrevious re-runs the focus command of the last jump that landed on a
// different container. Invoked repeatedly it toggles between the two most
// recent focus positions.
func runPrevious(cfg config.Config, dryRun bool) int {
	path, err := cfg.HistoryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n", err)
		return 1
	}
	store, err := history.Open(path, cfg.History.Limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n", err)
		return 1
	}
	defer store.Close()

	conID, cmd, err := store.Previous()
	if errors.Is(err, history.ErrEmpty) {
		log.Printf("Main: %v", err)
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n", err)
		return 1
	}

	client, err := ipc.Connect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n", err)
		return 1
	}
	defer client.Close()
	return dispatch(cfg, client, conID, cmd, dryRun)
}

// runTitleFocus fuzzy-matches window titles and focuses the best match.
func runTitleFocus(cfg config.Config, args []string, dryRun bool) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
	query := strings.Join(args, " ")

	client, err := ipc.Connect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n", err)
		return 1
	}
	defer client.Close()

	raw, err := client.Tree()
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n", err)
		return 1
	}

	windows := raw.Windows()
	titles := make([]string, len(windows))
	for i, w := range windows {
		titles[i] = w.Name
	}
	matches := fuzzy.Find(query, titles)
	if len(matches) == 0 {
		fmt.Fprintf(os.Stderr, "swayfocus: no window matches %q\n", query)
		return 1
	}

	best := windows[matches[0].Index]
	log.Printf("Main: %q matched window %d (%q)", query, best.ID, best.Name)
	if len(matches) > 1 && term.IsTerminal(int(os.Stderr.Fd())) {
		limit := len(matches)
		if limit > 5 {
			limit = 5
		}
		for _, m := range matches[1:limit] {
			fmt.Fprintf(os.Stderr, "  also matched: %s\n", windows[m.Index].Name)
		}
	}

	cmd := fmt.Sprintf("[con_id=%d] focus", best.ID)
	return dispatch(cfg, client, best.ID, cmd, dryRun)
}

// runInspector opens the interactive tree view. Events arrive on a second
// connection so request replies never race them.
func runInspector() int {
	client, err := ipc.Connect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n", err)
		return 1
	}
	defer client.Close()

	events, err := ipc.Connect()
	if err != nil {
		log.Printf("Main: No event connection, live refresh disabled: %v", err)
		events = nil
	} else {
		defer events.Close()
	}

	if err := inspect.Run(client, events); err != nil {
		fmt.Fprintf(os.Stderr, "swayfocus: %v\n", err)
		return 1
	}
	return 0
}
