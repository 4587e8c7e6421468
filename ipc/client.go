// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ipc/client.go
// Summary: Request/reply client for the window manager socket. One client per
// concern: request clients interleave replies with deadlines, event clients
// block on Subscribe/NextEvent without one.

package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/graythane/swayfocus/tree"
)

const dialTimeout = 5 * time.Second

// ErrCommandFailed reports that the window manager rejected a dispatched
// command.
var ErrCommandFailed = errors.New("ipc: command failed")

// Client is a connection to the window manager's IPC socket.
type Client struct {
	conn    net.Conn
	timeout time.Duration
}

// Dial connects to the socket at path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("ipc: dialing %s: %w", path, err)
	}
	return &Client{conn: conn, timeout: dialTimeout}, nil
}

// Connect resolves the socket path from the environment and dials it.
func Connect() (*Client, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}
	return Dial(path)
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// roundTrip sends one request and reads frames until the matching reply
// arrives, discarding any interleaved events.
func (c *Client) roundTrip(mt MessageType, payload []byte) ([]byte, error) {
	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, err
	}
	defer c.conn.SetDeadline(time.Time{})

	if err := writeMessage(c.conn, mt, payload); err != nil {
		return nil, fmt.Errorf("ipc: sending request: %w", err)
	}
	for {
		got, reply, err := readMessage(c.conn)
		if err != nil {
			return nil, fmt.Errorf("ipc: reading reply: %w", err)
		}
		if got.IsEvent() {
			continue
		}
		if got != mt {
			return nil, fmt.Errorf("ipc: unexpected reply type %d to request %d", got, mt)
		}
		return reply, nil
	}
}

// RawTree fetches the GET_TREE payload without decoding it.
func (c *Client) RawTree() ([]byte, error) {
	return c.roundTrip(MsgGetTree, nil)
}

// Tree fetches and decodes the current layout tree. The result is raw; run
// tree.Normalize before searching it.
func (c *Client) Tree() (*tree.Node, error) {
	payload, err := c.RawTree()
	if err != nil {
		return nil, err
	}
	return tree.Parse(payload)
}

type commandResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RunCommand dispatches a command string and checks every per-command result.
func (c *Client) RunCommand(cmd string) error {
	log.Printf("IPC: Running command %q", cmd)
	reply, err := c.roundTrip(MsgRunCommand, []byte(cmd))
	if err != nil {
		return err
	}
	var results []commandResult
	if err := json.Unmarshal(reply, &results); err != nil {
		return fmt.Errorf("ipc: decoding command reply: %w", err)
	}
	for _, r := range results {
		if !r.Success {
			return fmt.Errorf("%w: %s", ErrCommandFailed, r.Error)
		}
	}
	return nil
}

type subscribeResult struct {
	Success bool `json:"success"`
}

// Subscribe registers this connection for the named events ("window",
// "workspace", ...). After subscribing, the connection should only be used
// through NextEvent.
func (c *Client) Subscribe(events ...string) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return err
	}
	reply, err := c.roundTrip(MsgSubscribe, payload)
	if err != nil {
		return err
	}
	var res subscribeResult
	if err := json.Unmarshal(reply, &res); err != nil {
		return fmt.Errorf("ipc: decoding subscribe reply: %w", err)
	}
	if !res.Success {
		return fmt.Errorf("%w: subscribe rejected", ErrCommandFailed)
	}
	return nil
}

// NextEvent blocks until the next event frame arrives. It never times out;
// close the client to unblock it.
func (c *Client) NextEvent() (MessageType, []byte, error) {
	for {
		mt, payload, err := readMessage(c.conn)
		if err != nil {
			return 0, nil, err
		}
		if mt.IsEvent() {
			return mt, payload, nil
		}
	}
}
