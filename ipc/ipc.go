// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ipc/ipc.go
// Summary: Wire framing for the i3/sway IPC protocol: a 6-byte magic, a
// little-endian payload length and message type, then a JSON payload.

package ipc

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
)

var magic = [6]byte{'i', '3', '-', 'i', 'p', 'c'}

const headerSize = 14

// maxPayload bounds incoming frames; a GET_TREE reply for even very large
// sessions stays well under this.
const maxPayload = 64 << 20

// MessageType enumerates the request and event categories of the protocol.
// Event types have the high bit set.
type MessageType uint32

const (
	MsgRunCommand    MessageType = 0
	MsgGetWorkspaces MessageType = 1
	MsgSubscribe     MessageType = 2
	MsgGetOutputs    MessageType = 3
	MsgGetTree       MessageType = 4
	MsgGetVersion    MessageType = 7
)

const (
	EventWorkspace MessageType = 0x80000000
	EventWindow    MessageType = 0x80000003
	EventShutdown  MessageType = 0x80000006
)

// IsEvent reports whether the type carries an asynchronous event rather than
// a reply.
func (t MessageType) IsEvent() bool {
	return t&0x80000000 != 0
}

var (
	ErrInvalidMagic    = errors.New("ipc: invalid magic")
	ErrPayloadTooLarge = errors.New("ipc: payload exceeds frame limit")
	ErrNoSocket        = errors.New("ipc: no socket path; set $SWAYSOCK or $I3SOCK")
)

// writeMessage serialises one frame. The payload is written as-is; callers
// retain ownership of the buffer.
func writeMessage(w io.Writer, mt MessageType, payload []byte) error {
	buf := make([]byte, headerSize)
	copy(buf[0:6], magic[:])
	binary.LittleEndian.PutUint32(buf[6:10], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[10:14], uint32(mt))
	if _, err := w.Write(buf); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// readMessage reads one frame. The returned payload is freshly allocated.
func readMessage(r io.Reader) (MessageType, []byte, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, nil, err
	}
	if [6]byte(buf[0:6]) != magic {
		return 0, nil, ErrInvalidMagic
	}
	length := binary.LittleEndian.Uint32(buf[6:10])
	mt := MessageType(binary.LittleEndian.Uint32(buf[10:14]))
	if length > maxPayload {
		return mt, nil, ErrPayloadTooLarge
	}
	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return mt, nil, err
		}
	}
	return mt, payload, nil
}

// SocketPath resolves the window manager's socket from the environment,
// preferring sway's variable over i3's.
func SocketPath() (string, error) {
	if p := os.Getenv("SWAYSOCK"); p != "" {
		return p, nil
	}
	if p := os.Getenv("I3SOCK"); p != "" {
		return p, nil
	}
	return "", ErrNoSocket
}
