// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"encoding/binary"
	"image/color"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// Peer is a participant shown in a cell.
type Peer struct {
	ID   uuid.UUID
	Name string
}

func NewPeer(name string) *Peer {
	return &Peer{ID: uuid.New(), Name: name}
}

// Renamed returns a copy of p with a new name and the same identity.
func (p *Peer) Renamed(name string) *Peer {
	return &Peer{ID: p.ID, Name: name}
}

// Color derives the background of p's cell from its ID, so a peer keeps
// its colour across renames and moves.
func (p *Peer) Color() color.NRGBA {
	hue := float64(binary.BigEndian.Uint16(p.ID[:2])) / 0x10000 * 360
	r, g, b := colorful.Hsv(hue, 0.45, 0.85).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func peersNamed(names []string) []*Peer {
	ps := make([]*Peer, len(names))
	for i, n := range names {
		ps[i] = NewPeer(n)
	}
	return ps
}
