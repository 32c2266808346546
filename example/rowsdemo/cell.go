// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

var cellBorder = color.NRGBA{A: 0x60}

// PeerCell draws a peer's name centered on its colour.
type PeerCell struct {
	theme *material.Theme
	peer  *Peer
}

func newPeerCell(th *material.Theme) *PeerCell {
	return &PeerCell{theme: th}
}

func (c *PeerCell) SetItem(p *Peer) { c.peer = p }

func (c *PeerCell) Item() *Peer { return c.peer }

func (c *PeerCell) Layout(gtx layout.Context) layout.Dimensions {
	if c.peer == nil {
		return layout.Dimensions{Size: gtx.Constraints.Min}
	}
	paint.Fill(gtx.Ops, c.peer.Color())
	border := widget.Border{Color: cellBorder, Width: unit.Dp(1)}
	return border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			l := material.H4(c.theme, c.peer.Name)
			l.Alignment = text.Middle
			return l.Layout(gtx)
		})
	})
}
