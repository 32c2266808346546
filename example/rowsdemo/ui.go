// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/charmbracelet/log"

	"github.com/rowsview/rowsview/rows"
)

const inspectorWidth = unit.Dp(260)

// slotField reads a coordinate from an index editor and a row selector.
type slotField struct {
	index widget.Editor
	row   widget.Enum
}

// UI lays out the view next to an inspector panel that drives the
// controller.
type UI struct {
	theme *material.Theme
	ctl   *Controller
	log   *log.Logger
	list  widget.List

	name     widget.Editor
	insertAt slotField
	removeAt slotField
	moveFrom slotField
	moveTo   slotField
	animated widget.Bool

	insert, remove, move  widget.Clickable
	enlarge, collapse     widget.Clickable
	rename, refresh       widget.Clickable
	toggleStrategy, reset widget.Clickable
}

func NewUI(th *material.Theme, ctl *Controller, logger *log.Logger) *UI {
	u := &UI{theme: th, ctl: ctl, log: logger}
	u.list.Axis = layout.Vertical
	u.name.SingleLine = true
	u.name.SetText("New")
	for _, f := range []*slotField{&u.insertAt, &u.removeAt, &u.moveFrom, &u.moveTo} {
		f.index.SingleLine = true
		f.index.SetText("0")
		f.row.Value = "top"
	}
	u.animated.Value = true
	return u
}

func (u *UI) Layout(gtx layout.Context) layout.Dimensions {
	u.update(gtx)
	return layout.Flex{}.Layout(gtx,
		layout.Flexed(1, u.ctl.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			w := gtx.Dp(inspectorWidth)
			gtx.Constraints.Min.X, gtx.Constraints.Max.X = w, w
			return u.inspector(gtx)
		}),
	)
}

// update handles the clicks of the previous frame.
func (u *UI) update(gtx layout.Context) {
	animated := u.animated.Value
	if u.insert.Clicked(gtx) {
		u.report("insert", func() error {
			at, err := u.insertAt.coordinate()
			if err != nil {
				return err
			}
			return u.ctl.Insert(u.name.Text(), at, animated)
		})
	}
	if u.remove.Clicked(gtx) {
		u.report("remove", func() error {
			at, err := u.removeAt.coordinate()
			if err != nil {
				return err
			}
			return u.ctl.Remove(at, animated)
		})
	}
	if u.move.Clicked(gtx) {
		u.report("move", func() error {
			from, err := u.moveFrom.coordinate()
			if err != nil {
				return err
			}
			to, err := u.moveTo.coordinate()
			if err != nil {
				return err
			}
			return u.ctl.Move(from, to, animated)
		})
	}
	if u.rename.Clicked(gtx) {
		u.report("rename", func() error {
			at, err := u.insertAt.coordinate()
			if err != nil {
				return err
			}
			return u.ctl.Rename(at, u.name.Text())
		})
	}
	if u.enlarge.Clicked(gtx) {
		u.report("enlarge first", func() error { return u.ctl.EnlargeFirst(animated) })
	}
	if u.collapse.Clicked(gtx) {
		u.report("collapse first", func() error { return u.ctl.CollapseFirst(animated) })
	}
	if u.refresh.Clicked(gtx) {
		u.ctl.Refresh()
	}
	if u.toggleStrategy.Clicked(gtx) {
		u.ctl.ToggleStrategy()
	}
	if u.reset.Clicked(gtx) {
		u.ctl.Reload()
	}
}

func (u *UI) report(op string, f func() error) {
	if err := f(); err != nil {
		u.log.Warn("rejected", "op", op, "err", err)
	}
}

func (u *UI) inspector(gtx layout.Context) layout.Dimensions {
	th := u.theme
	widgets := []layout.Widget{
		material.Subtitle1(th, "Insert").Layout,
		material.Editor(th, &u.name, "Name").Layout,
		u.insertAt.layout(th, "Index"),
		u.buttons(&u.insert, "Insert", &u.rename, "Rename"),
		material.Subtitle1(th, "Remove").Layout,
		u.removeAt.layout(th, "Index"),
		u.buttons(&u.remove, "Remove", nil, ""),
		material.Subtitle1(th, "Move").Layout,
		u.moveFrom.layout(th, "From"),
		u.moveTo.layout(th, "To"),
		u.buttons(&u.move, "Move", nil, ""),
		u.buttons(&u.enlarge, "Enlarge first", &u.collapse, "Collapse first"),
		material.CheckBox(th, &u.animated, "Animated").Layout,
		u.buttons(&u.toggleStrategy, "Strategy", &u.reset, "Reload"),
		u.buttons(&u.refresh, "New cells", nil, ""),
	}
	inset := layout.UniformInset(unit.Dp(8))
	return material.List(th, &u.list).Layout(gtx, len(widgets), func(gtx layout.Context, i int) layout.Dimensions {
		return inset.Layout(gtx, widgets[i])
	})
}

// buttons lays out one or two buttons side by side.
func (u *UI) buttons(a *widget.Clickable, la string, b *widget.Clickable, lb string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Flexed(1, material.Button(u.theme, a, la).Layout),
		}
		if b != nil {
			children = append(children,
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Flexed(1, material.Button(u.theme, b, lb).Layout),
			)
		}
		return layout.Flex{}.Layout(gtx, children...)
	}
}

func (f *slotField) layout(th *material.Theme, hint string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, material.Editor(th, &f.index, hint).Layout),
			layout.Rigid(material.RadioButton(th, &f.row, "top", "Top").Layout),
			layout.Rigid(material.RadioButton(th, &f.row, "bottom", "Bottom").Layout),
		)
	}
}

func (f *slotField) coordinate() (rows.Coordinate, error) {
	return parseCoordinate(f.index.Text(), f.row.Value)
}
