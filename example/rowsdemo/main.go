// SPDX-License-Identifier: Unlicense OR MIT

// Command rowsdemo shows a rows view of peers with an inspector panel
// for inserting, removing and moving them.
package main

import (
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/charmbracelet/log"
	"github.com/fulldump/goconfig"
)

func main() {
	c := Default()
	goconfig.Read(&c)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rowsdemo",
	})
	if lvl, err := log.ParseLevel(c.LogLevel); err != nil {
		logger.Warn("config", "err", err)
	} else {
		logger.SetLevel(lvl)
	}

	roster := DefaultRoster()
	if err := LoadRoster(&c, &roster); err != nil {
		logger.Fatal("config", "err", err)
	}
	logger.Debug("starting", "top", len(roster.Top), "bottom", len(roster.Bottom), "strategy", c.Strategy)

	go func() {
		w := new(app.Window)
		w.Option(
			app.Title("Rows"),
			app.Size(unit.Dp(c.Width), unit.Dp(c.Height)),
		)
		if err := loop(w, c, roster, logger); err != nil {
			logger.Fatal("window", "err", err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, c Config, r Roster, logger *log.Logger) error {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	ui := NewUI(th, NewController(th, logger, c, r), logger)

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			ui.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
