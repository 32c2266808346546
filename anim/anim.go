// SPDX-License-Identifier: Unlicense OR MIT

/*
Package anim describes one-shot transitions of cell frames and opacity.

A descriptor carries no duration of its own: the enclosing Transaction
supplies the begin time and the duration, much like an animation group.
Descriptors only drive presentation. Callers commit the target value
when they create the transition, so model state reads the final value
immediately and nothing is left behind once the transition ends.
*/
package anim

import (
	"image"
	"time"
)

// DefaultDuration is the duration of a rows view transaction.
const DefaultDuration = 500 * time.Millisecond

// Transaction groups transitions that share a clock.
type Transaction struct {
	Begin    time.Time
	Duration time.Duration
}

// Move interpolates a frame, easing in and out by default.
type Move struct {
	From, To image.Rectangle
	Curve    Curve
}

// Fade interpolates opacity, easing out by default. Before Delay has
// elapsed the From value is shown.
type Fade struct {
	From, To float32
	Delay    time.Duration
	Curve    Curve
}

// NewMove returns an ease-in-ease-out move from the current to the target
// frame.
func NewMove(from, to image.Rectangle) Move {
	return Move{From: from, To: to, Curve: EaseInOut}
}

// NewFade returns an ease-out fade that begins after delay.
func NewFade(from, to float32, delay time.Duration) Fade {
	return Fade{From: from, To: to, Delay: delay, Curve: EaseOut}
}

// Progress returns the linear progress at now of a transition started
// delay after the transaction began, and whether it has completed.
func (t Transaction) Progress(now time.Time, delay time.Duration) (float32, bool) {
	if t.Duration <= 0 {
		return 1, !now.Before(t.Begin.Add(delay))
	}
	elapsed := now.Sub(t.Begin.Add(delay))
	switch {
	case elapsed <= 0:
		return 0, false
	case elapsed >= t.Duration:
		return 1, true
	}
	return float32(elapsed) / float32(t.Duration), false
}

// End returns when a transition delayed by delay completes.
func (t Transaction) End(delay time.Duration) time.Time {
	return t.Begin.Add(delay + t.Duration)
}

// At returns the frame at linear progress p.
func (m Move) At(p float32) image.Rectangle {
	e := ease(m.Curve, p)
	return image.Rectangle{
		Min: lerpPt(m.From.Min, m.To.Min, e),
		Max: lerpPt(m.From.Max, m.To.Max, e),
	}
}

// At returns the opacity at linear progress p.
func (f Fade) At(p float32) float32 {
	e := ease(f.Curve, p)
	return f.From + (f.To-f.From)*e
}

func ease(c Curve, p float32) float32 {
	if c == nil {
		c = Linear
	}
	return c(p)
}

func lerpPt(a, b image.Point, t float32) image.Point {
	return image.Point{
		X: lerp(a.X, b.X, t),
		Y: lerp(a.Y, b.Y, t),
	}
}

func lerp(a, b int, t float32) int {
	v := float32(a) + float32(b-a)*t
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
