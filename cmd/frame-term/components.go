package main

import (
	"fmt"

	"github.com/plus3/frameloop/frame"
	"github.com/plus3/frameloop/frame/platform/terminal"
)

// bouncer moves a label around the screen at a fixed speed in cells per second.
type bouncer struct {
	frame.DrawableComponent
	canvas terminal.Canvas
	label  string
	x, y   float64
	dx, dy float64
}

func newBouncer(label string) *bouncer {
	return &bouncer{
		DrawableComponent: frame.NewDrawableComponent(),
		label:             label,
		x:                 1,
		y:                 2,
		dx:                12,
		dy:                6,
	}
}

func (b *bouncer) Update(t frame.Time) {
	width, height := b.canvas.Size()
	maxX := float64(width - len(b.label))
	maxY := float64(height - 1)

	b.x += b.dx * t.Seconds()
	b.y += b.dy * t.Seconds()
	if b.x < 0 || b.x > maxX {
		b.dx = -b.dx
		b.x = min(max(b.x, 0), maxX)
	}
	if b.y < 1 || b.y > maxY {
		b.dy = -b.dy
		b.y = min(max(b.y, 1), maxY)
	}
}

func (b *bouncer) Draw(frame.Time) {
	b.canvas.Text(int(b.x), int(b.y), b.label)
}

// statusLine draws scheduler state on the top row after everything else.
type statusLine struct {
	frame.DrawableComponent
	scheduler *frame.Scheduler
	canvas    terminal.Canvas
}

func newStatusLine(s *frame.Scheduler, canvas terminal.Canvas) *statusLine {
	l := &statusLine{
		DrawableComponent: frame.NewDrawableComponent(),
		scheduler:         s,
		canvas:            canvas,
	}
	l.SetDrawOrder(100)
	return l
}

func (l *statusLine) Draw(t frame.Time) {
	mode := "fixed"
	if !l.scheduler.IsFixedTimeStep() {
		mode = "variable"
	}
	slow := ""
	if t.RunningSlowly {
		slow = " SLOW"
	}
	l.canvas.Text(0, 0, fmt.Sprintf("%s %s step=%s elapsed=%s lag=%d%s  [f]ixed [+/-]rate [h]ide [s]kip Esc",
		t.Total.Truncate(1e6), mode, l.scheduler.TargetElapsedTime().Truncate(1e3), t.Elapsed.Truncate(1e3),
		l.scheduler.Lag(), slow))
}
