package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/frameloop/frame"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type gridCanvas struct {
	width, height int
	text          []string
}

func (g *gridCanvas) Text(x, y int, s string) {
	g.text = append(g.text, s)
}

func (g *gridCanvas) Size() (int, int) {
	return g.width, g.height
}

func TestBouncerStaysOnScreen(t *testing.T) {
	canvas := &gridCanvas{width: 20, height: 5}
	b := newBouncer("(o)")
	b.canvas = canvas

	for range 500 {
		b.Update(frame.Time{Elapsed: 50 * time.Millisecond})
		assert.GreaterOrEqual(t, b.x, 0.0)
		assert.LessOrEqual(t, b.x, 17.0)
		assert.GreaterOrEqual(t, b.y, 1.0)
		assert.LessOrEqual(t, b.y, 4.0)
	}
}

func TestHandleKey(t *testing.T) {
	s := frame.New(nil)
	b := newBouncer("x")
	log := zap.NewNop()

	handleKey(s, b, log, tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	assert.False(t, s.IsFixedTimeStep())

	handleKey(s, b, log, tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone))
	assert.Equal(t, time.Second/50, s.TargetElapsedTime())

	for range 5 {
		handleKey(s, b, log, tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone))
	}
	assert.Equal(t, time.Second/10, s.TargetElapsedTime(), "rates at or below zero are rejected")

	handleKey(s, b, log, tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone))
	assert.False(t, b.Visible())
}

func TestStatusLine(t *testing.T) {
	canvas := &gridCanvas{width: 80, height: 24}
	s := frame.New(nil)
	l := newStatusLine(s, canvas)

	l.Draw(frame.Time{Total: 2 * time.Second, RunningSlowly: true})

	assert.Len(t, canvas.text, 1)
	assert.True(t, strings.HasPrefix(canvas.text[0], "2s fixed"))
	assert.Contains(t, canvas.text[0], "SLOW")
}
