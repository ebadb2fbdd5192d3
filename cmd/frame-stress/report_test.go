package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/frameloop/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	clock := frame.NewManualClock(time.Unix(0, 0))
	s := frame.New(nopPlatform{}, frame.WithClock(clock))
	require.NoError(t, s.Add(newChurner(1, 1, 0)))
	clock.Advance(3 * frame.DefaultTargetElapsedTime)
	s.Tick()

	r := &Report{
		Duration:    time.Second,
		Components:  1,
		Settings:    frame.DefaultSettings(),
		Interrupted: true,
		Scheduler:   s.Stats(),
	}

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "- **Run Duration:** 1s (interrupted)")
	assert.Contains(t, out, "- **Updates:** 3 (3.00 per tick)")
	assert.Contains(t, out, "- 3 steps: 1 ticks")
	assert.Contains(t, out, "- **update:** 3 runs")
	assert.NotContains(t, out, "GC Pause")
}

func TestChurnerChangesState(t *testing.T) {
	c := newChurner(7, 1, 0)
	changes := 0
	c.OnUpdateOrderChanged(func() { changes++ })
	c.OnDrawOrderChanged(func() { changes++ })
	c.OnVisibleChanged(func() { changes++ })

	for range 50 {
		c.Update(frame.Time{})
	}

	assert.Positive(t, changes)
}

type nopPlatform struct{}

func (nopPlatform) BeforeUpdate(frame.Time) bool { return true }
func (nopPlatform) BeforeDraw(frame.Time) bool   { return true }
func (nopPlatform) Present()                     {}
func (nopPlatform) Exit()                        {}
func (nopPlatform) IsActive() bool               { return true }
