package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/frameloop/frame"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Components int
	Scripts    int
	Churn      float64
	Work       time.Duration
	Settings   frame.Settings

	// Results
	Interrupted    bool
	TotalTime      time.Duration
	Scheduler      *frame.SchedulerStats
	FrameTime      Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Frame Scheduler Stress Report

## Test Configuration
- **Run Duration:** {{.Duration}}{{if .Interrupted}} (interrupted){{end}}
- **Synthetic Components:** {{.Components}}
- **Lua Components:** {{.Scripts}}
- **Churn:** {{.Churn}}
- **Work per Update:** {{.Work}}
- **Target Elapsed Time:** {{.Settings.TargetElapsedTime}} (max {{.Settings.MaxElapsedTime}}, fixed: {{.Settings.IsFixedTimeStep}})

## Scheduler Results
- **Total Test Time:** {{.TotalTime}}
- **Ticks:** {{.Scheduler.Ticks}}
- **Updates:** {{.Scheduler.Updates}} ({{ratio .Scheduler.Updates .Scheduler.Ticks}} per tick)
- **Draws:** {{.Scheduler.Draws}} (suppressed {{.Scheduler.SuppressedDraws}})
- **Max Steps per Tick:** {{.Scheduler.MaxStepsPerTick}}
- **Running Slowly:** {{.Scheduler.RunningSlowly}} ({{.Scheduler.SlowTransitions}} transitions, lag {{.Scheduler.Lag}})
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Phase Timings
{{range .Scheduler.Phases}}- **{{.Name}}:** {{.ExecutionCount}} runs, avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}}
{{end}}
## Steps per Tick
{{range .Scheduler.StepHistogram}}- {{.Steps}} steps: {{.Ticks}} ticks
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"ratio": func(a, b int64) string {
			if b == 0 {
				return "-"
			}
			return fmt.Sprintf("%.2f", float64(a)/float64(b))
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
