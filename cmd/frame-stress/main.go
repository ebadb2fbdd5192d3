package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/plus3/frameloop/frame"
	"github.com/plus3/frameloop/frame/platform/headless"
	"github.com/plus3/frameloop/frame/script"
	"github.com/plus3/frameloop/internal/config"
	"github.com/plus3/frameloop/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "frame-stress: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file.")
	duration := flag.Duration("duration", 0, "The total duration the test should run for.")
	components := flag.Int("components", 0, "The number of synthetic components to register.")
	churn := flag.Float64("churn", 0, "Chance per update that a component changes its order or state.")
	work := flag.Duration("work", 0, "Busy time spent in every update.")
	fixed := flag.Bool("fixed", true, "Use fixed time steps.")
	scriptsDir := flag.String("scripts", "", "Directory of Lua components to load as well.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			cfg.Stress.Duration = *duration
		case "components":
			cfg.Stress.Components = *components
		case "churn":
			cfg.Stress.Churn = *churn
		case "work":
			cfg.Stress.Work = *work
		case "fixed":
			cfg.Timing.FixedTimeStep = *fixed
		case "scripts":
			cfg.Scripts.Dir = *scriptsDir
		}
	})

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	settings, err := cfg.Timing.Settings()
	if err != nil {
		return err
	}

	platform := headless.New()
	scheduler := frame.New(platform,
		frame.WithLogger(log),
		frame.WithCapabilities(cfg.Platform.Capabilities()))
	if err := scheduler.Apply(settings); err != nil {
		return err
	}

	log.Info("populating scheduler", zap.Int("components", cfg.Stress.Components))
	for i := 0; i < cfg.Stress.Components; i++ {
		if err := scheduler.Add(newChurner(uint64(i), cfg.Stress.Churn, cfg.Stress.Work)); err != nil {
			return err
		}
	}

	engine := script.NewEngine(log, script.WithCanvas(discardCanvas{}))
	defer engine.Close()

	scripts, err := engine.LoadDir(cfg.Scripts.Dir)
	if err != nil {
		return fmt.Errorf("load scripts: %w", err)
	}
	for _, c := range scripts {
		if err := scheduler.Add(c); err != nil {
			return err
		}
	}

	report := &Report{
		Duration:       cfg.Stress.Duration,
		Components:     cfg.Stress.Components,
		Scripts:        len(scripts),
		Churn:          cfg.Stress.Churn,
		Work:           cfg.Stress.Work,
		Settings:       settings,
		GCPauseMetrics: *gcPauseMetrics,
	}

	lastPresent := time.Now()
	platform.OnPresent = func() {
		now := time.Now()
		report.FrameTime.Samples = append(report.FrameTime.Samples, now.Sub(lastPresent))
		lastPresent = now
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", cfg.Stress.Duration))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Stress.Duration)
	defer cancel()

	startTime := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		err := scheduler.Run(gctx)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			log.Info("interrupted", zap.String("signal", sig.String()))
			report.Interrupted = true
			cancel()
		case <-gctx.Done():
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	report.TotalTime = time.Since(startTime)
	report.Scheduler = scheduler.Stats()
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int64("ticks", report.Scheduler.Ticks))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}

// churner is a synthetic component that burns CPU and randomly reorders or
// hides itself, forcing the registries to re-sort.
type churner struct {
	frame.DrawableComponent
	rng   *rand.Rand
	churn float64
	work  time.Duration
	sink  float64
}

func newChurner(seed uint64, churn float64, work time.Duration) *churner {
	return &churner{
		DrawableComponent: frame.NewDrawableComponent(),
		rng:               rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		churn:             churn,
		work:              work,
	}
}

func (c *churner) Update(frame.Time) {
	if c.work > 0 {
		deadline := time.Now().Add(c.work)
		for time.Now().Before(deadline) {
			c.sink += c.rng.Float64()
		}
	}

	if c.rng.Float64() >= c.churn {
		return
	}
	switch c.rng.IntN(3) {
	case 0:
		c.SetUpdateOrder(c.rng.IntN(100))
	case 1:
		c.SetDrawOrder(c.rng.IntN(100))
	default:
		c.SetVisible(!c.Visible())
	}
}

func (c *churner) Draw(frame.Time) {
	c.sink *= 0.5
}

type discardCanvas struct{}

func (discardCanvas) Text(int, int, string) {}
