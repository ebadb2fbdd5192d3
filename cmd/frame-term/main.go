package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/frameloop/frame"
	"github.com/plus3/frameloop/frame/platform/terminal"
	"github.com/plus3/frameloop/frame/script"
	"github.com/plus3/frameloop/internal/config"
	"github.com/plus3/frameloop/internal/logging"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "frame-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file.")
	logPath := flag.String("log", "frame-term.log", "Log file; the terminal itself is used for drawing.")
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	cfg.Logging.Output = *logPath

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	settings, err := cfg.Timing.Settings()
	if err != nil {
		return err
	}

	var scheduler *frame.Scheduler
	bouncer := newBouncer("(o)")
	platform, err := terminal.New(nil,
		terminal.WithLogger(log),
		terminal.WithExitRequest(func() { scheduler.Exit() }),
		terminal.WithKeyHandler(func(ev *tcell.EventKey) { handleKey(scheduler, bouncer, log, ev) }))
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	scheduler = frame.New(platform,
		frame.WithLogger(log),
		frame.WithCapabilities(platform.Capabilities()))
	if err := scheduler.Apply(settings); err != nil {
		platform.Exit()
		return err
	}

	bouncer.canvas = platform
	for _, c := range []any{bouncer, newStatusLine(scheduler, platform)} {
		if err := scheduler.Add(c); err != nil {
			platform.Exit()
			return err
		}
	}

	engine := script.NewEngine(log, script.WithCanvas(platform))
	defer engine.Close()
	scripts, err := engine.LoadDir(cfg.Scripts.Dir)
	if err != nil {
		platform.Exit()
		return fmt.Errorf("load scripts: %w", err)
	}
	for _, c := range scripts {
		if err := scheduler.Add(c); err != nil {
			platform.Exit()
			return err
		}
	}

	return scheduler.Run(context.Background())
}

// handleKey maps keys to scheduler controls: f toggles fixed steps, + and -
// change the target rate, h hides the bouncer and s skips one draw.
func handleKey(s *frame.Scheduler, b *bouncer, log *zap.Logger, ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case 'f':
		s.SetFixedTimeStep(!s.IsFixedTimeStep())
	case '+', '-':
		fps := int(time.Second / s.TargetElapsedTime())
		if ev.Rune() == '+' {
			fps += 10
		} else {
			fps -= 10
		}
		target, err := frame.TargetFPS(fps)
		if err == nil {
			err = s.SetTargetElapsedTime(target)
		}
		if err != nil {
			log.Warn("target rate rejected", zap.Int("fps", fps), zap.Error(err))
		}
	case 'h':
		b.SetVisible(!b.Visible())
	case 's':
		s.SuppressDraw()
	}
}
