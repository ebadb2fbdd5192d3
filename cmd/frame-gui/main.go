package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/frameloop/frame"
	"github.com/plus3/frameloop/frame/debugui"
	debugui_ebiten "github.com/plus3/frameloop/frame/debugui/ebiten"
	frame_ebiten "github.com/plus3/frameloop/frame/platform/ebiten"
	"github.com/plus3/frameloop/internal/config"
	"github.com/plus3/frameloop/internal/logging"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "frame-gui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file.")
	balls := flag.Int("balls", 8, "Number of bouncing balls.")
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	settings, err := cfg.Timing.Settings()
	if err != nil {
		return err
	}

	imguiBackend := debugui_ebiten.New("frameloop", screenWidth, screenHeight)
	host := frame_ebiten.NewHost(screenWidth, screenHeight,
		frame_ebiten.WithOverlay(imguiBackend),
		frame_ebiten.WithLogger(log),
		frame_ebiten.WithBackground(color.RGBA{R: 0x20, G: 0x22, B: 0x28, A: 0xff}))

	scheduler := frame.New(nil,
		frame.WithLogger(log),
		frame.WithCapabilities(host.Capabilities()))
	if err := scheduler.Apply(settings); err != nil {
		return err
	}
	host.Attach(scheduler)

	for i := range *balls {
		if err := scheduler.Add(newBall(host, i)); err != nil {
			return err
		}
	}
	if err := debugui.Install(scheduler); err != nil {
		return err
	}

	return host.Run("frameloop")
}

// ball bounces inside the host screen. Its draw order is its index, so later
// balls are drawn over earlier ones.
type ball struct {
	frame.DrawableComponent
	host   *frame_ebiten.Host
	x, y   float32
	dx, dy float32
	radius float32
	color  color.RGBA
}

func newBall(host *frame_ebiten.Host, i int) *ball {
	b := &ball{
		DrawableComponent: frame.NewDrawableComponent(),
		host:              host,
		x:                 float32(40 + 60*i),
		y:                 float32(40 + 30*i),
		dx:                float32(120 + 20*i),
		dy:                float32(90 + 15*i),
		radius:            float32(12 + 2*i),
		color:             color.RGBA{R: uint8(80 + 20*i), G: 160, B: uint8(240 - 20*i), A: 0xff},
	}
	b.SetDrawOrder(i)
	return b
}

func (b *ball) Update(t frame.Time) {
	width, height := b.host.Size()
	dt := float32(t.Seconds())

	b.x += b.dx * dt
	b.y += b.dy * dt
	if b.x < b.radius || b.x > float32(width)-b.radius {
		b.dx = -b.dx
		b.x = min(max(b.x, b.radius), float32(width)-b.radius)
	}
	if b.y < b.radius || b.y > float32(height)-b.radius {
		b.dy = -b.dy
		b.y = min(max(b.y, b.radius), float32(height)-b.radius)
	}
}

func (b *ball) Draw(frame.Time) {
	vector.DrawFilledCircle(b.host.Screen(), b.x, b.y, b.radius, b.color, true)
}
