// Command marqueedemo scrolls a line of text through a viewport and writes
// every frame as a PNG image.
//
// Usage:
//
//	marqueedemo -text "Breaking news" -frames 60 -output out/frame-%03d.png
//	marqueedemo -config marquee.toml -v
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/marquee"
	"github.com/gogpu/marquee/loop"
	"github.com/gogpu/marquee/mesh"
	"github.com/gogpu/marquee/text"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		message    = flag.String("text", "", "marquee text (overrides config)")
		frames     = flag.Int("frames", -1, "number of frames (overrides config)")
		output     = flag.String("output", "", "output file pattern (overrides config)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	marquee.SetLogger(logger)

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *message != "" {
		cfg.Text = *message
	}
	if *frames >= 0 {
		cfg.Frames = *frames
	}
	if *output != "" {
		cfg.Output = *output
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	written, err := run(&cfg, logger)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	logger.Info("marqueedemo: done", slog.Int("frames", written), slog.Int("width", cfg.Width), slog.Int("height", cfg.Height))
}

// run drives the pipeline for cfg.Frames frames and writes one PNG per
// frame that produced geometry.
func run(cfg *Config, logger *slog.Logger) (int, error) {
	fontData := goregular.TTF
	if cfg.Font != "" {
		data, err := os.ReadFile(cfg.Font)
		if err != nil {
			return 0, fmt.Errorf("read font: %w", err)
		}
		fontData = data
	}
	src, err := text.NewFontSource(fontData)
	if err != nil {
		return 0, err
	}

	layout, err := text.NewLayout(src, cfg.Text,
		text.WithSize(cfg.Size),
		text.WithLetterSpacing(cfg.LetterSpacing),
		text.WithAtlasSize(cfg.AtlasSize, cfg.AtlasSize),
	)
	if err != nil {
		return 0, err
	}

	m := mesh.New()
	viewport := marquee.NewStaticViewport(0, 0, float32(cfg.Width), float32(cfg.Height))
	p, err := marquee.New(layout, viewport, m, marquee.WithWorkers(cfg.Workers))
	if err != nil {
		return 0, err
	}
	defer p.Close()

	if err := p.Prepare(); err != nil {
		return 0, err
	}
	logger.Debug("marqueedemo: prepared",
		slog.String("font", src.Name()),
		slog.Int("glyphs", layout.GlyphCount()),
		slog.Int("visible", layout.Visible()),
		slog.Float64("atlas_utilization", layout.Atlas().Utilization()))

	velocity := loop.V2(cfg.Velocity[0], cfg.Velocity[1])
	spacing := loop.V2(cfg.Spacing[0], cfg.Spacing[1])
	frame := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))

	written := 0
	var offset loop.Vec2
	var version uint64
	// One extra iteration applies the last scheduled batch.
	for f := 0; f <= cfg.Frames; f++ {
		if err := p.Apply(); err != nil {
			return written, err
		}
		if m.Version() != version {
			version = m.Version()
			if err := writeFrame(cfg, frame, m, layout, p.Viewport(), written); err != nil {
				return written, err
			}
			written++
		}
		if f == cfg.Frames {
			break
		}
		if err := p.Schedule(offset, spacing); err != nil {
			return written, err
		}
		offset = offset.Add(velocity)
	}

	stats := p.Stats()
	logger.Debug("marqueedemo: pipeline stats",
		slog.Int("capacity", stats.Capacity),
		slog.Int("grows", stats.Grows),
		slog.Uint64("frames", stats.Frames))
	return written, nil
}

// writeFrame renders the mesh over the background and saves it as PNG.
func writeFrame(cfg *Config, dst *image.RGBA, m *mesh.Mesh, layout *text.Layout, vp loop.Viewport, n int) error {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(cfg.BackgroundColor()), image.Point{}, draw.Src)
	mesh.Rasterize(dst, m, layout.Atlas().Image(), cfg.ForegroundColor(), vp)

	f, err := os.Create(fmt.Sprintf(cfg.Output, n))
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
