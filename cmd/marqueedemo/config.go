package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the demo configuration, read from a TOML file.
type Config struct {
	// Text is the marquee string.
	Text string `toml:"text"`

	// Font is a TTF/OTF path. Empty selects Go Regular.
	Font string `toml:"font"`

	// Size is the font size in pixels.
	Size float64 `toml:"size"`

	// LetterSpacing is added after every glyph.
	LetterSpacing float64 `toml:"letter_spacing"`

	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Frames is the number of frames to render.
	Frames int `toml:"frames"`

	// Velocity is the scroll offset added per frame, in pixels.
	Velocity [2]float32 `toml:"velocity"`

	// Spacing is the gap between loop periods, in pixels.
	Spacing [2]float32 `toml:"spacing"`

	Foreground [4]uint8 `toml:"foreground"`
	Background [4]uint8 `toml:"background"`

	// Workers sizes the kernel worker pool. Zero selects GOMAXPROCS.
	Workers int `toml:"workers"`

	// AtlasSize is the glyph atlas page size in texels.
	AtlasSize int `toml:"atlas_size"`

	// Output is a fmt pattern taking the frame number.
	Output string `toml:"output"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Text:       "Hello, marquee! ",
		Size:       32,
		Width:      320,
		Height:     48,
		Frames:     30,
		Velocity:   [2]float32{-8, 0},
		Spacing:    [2]float32{24, 0},
		Foreground: [4]uint8{255, 255, 255, 255},
		Background: [4]uint8{16, 24, 48, 255},
		AtlasSize:  512,
		Output:     "frame-%03d.png",
	}
}

// LoadConfig reads a TOML config over the defaults.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return DecodeConfig(f)
}

// DecodeConfig decodes a TOML config from r over the defaults.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid viewport size %dx%d", c.Width, c.Height)
	case c.Size <= 0:
		return fmt.Errorf("invalid font size %v", c.Size)
	case c.Frames < 0:
		return fmt.Errorf("invalid frame count %d", c.Frames)
	case c.AtlasSize <= 0:
		return fmt.Errorf("invalid atlas size %d", c.AtlasSize)
	case c.Output == "":
		return errors.New("empty output pattern")
	}
	return nil
}

// ForegroundColor returns the text color.
func (c *Config) ForegroundColor() color.NRGBA {
	return toNRGBA(c.Foreground)
}

// BackgroundColor returns the fill color.
func (c *Config) BackgroundColor() color.NRGBA {
	return toNRGBA(c.Background)
}

func toNRGBA(v [4]uint8) color.NRGBA {
	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}
}
