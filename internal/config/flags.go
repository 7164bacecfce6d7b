package config

import (
	"flag"
	"fmt"
)

// Flags holds command-line overrides. Zero values, or -1 for settings where
// zero is meaningful, leave the config alone.
type Flags struct {
	Config     string
	Debug      bool
	Out        string
	Format     string
	Workers    int
	BeadsWidth int
	Inner      int
	Outer      int
	Padding    int
	Roughness  float64
	Layers     string
}

// NewFlags registers the override flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Out, "out", "", "Output directory")
	fs.StringVar(&f.Format, "format", "", "Output format: png, bmp, tiff, tga")
	fs.IntVar(&f.Workers, "workers", -1, "Render workers (0 = all CPUs, 1 = sequential)")
	fs.IntVar(&f.BeadsWidth, "beads-width", 0, "Beads per row")
	fs.IntVar(&f.Inner, "inner", -1, "Inner bead radius in pixels")
	fs.IntVar(&f.Outer, "outer", 0, "Outer bead radius in pixels")
	fs.IntVar(&f.Padding, "padding", -1, "Padding around each bead in pixels")
	fs.Float64Var(&f.Roughness, "roughness", -1, "Bead roughness in [0, 1]")
	fs.StringVar(&f.Layers, "layers", "", "Comma-separated layers: normal, mask, ord, all")
	return f
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.Config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) error {
	if f == nil {
		return nil
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Out != "" {
		cfg.Output.Dir = f.Out
	}
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.Workers >= 0 {
		cfg.Output.Workers = f.Workers
	}
	if f.BeadsWidth > 0 {
		cfg.Beads.BeadsWidth = f.BeadsWidth
	}
	if f.Inner >= 0 {
		cfg.Beads.InnerRadius = f.Inner
	}
	if f.Outer > 0 {
		cfg.Beads.OuterRadius = f.Outer
	}
	if f.Padding >= 0 {
		cfg.Beads.Padding = f.Padding
	}
	if f.Roughness >= 0 {
		cfg.Shading.Roughness = f.Roughness
	}
	if f.Layers != "" {
		layers, err := ParseLayers(f.Layers)
		if err != nil {
			return fmt.Errorf("-layers: %w", err)
		}
		cfg.Output.Layers = layers
	}
	return nil
}
