// Package config handles generator configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/beadforge/internal/texture"
	"github.com/Faultbox/beadforge/pkg/beads"
)

// Config holds all generator settings.
type Config struct {
	Beads   BeadsConfig   `yaml:"beads"`
	Shading ShadingConfig `yaml:"shading"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// BeadsConfig holds bead geometry in pixels.
type BeadsConfig struct {
	InnerRadius int `yaml:"inner_radius"`
	OuterRadius int `yaml:"outer_radius"`
	Padding     int `yaml:"padding"`
	BeadsWidth  int `yaml:"beads_width"` // Beads per row
}

// ShadingConfig holds roughness, occlusion and flat cap ratios.
type ShadingConfig struct {
	Roughness           float64 `yaml:"roughness"`
	BackgroundRoughness float64 `yaml:"background_roughness"`
	InnerBlendBegin     float64 `yaml:"inner_blend_begin"`
	InnerBlendEnd       float64 `yaml:"inner_blend_end"`
	OuterBlendBegin     float64 `yaml:"outer_blend_begin"`
	OuterBlendEnd       float64 `yaml:"outer_blend_end"`
	FlatBegin           float64 `yaml:"flat_begin"`
	FlatEnd             float64 `yaml:"flat_end"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	Dir           string       `yaml:"dir"`
	NormalFile    string       `yaml:"normal_file"`
	MaskFile      string       `yaml:"mask_file"`
	ORDFile       string       `yaml:"ord_file"`
	Format        string       `yaml:"format"` // png, bmp, tiff, tga; empty infers from extension
	Layers        LayersConfig `yaml:"layers"`
	Workers       int          `yaml:"workers"` // 0 = GOMAXPROCS, 1 = sequential
	PreviewFile   string       `yaml:"preview_file"`
	PreviewRepeat int          `yaml:"preview_repeat"`
}

// LayersConfig selects which maps are generated.
type LayersConfig struct {
	Normal bool `yaml:"normal"`
	Mask   bool `yaml:"mask"`
	ORD    bool `yaml:"ord"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config producing the reference bead set.
func Default() *Config {
	p := beads.DefaultParams()
	return &Config{
		Beads: BeadsConfig{
			InnerRadius: p.InnerRadius,
			OuterRadius: p.OuterRadius,
			Padding:     p.Padding,
			BeadsWidth:  p.BeadsWidth,
		},
		Shading: ShadingConfig{
			Roughness:           p.Roughness,
			BackgroundRoughness: p.BackgroundRoughness,
			InnerBlendBegin:     p.InnerBlendBegin,
			InnerBlendEnd:       p.InnerBlendEnd,
			OuterBlendBegin:     p.OuterBlendBegin,
			OuterBlendEnd:       p.OuterBlendEnd,
			FlatBegin:           p.FlatBegin,
			FlatEnd:             p.FlatEnd,
		},
		Output: OutputConfig{
			Dir:        ".",
			NormalFile: "beads_normal.png",
			MaskFile:   "beads_mask.png",
			ORDFile:    "beads_ord.png",
			Format:     "",
			Layers: LayersConfig{
				Normal: true,
				Mask:   true,
				ORD:    true,
			},
			Workers:       1,
			PreviewFile:   "beads_preview.png",
			PreviewRepeat: 2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params returns the bead parameters described by the config.
func (c *Config) Params() beads.Params {
	return beads.Params{
		InnerRadius: c.Beads.InnerRadius,
		OuterRadius: c.Beads.OuterRadius,
		Padding:     c.Beads.Padding,
		BeadsWidth:  c.Beads.BeadsWidth,

		Roughness:           c.Shading.Roughness,
		BackgroundRoughness: c.Shading.BackgroundRoughness,

		InnerBlendBegin: c.Shading.InnerBlendBegin,
		InnerBlendEnd:   c.Shading.InnerBlendEnd,
		OuterBlendBegin: c.Shading.OuterBlendBegin,
		OuterBlendEnd:   c.Shading.OuterBlendEnd,

		FlatBegin: c.Shading.FlatBegin,
		FlatEnd:   c.Shading.FlatEnd,
	}
}

// LayerSet returns the enabled layers.
func (c *Config) LayerSet() beads.LayerSet {
	return beads.LayerSet{
		Normal: c.Output.Layers.Normal,
		Mask:   c.Output.Layers.Mask,
		ORD:    c.Output.Layers.ORD,
	}
}

// OutputFormat returns the forced output format, or "" to infer it from
// each file name.
func (c *Config) OutputFormat() (texture.Format, error) {
	if c.Output.Format == "" {
		return "", nil
	}
	return texture.ParseFormat(c.Output.Format)
}

// Validate checks the bead parameters and output settings.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.LayerSet().Empty() {
		return errors.New("no output layers enabled")
	}
	if c.Output.Workers < 0 {
		return fmt.Errorf("invalid worker count %d", c.Output.Workers)
	}
	if c.Output.PreviewRepeat < 1 {
		return fmt.Errorf("invalid preview repeat %d", c.Output.PreviewRepeat)
	}

	format, err := c.OutputFormat()
	if err != nil {
		return err
	}
	if format != "" {
		return nil
	}
	for _, name := range c.outputFiles() {
		if _, err := texture.FormatFromPath(name); err != nil {
			return fmt.Errorf("output file %q: %w", name, err)
		}
	}
	return nil
}

// outputFiles lists the file names of the enabled layers.
func (c *Config) outputFiles() []string {
	var files []string
	if c.Output.Layers.Normal {
		files = append(files, c.Output.NormalFile)
	}
	if c.Output.Layers.Mask {
		files = append(files, c.Output.MaskFile)
	}
	if c.Output.Layers.ORD {
		files = append(files, c.Output.ORDFile)
	}
	return files
}

// ParseLayers parses a comma-separated layer list such as "normal,mask".
func ParseLayers(list string) (LayersConfig, error) {
	var l LayersConfig
	for _, name := range strings.Split(list, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "normal":
			l.Normal = true
		case "mask":
			l.Mask = true
		case "ord":
			l.ORD = true
		case "all":
			l = LayersConfig{Normal: true, Mask: true, ORD: true}
		case "":
		default:
			return LayersConfig{}, fmt.Errorf("unknown layer %q", name)
		}
	}
	return l, nil
}
