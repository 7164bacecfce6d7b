// beadgen generates tileable torus-bead texture sets: a normal map, a
// coverage mask and a packed occlusion/roughness/displacement map.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/beadforge/internal/compose"
	"github.com/Faultbox/beadforge/internal/config"
	"github.com/Faultbox/beadforge/internal/logger"
	"github.com/Faultbox/beadforge/internal/texture"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "generate", "gen":
		err = cmdGenerate(args)
	case "preview":
		err = cmdPreview(args)
	case "info":
		err = cmdInfo(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`beadgen - tileable bead texture generator

Usage:
  beadgen <command> [options]

Commands:
  generate [flags]        Write the normal, mask and ORD maps
  preview [flags]         Write a repeated tile of the first enabled map
  info [flags]            Show the derived grid without rendering
  config [flags] [path]   Write the effective configuration as YAML
                          (-save writes it to the user config directory)

Flags (all commands):
  -config <file>          Config file (default: ./beadforge.yaml)
  -out <dir>              Output directory
  -format <fmt>           png, bmp, tiff or tga
  -layers <list>          normal,mask,ord
  -workers <n>            0 = all CPUs, 1 = sequential
  -inner, -outer, -padding, -beads-width, -roughness
  -debug                  Enable debug logging

Examples:
  beadgen generate
  beadgen generate -out textures -format tga -workers 0
  beadgen generate -layers mask -beads-width 6
  beadgen preview -config beads.yaml
  beadgen config beadforge.yaml
  beadgen config -save -outer 60`)
}

// setup registers the common flags on fs, parses args, loads and validates
// the config and starts logging.
func setup(fs *flag.FlagSet, args []string) (*config.Config, error) {
	flags := config.NewFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, nil
}

func newComposer(cfg *config.Config) (*compose.Composer, error) {
	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, err
	}
	sink := texture.NewFileSink(cfg.Output.Dir, format)

	return compose.New(compose.Options{
		Params: cfg.Params(),
		Layers: cfg.LayerSet(),
		Files: compose.Files{
			Normal: cfg.Output.NormalFile,
			Mask:   cfg.Output.MaskFile,
			ORD:    cfg.Output.ORDFile,
		},
		Workers: cfg.Output.Workers,
	}, sink)
}

func cmdGenerate(args []string) error {
	cfg, err := setup(flag.NewFlagSet("generate", flag.ExitOnError), args)
	if err != nil {
		return err
	}

	c, err := newComposer(cfg)
	if err != nil {
		return err
	}
	if err := c.Generate(); err != nil {
		return err
	}
	logger.Info("texture set complete", zap.String("dir", cfg.Output.Dir))
	return nil
}

func cmdPreview(args []string) error {
	cfg, err := setup(flag.NewFlagSet("preview", flag.ExitOnError), args)
	if err != nil {
		return err
	}

	c, err := newComposer(cfg)
	if err != nil {
		return err
	}
	return c.Preview(cfg.Output.PreviewFile, cfg.Output.PreviewRepeat)
}

func cmdInfo(args []string) error {
	cfg, err := setup(flag.NewFlagSet("info", flag.ExitOnError), args)
	if err != nil {
		return err
	}

	c, err := newComposer(cfg)
	if err != nil {
		return err
	}
	g := c.Grid()
	p := message.NewPrinter(language.English)

	p.Printf("Canvas:      %d x %d (width x height)\n", g.Width, g.Height)
	p.Printf("Pixels:      %d\n", g.Width*g.Height)
	p.Printf("Bead box:    %d px\n", g.BoundBox)
	p.Printf("Tube radius: %.1f px\n", g.TubeRadius)
	p.Printf("Row pitch:   %d px\n", g.Pitch)
	p.Printf("Grid:        %d columns x %d rows\n", g.BeadsWidth, g.BeadsHeight)
	p.Printf("Rasterized:  %d beads (with overscan)\n", (g.BeadsWidth+1)*(g.BeadsHeight+1))
	return nil
}

func cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Write to the user config directory")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}

	if *save {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", filepath.Join(config.ConfigDir(), config.FileName))
		return nil
	}
	if fs.NArg() > 0 {
		if err := cfg.SaveTo(fs.Arg(0)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", fs.Arg(0))
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
