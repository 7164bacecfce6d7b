// Package compose runs a full texture generation: it allocates the output
// layers, tiles the beads into them and hands the finished maps to a sink.
package compose

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/beadforge/internal/logger"
	"github.com/Faultbox/beadforge/internal/parallel"
	"github.com/Faultbox/beadforge/internal/texture"
	"github.com/Faultbox/beadforge/pkg/beads"
)

// Files names the output file of each layer.
type Files struct {
	Normal string
	Mask   string
	ORD    string
}

func (f Files) forLayer(name string) string {
	switch name {
	case "normal":
		return f.Normal
	case "mask":
		return f.Mask
	default:
		return f.ORD
	}
}

// Options configures a Composer.
type Options struct {
	Params  beads.Params
	Layers  beads.LayerSet
	Files   Files
	Workers int // 0 = GOMAXPROCS, 1 = sequential
}

// Composer generates bead textures. Params are validated once at
// construction.
type Composer struct {
	opts Options
	sink texture.Sink
}

// New validates opts and creates a composer writing to sink.
func New(opts Options, sink texture.Sink) (*Composer, error) {
	if err := opts.Params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bead parameters: %w", err)
	}
	if opts.Layers.Empty() {
		return nil, errors.New("no output layers enabled")
	}
	if sink == nil {
		return nil, errors.New("nil sink")
	}
	return &Composer{opts: opts, sink: sink}, nil
}

// Grid returns the layout the composer renders.
func (c *Composer) Grid() beads.Grid {
	return beads.NewGrid(c.opts.Params)
}

// Render allocates the layers in set and tiles a repeatX by repeatY
// repetition of the bead grid into them.
func (c *Composer) Render(set beads.LayerSet, repeatX, repeatY int) (beads.Layers, error) {
	var exec beads.Executor
	workers := 1
	if c.opts.Workers != 1 {
		if c.opts.Params.BeadsDisjoint() {
			pool := parallel.NewPool(c.opts.Workers)
			defer pool.Close()
			exec = pool
			workers = pool.Workers()
		} else {
			logger.Warn("neighboring beads overlap, rendering sequentially",
				zap.Int("padding", c.opts.Params.Padding),
				zap.Int("requested_workers", c.opts.Workers),
			)
		}
	}

	tiler := beads.NewTiler(c.opts.Params, exec)
	g := tiler.Grid()
	width, height := g.Width*repeatX, g.Height*repeatY

	logger.Info("rendering beads",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("pitch", g.Pitch),
		zap.Int("rows", g.BeadsHeight*repeatY),
		zap.Int("columns", g.BeadsWidth*repeatX),
		zap.Int("workers", workers),
	)

	start := time.Now()
	layers := beads.NewLayers(set, width, height, c.opts.Params)
	if err := tiler.Render(layers, repeatX, repeatY); err != nil {
		return beads.Layers{}, fmt.Errorf("rasterizing beads: %w", err)
	}
	logger.Debug("render finished", zap.Duration("elapsed", time.Since(start)))

	return layers, nil
}

// Generate renders one tile of every enabled layer and writes each to its
// file. The first write failure aborts the run; files already written must
// not be treated as a valid set.
func (c *Composer) Generate() error {
	layers, err := c.Render(c.opts.Layers, 1, 1)
	if err != nil {
		return err
	}

	return layers.Each(func(name string, m *beads.Map) error {
		path := c.opts.Files.forLayer(name)
		if err := c.sink.Write(path, m); err != nil {
			logger.Error("write failed", zap.String("layer", name), zap.String("path", path), zap.Error(err))
			return fmt.Errorf("writing %s map to %s: %w", name, path, err)
		}
		logger.Info("wrote map", zap.String("layer", name), zap.String("path", path))
		return nil
	})
}

// Preview renders an n by n repetition of the first enabled layer and
// writes it to path, for inspecting seams.
func (c *Composer) Preview(path string, n int) error {
	if n < 1 {
		return fmt.Errorf("invalid preview repeat %d", n)
	}
	layers, err := c.Render(c.opts.Layers.FirstOnly(), n, n)
	if err != nil {
		return err
	}

	name, m, ok := layers.First()
	if !ok {
		return errors.New("no output layers enabled")
	}
	if err := c.sink.Write(path, m); err != nil {
		return fmt.Errorf("writing %s preview to %s: %w", name, path, err)
	}
	logger.Info("wrote preview", zap.String("layer", name), zap.String("path", path), zap.Int("repeat", n))
	return nil
}
