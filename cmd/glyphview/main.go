// Command glyphview lays out an HTML file, clips it to a viewport and packs
// the visible glyphs into an atlas, without a window.
//
// Usage:
//
//	glyphview -in page.html -scroll 200 -atlas atlas.png
//
// With -noop the visible glyphs are also drawn through a glyphbrush.Brush
// on the noop GPU backend and its statistics are printed.
package main

import (
	"bytes"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/glyphbrush"
	"github.com/gogpu/glyphbrush/document"
	"github.com/gogpu/glyphbrush/font"
	"github.com/gogpu/glyphbrush/markup"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

//go:embed sample.html
var sampleHTML []byte

// config is the parsed command line.
type config struct {
	in        string
	width     float64
	scale     float64
	scroll    float64
	height    float64
	atlasOut  string
	atlasSize int
	maxAtlas  int
	noop      bool
	verbose   bool
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("glyphview: %v", err)
	}
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("glyphview", flag.ContinueOnError)
	fs.StringVar(&cfg.in, "in", "", "HTML file to show (default: built-in sample)")
	fs.Float64Var(&cfg.width, "width", document.DefaultColumnWidth, "column width in pixels")
	fs.Float64Var(&cfg.scale, "scale", 1, "layout scale factor")
	fs.Float64Var(&cfg.scroll, "scroll", 0, "viewport top in layout pixels")
	fs.Float64Var(&cfg.height, "height", 600, "viewport height in pixels")
	fs.StringVar(&cfg.atlasOut, "atlas", "", "write the glyph atlas to this PNG file")
	fs.IntVar(&cfg.atlasSize, "atlas-size", glyphbrush.DefaultCacheWidth, "initial atlas width and height")
	fs.IntVar(&cfg.maxAtlas, "max-atlas", 0, "largest atlas width and height, 0 for no limit")
	fs.BoolVar(&cfg.noop, "noop", false, "also draw through a brush on the noop GPU backend")
	fs.BoolVar(&cfg.verbose, "v", false, "log debug output to stderr")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch {
	case cfg.scale <= 0:
		return cfg, fmt.Errorf("-scale must be positive, got %v", cfg.scale)
	case cfg.width <= 0:
		return cfg, fmt.Errorf("-width must be positive, got %v", cfg.width)
	case cfg.height <= 0:
		return cfg, fmt.Errorf("-height must be positive, got %v", cfg.height)
	case cfg.atlasSize <= 0:
		return cfg, fmt.Errorf("-atlas-size must be positive, got %d", cfg.atlasSize)
	case cfg.maxAtlas < 0:
		return cfg, fmt.Errorf("-max-atlas must not be negative, got %d", cfg.maxAtlas)
	}
	return cfg, nil
}

// goFonts returns the Go fonts in the order document expects.
func goFonts() [][]byte {
	return [][]byte{goregular.TTF, gobold.TTF, gobolditalic.TTF, goitalic.TTF, gomono.TTF}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}
	if cfg.verbose {
		glyphbrush.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		defer glyphbrush.SetLogger(nil)
	}

	src := sampleHTML
	if cfg.in != "" {
		if src, err = os.ReadFile(cfg.in); err != nil {
			return err
		}
	}
	blocks, err := markup.Parse(bytes.NewReader(src))
	if err != nil {
		return err
	}

	fonts := font.NewSet()
	for i, data := range goFonts() {
		if _, err := fonts.Add(data); err != nil {
			return fmt.Errorf("load font %d: %w", i, err)
		}
	}

	disp := document.Layout(blocks, fonts, 0, 0, float32(cfg.scale),
		document.WithColumnWidth(float32(cfg.width)))
	top := float32(cfg.scroll)
	bottom := top + float32(cfg.height)
	visible := disp.Clip(top, bottom)

	glyphs := make([]glyphbrush.LayoutGlyph, len(visible))
	for i, g := range visible {
		glyphs[i] = g.Translated(0, -top)
	}

	a := newCPUAtlas(fonts, cfg.atlasSize, cfg.maxAtlas)
	if err := a.add(glyphs); err != nil {
		return err
	}

	w, h := a.cache.Dimensions()
	fmt.Fprintf(stdout, "blocks:  %d\n", len(blocks))
	fmt.Fprintf(stdout, "lines:   %d (document height %.1f)\n", len(disp.Lines()), disp.BoundYMax())
	fmt.Fprintf(stdout, "glyphs:  %d laid out, %d visible in [%.1f, %.1f)\n", disp.Len(), len(visible), top, bottom)
	fmt.Fprintf(stdout, "atlas:   %dx%d, %d glyphs, %.1f%% used, grew %d times\n",
		w, h, a.cache.Len(), 100*a.cache.Utilization(), a.growths)

	if cfg.atlasOut != "" {
		if err := a.writePNG(cfg.atlasOut); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote:   %s\n", cfg.atlasOut)
	}

	if cfg.noop {
		stats, err := drawNoop(glyphs, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "brush:   %d instances, atlas %dx%d, %d pipelines, %d bind groups, %d growths\n",
			stats.LastInstances, stats.AtlasWidth, stats.AtlasHeight,
			stats.PipelineBuilds, stats.BindGroupBuilds, stats.AtlasGrowths)
	}
	return nil
}
