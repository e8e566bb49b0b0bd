package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/xob0t/swatchgen/pkg/generator"
	"github.com/xob0t/swatchgen/pkg/library"
	"github.com/xob0t/swatchgen/pkg/mosaic"
)

func indexCommand() *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "Build or refresh the average-color index of a tile directory",
		ArgsUsage: "[DIR]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = generator.Images.Dir
			}
			dir = resolvePath(cmd, dir)

			lib, err := library.Index(dir,
				library.WithOutput(writer(cmd)),
				library.WithLogger(newLogger(cmd)),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(writer(cmd), "indexed %d tiles in %s\n", len(lib.Entries), dir)
			return nil
		},
	}
}

func matchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Print the indexed tile closest to a color",
		ArgsUsage: "COLOR",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "index",
				Value: generator.Images.Dir,
				Usage: "Tile directory holding " + library.IndexFile,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("match takes exactly one color")
			}
			c, err := generator.ResolveName(cmd.Args().First())
			if err != nil {
				return err
			}

			lib, err := library.Load(resolvePath(cmd, cmd.String("index")))
			if err != nil {
				return err
			}
			path, ok := lib.Closest(c)
			if !ok {
				return fmt.Errorf("index %s has no tiles", lib.Dir)
			}
			fmt.Fprintln(writer(cmd), path)
			return nil
		},
	}
}

func mosaicCommand() *cli.Command {
	return &cli.Command{
		Name:      "mosaic",
		Usage:     "Rebuild an image out of library tiles",
		ArgsUsage: "INPUT LIBRARY OUT",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "pixel-group-size",
				Aliases: []string{"g"},
				Value:   mosaic.DefaultConfig.GroupSize,
				Usage:   "Side in pixels of the square regions replaced by tiles",
			},
			&cli.IntFlag{
				Name:    "magnification",
				Aliases: []string{"m"},
				Value:   mosaic.DefaultConfig.Magnification,
				Usage:   "Factor by which the source dimensions are increased",
			},
			&cli.BoolFlag{
				Name:    "color-caching",
				Aliases: []string{"c"},
				Usage:   "Cache closest-tile matches for repeated region colors",
			},
			&cli.BoolFlag{
				Name:    "print-timings",
				Aliases: []string{"t"},
				Usage:   "Print how long each step took",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 3 {
				return fmt.Errorf("mosaic takes INPUT LIBRARY OUT")
			}
			input := resolvePath(cmd, cmd.Args().Get(0))
			dir := resolvePath(cmd, cmd.Args().Get(1))
			output := resolvePath(cmd, cmd.Args().Get(2))

			w := writer(cmd)
			logger := newLogger(cmd)
			timer := stepTimer(w, cmd.Bool("print-timings"))

			done := timer("Indexing library: ")
			lib, err := library.Index(dir, library.WithOutput(w), library.WithLogger(logger))
			if err != nil {
				return err
			}
			done()

			src, err := mosaic.Load(input)
			if err != nil {
				return err
			}

			cfg := mosaic.Config{
				GroupSize:     int(cmd.Int("pixel-group-size")),
				Magnification: int(cmd.Int("magnification")),
				ColorCache:    cmd.Bool("color-caching"),
			}
			if cfg.GroupSize > 0 {
				nw, nh := mosaic.Dimensions(src.Bounds().Dx(), src.Bounds().Dy(), cfg.GroupSize)
				fmt.Fprintf(w, "New starting dimensions: %d x %d\n", nw, nh)
			}

			done = timer("Building mosaic: ")
			b := mosaic.New(lib, cfg, mosaic.WithLogger(logger))
			img, err := b.Build(src)
			if err != nil {
				return err
			}
			done()
			stats := b.Stats()
			logger.Debug("mosaic built", "regions", stats.Regions, "cache_hits", stats.CacheHits)

			done = timer("Writing output: ")
			if err := generator.PNGSaver.Save(output, img); err != nil {
				return err
			}
			done()

			fmt.Fprintf(w, "wrote %s\n", output)
			return nil
		},
	}
}

// stepTimer returns a function that starts timing a step; calling its
// result prints "<label><n>ms" when enabled.
func stepTimer(w io.Writer, enabled bool) func(label string) func() {
	return func(label string) func() {
		start := time.Now()
		return func() {
			if enabled {
				fmt.Fprintf(w, "%s%dms\n", label, time.Since(start).Milliseconds())
			}
		}
	}
}
