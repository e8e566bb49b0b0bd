// swatchgen — Solid-color PNG tile generation.
//
// Usage:
//
//	swatchgen named [--profile color_images|images] [--mkdir] TOKEN...
//	swatchgen sweep [--legacy-names]
//	swatchgen index [DIR]
//	swatchgen match [--index DIR] COLOR
//	swatchgen mosaic [options] INPUT LIBRARY OUT
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code. A
// failure prints a single "Error: ..." line to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := newApp()
	app.Writer = stdout
	app.ErrWriter = stderr
	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "swatchgen",
		Usage: "Generate solid-color PNG tiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Value:   ".",
				Sources: cli.EnvVars("SWATCHGEN_ROOT"),
				Usage:   "Base directory for all output paths",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Sources: cli.EnvVars("SWATCHGEN_VERBOSE"),
				Usage:   "Log debug output to stderr",
			},
		},
		Commands: []*cli.Command{
			namedCommand(),
			sweepCommand(),
			indexCommand(),
			matchCommand(),
			mosaicCommand(),
		},
	}
}

// newLogger returns the diagnostic logger for cmd. Output goes to the root
// command's ErrWriter.
func newLogger(cmd *cli.Command) *slog.Logger {
	level := slog.LevelWarn
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(errWriter(cmd), &slog.HandlerOptions{Level: level}))
}

// resolvePath joins relative paths onto --root.
func resolvePath(cmd *cli.Command, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cmd.String("root"), p)
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
