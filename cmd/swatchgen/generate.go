package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/xob0t/swatchgen/pkg/generator"
	"github.com/xob0t/swatchgen/pkg/palette"
)

func namedCommand() *cli.Command {
	return &cli.Command{
		Name:      "named",
		Usage:     "Write one tile per color name",
		ArgsUsage: "TOKEN...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "profile",
				Value:   generator.ColorImages.Name,
				Sources: cli.EnvVars("SWATCHGEN_PROFILE"),
				Usage:   "Output profile: " + strings.Join(profileNames(), ", "),
			},
			&cli.BoolFlag{
				Name:  "mkdir",
				Usage: "Create the profile directory if it is missing",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			profile, ok := generator.Profiles[cmd.String("profile")]
			if !ok {
				return fmt.Errorf("unknown profile %q (use: %s)", cmd.String("profile"), strings.Join(profileNames(), ", "))
			}
			if cmd.Bool("mkdir") {
				profile.CreateDir = true
			}

			e := generator.New(profile,
				generator.WithRoot(cmd.String("root")),
				generator.WithOutput(writer(cmd)),
				generator.WithLogger(newLogger(cmd)),
			)
			_, err := e.Run(palette.Named(cmd.Args().Slice()))
			return err
		},
	}
}

func sweepCommand() *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "Write the fixed HSL sweep to sample/solid_colors",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "legacy-names",
				Sources: cli.EnvVars("SWATCHGEN_LEGACY_NAMES"),
				Usage:   "Name files like earlier runs (224_1.0_0.9.png instead of 224_1_0.9.png)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Present() {
				return fmt.Errorf("sweep takes no arguments")
			}

			format := palette.UniformNames
			if cmd.Bool("legacy-names") {
				format = palette.LegacyNames
			}

			e := generator.New(generator.SweepImages,
				generator.WithRoot(cmd.String("root")),
				generator.WithNameFormat(format),
				generator.WithOutput(writer(cmd)),
				generator.WithLogger(newLogger(cmd)),
			)
			_, err := e.Run(palette.Sweep())
			return err
		},
	}
}

func profileNames() []string {
	names := make([]string, 0, len(generator.Profiles))
	for name := range generator.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
