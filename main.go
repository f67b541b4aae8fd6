package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/go-raytrace/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-raytrace"
	app.Usage = "render scenes using whitted-style ray tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "list-devices",
			Usage:  "list available cpus",
			Action: cmd.ListDevices,
		},
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Parse a scene description, build a BVH tree to optimize ray intersection tests
and render a frame using one or more cpu tracers. The frame is saved as a PNG
image to the file specified by the --out flag, the scene's output command or
frame.png in that order.`,
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Usage: "load renderer options from a TOML file",
				},
				cli.IntFlag{
					Name:  "tracers, t",
					Value: 1,
					Usage: "number of tracers that render the frame blocks",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of goroutines per tracer (0 uses one per cpu)",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 1,
					Usage: "samples per pixel",
				},
				cli.StringFlag{
					Name:  "scheduler, s",
					Value: "naive",
					Usage: "block scheduler (naive or perfect)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scene",
			Usage: "scene tools",
			Subcommands: []cli.Command{
				{
					Name:      "info",
					Usage:     "display scene statistics",
					ArgsUsage: "scene_file",
					Action:    cmd.ShowSceneInfo,
				},
			},
		},
		{
			Name:      "debug",
			Usage:     "trace the primary ray through a single pixel",
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "row, r",
					Usage: "pixel row",
				},
				cli.IntFlag{
					Name:  "col, c",
					Usage: "pixel column",
				},
			},
			Action: cmd.Debug,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}
