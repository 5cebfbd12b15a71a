package main

import (
	"os"

	"github.com/achilleasa/rigel/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "rigel"
	app.Usage = "render built in scenes using whitted-style ray tracing"
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
	}
	app.Commands = []cli.Command{
		{
			Name:   "scenes",
			Usage:  "list built in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:   "render",
			Usage:  "render scene",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:  "frame",
					Usage: "render single frame",
					Description: `
Render a single frame of a built in scene and write it out as a png
file. Use the scenes command for the list of scene names.`,
					ArgsUsage: "scene_name",
					Flags: append(renderFlags(),
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					),
					Action: cmd.RenderFrame,
				},
				{
					Name:  "interactive",
					Usage: "render interactive view of the scene",
					Description: `
Render a built in scene into a window, displaying tiles as the render
workers complete them. Press ESC or close the window to stop.`,
					ArgsUsage: "scene_name",
					Flags:     renderFlags(),
					Action:    cmd.RenderInteractive,
				},
			},
		},
	}

	app.Run(os.Args)
}

// The set of flags shared by the render subcommands.
func renderFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "spp",
			Value: 16,
			Usage: "samples per pixel",
		},
		cli.IntFlag{
			Name:  "max-depth",
			Value: 5,
			Usage: "max depth for specular bounce chains",
		},
		cli.IntFlag{
			Name:  "num-workers",
			Value: 0,
			Usage: "number of render workers; 0 selects one per cpu",
		},
		cli.IntFlag{
			Name:  "tile-size",
			Value: 0,
			Usage: "tile edge length in pixels; 0 selects the default",
		},
		cli.StringFlag{
			Name:  "sampler",
			Value: "stratified",
			Usage: "sampler to use (stratified, constant)",
		},
		cli.StringFlag{
			Name:  "filter",
			Value: "mitchell",
			Usage: "reconstruction filter (mitchell, box, triangle, gaussian)",
		},
		cli.Float64Flag{
			Name:  "exposure",
			Value: 1.0,
			Usage: "camera exposure for tone-mapping",
		},
		cli.Float64Flag{
			Name:  "gamma",
			Value: 2.2,
			Usage: "gamma correction for the final frame",
		},
		cli.IntFlag{
			Name:  "seed",
			Value: 1,
			Usage: "base seed for the sampler streams",
		},
	}
}
