package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-hybrid-reflections/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "hybrid-reflections"
	app.Usage = "render adaptive hybrid reflections on the CPU"
	app.Version = "0.1.0"
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
			Name:  "render",
			Usage: "render the reflection pass for a scene",
			Description: `
Run the geometry pass once, then render the adaptive reflection pipeline for
the requested number of frames: tile classification, budgeted ray generation,
hybrid tracing with occlusion follow-up, and per-tile statistic accumulation.
The reflection target from the final frame is written as a PNG image.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "reflection target width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "reflection target height",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 8,
					Usage: "number of frames to render",
				},
				cli.IntFlag{
					Name:  "budget",
					Value: 0,
					Usage: "per-frame ray budget (0 = default)",
				},
				cli.IntFlag{
					Name:  "samples",
					Value: 4,
					Usage: "multisample positions cycled across frames",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "trace worker count (0 = CPU count)",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: "default",
					Usage: "scene to render (default, cornell)",
				},
				cli.StringFlag{
					Name:  "mesh",
					Usage: "wavefront OBJ mesh to add to the scene",
				},
				cli.Float64Flag{
					Name:  "mesh-scale",
					Value: 1.0,
					Usage: "uniform scale applied to the loaded mesh",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "reflections.png",
					Usage: "image filename for the reflection target",
				},
			},
			Action: cmd.RenderFrames,
		},
	}

	app.Run(os.Args)
}
