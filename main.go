package main

import (
	"fmt"
	"os"

	"github.com/df07/go-chunk-raytracer/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-chunk-raytracer"
	app.Usage = "render scenes in parallel chunks with a BVH"
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
			Usage: "render a built-in scene to an image file",
			Description: `
Split the frame into chunks and render them on a pool of worker threads.
The output format is chosen by the file extension (png, bmp, tif or tiff).
Without --out the frame is written to output/<scene>/render_<timestamp>.png.
With --mesh the mesh is scaled to fit and lit like the default scene.`,
			Flags: append(cmd.SettingsFlags(),
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the rendered frame",
				},
				cli.StringFlag{
					Name:  "mesh, m",
					Usage: "render an .obj or .ply mesh instead of a built-in scene",
				},
			),
			Action: cmd.RenderFrame,
		},
		{
			Name:      "inspect",
			Usage:     "build the BVH of built-in scenes and print its statistics",
			ArgsUsage: "scene1 scene2 ...",
			Action:    cmd.InspectScenes,
		},
		{
			Name:   "list-scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "stream chunked renders to a browser",
			Flags: append(cmd.SettingsFlags(),
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to serve on",
				},
			),
			Action: cmd.Serve,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
