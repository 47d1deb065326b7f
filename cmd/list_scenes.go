package cmd

import (
	"strings"

	"github.com/df07/go-chunk-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

// ListScenes prints the names of the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	logger.Noticef("built-in scenes: %s", strings.Join(scene.Names(), ", "))
	return nil
}
