package cmd

import (
	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/renderer"
	"github.com/df07/go-chunk-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

// SettingsFlags returns the flags shared by every command that renders
func SettingsFlags() []cli.Flag {
	defaults := renderer.DefaultSettings()
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "default",
			Usage: "built-in scene to render",
		},
		cli.IntFlag{
			Name:  "width",
			Value: defaults.ScreenWidth,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: defaults.ScreenHeight,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "chunk-width",
			Value: defaults.ChunkWidth,
			Usage: "chunk width",
		},
		cli.IntFlag{
			Name:  "chunk-height",
			Value: defaults.ChunkHeight,
			Usage: "chunk height",
		},
		cli.IntFlag{
			Name:  "threads, t",
			Value: defaults.Threads,
			Usage: "number of worker threads, 0 for one per logical core",
		},
		cli.StringFlag{
			Name:  "accel",
			Value: string(defaults.Accel),
			Usage: "acceleration structure (bvh or brute-force)",
		},
		cli.Float64Flag{
			Name:  "gamma",
			Value: defaults.Gamma,
			Usage: "output gamma",
		},
		cli.IntFlag{
			Name:  "aa",
			Value: defaults.AASamples,
			Usage: "anti-aliasing rays per pixel side",
		},
		cli.IntFlag{
			Name:  "light-samples",
			Value: defaults.LightSamples,
			Usage: "area light samples per side",
		},
		cli.IntFlag{
			Name:  "indirect",
			Value: defaults.Indirect,
			Usage: "indirect light samples per hit, 0 for direct light only",
		},
		cli.StringFlag{
			Name:  "technique",
			Value: defaults.LightTechnique.String(),
			Usage: "area light sampling technique (grid, random or stratified)",
		},
		cli.StringFlag{
			Name:  "mode",
			Value: string(defaults.Mode),
			Usage: "what to render (radiance, normals or distance)",
		},
	}
}

// settingsFromContext reads the render settings from the command flags
func settingsFromContext(ctx *cli.Context) (renderer.Settings, error) {
	settings := renderer.Settings{
		ScreenWidth:  ctx.Int("width"),
		ScreenHeight: ctx.Int("height"),
		ChunkWidth:   ctx.Int("chunk-width"),
		ChunkHeight:  ctx.Int("chunk-height"),
		Threads:      ctx.Int("threads"),
		Gamma:        ctx.Float64("gamma"),
		AASamples:    ctx.Int("aa"),
		LightSamples: ctx.Int("light-samples"),
		Indirect:     ctx.Int("indirect"),
	}

	if settings.Threads == 0 {
		settings.Threads = hostThreads(renderer.DefaultSettings().Threads)
	}

	var err error
	if settings.Accel, err = accel.ParseKind(ctx.String("accel")); err != nil {
		return settings, err
	}
	if settings.LightTechnique, err = core.ParseTechnique(ctx.String("technique")); err != nil {
		return settings, err
	}
	if settings.Mode, err = scene.ParseMode(ctx.String("mode")); err != nil {
		return settings, err
	}

	return settings, settings.Validate()
}
