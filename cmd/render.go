package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-chunk-raytracer/pkg/renderer"
	"github.com/df07/go-chunk-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

// RenderFrame renders a built-in scene and writes it to disk.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	settings, err := settingsFromContext(ctx)
	if err != nil {
		return err
	}

	logHost(settings.Threads)

	sceneName, sc, err := loadScene(ctx, settings)
	if err != nil {
		return err
	}

	r, err := renderer.New(settings)
	if err != nil {
		return err
	}

	logger.Noticef("rendering %q (%d instances, %s) at %dx%d",
		sceneName, sc.InstanceCount(), settings.Accel, settings.ScreenWidth, settings.ScreenHeight)

	fb, stats, err := r.Render(sc)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		timestamp := time.Now().Format("20060102_150405")
		out = filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := fb.Save(out); err != nil {
		return err
	}

	logger.Noticef("frame statistics\n%s", stats.Table())
	logger.Noticef("render saved as %s", out)
	return nil
}

// loadScene builds the scene named by --scene, or the mesh scene when --mesh is given
func loadScene(ctx *cli.Context, settings renderer.Settings) (string, *scene.Scene, error) {
	if path := ctx.String("mesh"); path != "" {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		sc, err := scene.LoadMeshScene(path, settings.SceneConfig())
		return name, sc, err
	}

	name := ctx.String("scene")
	sc, err := scene.Build(name, settings.SceneConfig())
	return name, sc, err
}
