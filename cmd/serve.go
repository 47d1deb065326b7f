package cmd

import (
	"github.com/df07/go-chunk-raytracer/web/server"
	"github.com/urfave/cli"
)

// Serve starts the web server that streams chunks to the browser.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	settings, err := settingsFromContext(ctx)
	if err != nil {
		return err
	}

	logHost(settings.Threads)
	return server.NewServer(ctx.Int("port"), settings).Start()
}
