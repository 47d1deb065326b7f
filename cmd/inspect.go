package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// InspectScenes builds the BVH of every requested scene and prints its shape.
func InspectScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	names := []string(ctx.Args())
	if len(names) == 0 {
		names = scene.Names()
	}

	cfg := scene.DefaultConfig()
	cfg.Accel = accel.KindBVH

	rows := make([]accel.Stats, 0, len(names))
	for _, name := range names {
		sc, err := scene.Build(name, cfg)
		if err != nil {
			return err
		}
		bvh, ok := sc.Structure().(*accel.BVH)
		if !ok {
			return fmt.Errorf("scene %q did not build a BVH", name)
		}
		rows = append(rows, bvh.Stats())
	}

	logger.Noticef("BVH statistics\n%s", bvhTable(names, rows))
	return nil
}

func bvhTable(names []string, rows []accel.Stats) string {
	p := message.NewPrinter(language.English)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Instances", "Nodes", "Leaves", "Max depth", "Avg leaf depth"})
	for i, stats := range rows {
		table.Append([]string{
			names[i],
			p.Sprintf("%d", stats.Instances),
			p.Sprintf("%d", stats.Nodes),
			p.Sprintf("%d", stats.Leaves),
			fmt.Sprintf("%d", stats.MaxDepth),
			fmt.Sprintf("%.2f", stats.AvgLeafDepth),
		})
	}
	table.Render()

	return buf.String()
}
