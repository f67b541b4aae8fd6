package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/achilleasa/go-raytrace/renderer"
	"github.com/achilleasa/go-raytrace/scene/reader"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Frame file name used when neither the command line nor the scene specify one.
const defaultFrameFile = "frame.png"

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	opts, err := renderOptions(ctx)
	if err != nil {
		return err
	}

	// Load scene
	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	world, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	scheduler, err := opts.BlockScheduler()
	if err != nil {
		return err
	}

	// Create renderer
	r, err := renderer.NewDefault(world, scheduler, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Noticef("rendering %dx%d frame", world.Camera.Width, world.Camera.Height)
	err = r.Render()
	if err != nil {
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	// Export PNG
	imgFile := ctx.String("out")
	if imgFile == "" {
		imgFile = world.OutputFile
	}
	if imgFile == "" {
		imgFile = defaultFrameFile
	}

	start := time.Now()
	err = renderer.SaveFrameBuffer(r.FrameBuffer(), world.Camera.Width, world.Camera.Height, imgFile)
	if err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1e6)

	return nil
}

// Assemble render options. Values from the optional config file override the
// defaults and explicitly set flags override both.
func renderOptions(ctx *cli.Context) (renderer.Options, error) {
	opts := renderer.DefaultOptions()

	if cfgFile := ctx.String("config"); cfgFile != "" {
		if err := renderer.LoadOptions(cfgFile, &opts); err != nil {
			return opts, err
		}
	}

	if ctx.IsSet("tracers") {
		opts.Tracers = uint32(ctx.Int("tracers"))
	}
	if ctx.IsSet("workers") {
		opts.Workers = uint32(ctx.Int("workers"))
	}
	if ctx.IsSet("spp") {
		opts.SamplesPerPixel = uint32(ctx.Int("spp"))
	}
	if ctx.IsSet("scheduler") {
		opts.Scheduler = ctx.String("scheduler")
	}

	return opts, nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Block height", "% of frame", "Primary rays", "Shadow rays", "Reflection rays", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%d", stat.PrimaryRays),
			fmt.Sprintf("%d", stat.ShadowRays),
			fmt.Sprintf("%d", stat.ReflectionRays),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "", "TOTAL RAYS", fmt.Sprintf("%d", stats.TotalRays()), stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame %s statistics\n%s", stats.FrameId, buf.String())
}
