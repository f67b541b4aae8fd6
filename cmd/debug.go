package cmd

import (
	"errors"
	"fmt"
	"math"

	"github.com/achilleasa/go-raytrace/scene/reader"
	"github.com/achilleasa/go-raytrace/tracer/cpu"
	"github.com/urfave/cli"
)

// Trace the primary ray for a single pixel and display the closest hit and
// the shaded color.
func Debug(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	world, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}
	if err = world.Validate(); err != nil {
		return err
	}

	row, col := uint32(ctx.Int("row")), uint32(ctx.Int("col"))
	if row >= world.Camera.Height || col >= world.Camera.Width {
		return fmt.Errorf("pixel (%d, %d) is outside the %dx%d frame", row, col, world.Camera.Width, world.Camera.Height)
	}

	ray := world.Camera.Ray(row, col)
	logger.Noticef("primary ray for pixel (%d, %d): origin %v, dir %v", row, col, ray.Origin, ray.Dir)

	hit, ok := world.Intersect(ray, 0.001, float32(math.Inf(1)))
	if !ok {
		logger.Notice("primary ray does not hit any primitive")
	} else {
		logger.Noticef("closest hit at t=%f: point %v, normal %v, material %+v", hit.T, hit.Point, hit.Normal, *hit.Material)
	}

	integrator := cpu.NewWhitted(world)
	color := integrator.Trace(ray)
	primary, shadow, reflection := integrator.ResetCounters()
	logger.Noticef("pixel color %v (rays traced: %d primary, %d shadow, %d reflection)", color, primary, shadow, reflection)

	return nil
}
