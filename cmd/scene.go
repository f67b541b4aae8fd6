package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/scene/reader"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
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

	logger.Noticef("scene information:\n%s", sceneStats(world))
	return nil
}

func sceneStats(world *scene.World) string {
	var spheres, triangles int
	for _, prim := range world.Primitives {
		switch prim.(type) {
		case *scene.Sphere:
			spheres++
		case *scene.Triangle:
			triangles++
		}
	}

	var directional, point int
	for _, light := range world.Lights {
		if light.Type == scene.DirectionalLight {
			directional++
		} else {
			point++
		}
	}

	camera := "not defined"
	if world.Camera != nil {
		camera = world.Camera.String()
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Camera", camera})
	table.Append([]string{"Spheres", fmt.Sprintf("%d", spheres)})
	table.Append([]string{"Triangles", fmt.Sprintf("%d", triangles)})
	table.Append([]string{"Directional lights", fmt.Sprintf("%d", directional)})
	table.Append([]string{"Point lights", fmt.Sprintf("%d", point)})
	table.Append([]string{"Ambient", fmt.Sprintf("%v", world.Ambient)})
	table.Append([]string{"Attenuation", fmt.Sprintf("%v", world.Attenuation)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", world.MaxDepth)})

	if world.Bvh != nil {
		bvhStats := world.Bvh.Stats()
		table.Append([]string{"BVH nodes", fmt.Sprintf("%d", bvhStats.Nodes)})
		table.Append([]string{"BVH leaves", fmt.Sprintf("%d", bvhStats.Leaves)})
		table.Append([]string{"BVH depth", fmt.Sprintf("%d", bvhStats.MaxDepth)})
	}
	if world.OutputFile != "" {
		table.Append([]string{"Output", world.OutputFile})
	}

	table.Render()
	return buf.String()
}
