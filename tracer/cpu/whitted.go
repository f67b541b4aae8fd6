package cpu

import (
	"math"
	"sync/atomic"

	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/types"
)

// Lower ray parameter bound for all scene queries. It prevents rays spawned
// at a surface from intersecting that surface.
const rayEpsilon float32 = 0.001

var infinity = float32(math.Inf(1))

// Whitted implements the Whitted local illumination model with recursive
// mirror reflections. It only reads from the world so a single instance can
// be shared by any number of goroutines.
type Whitted struct {
	world *scene.World

	primaryRays    atomic.Uint64
	shadowRays     atomic.Uint64
	reflectionRays atomic.Uint64
}

// Create a new integrator for the given world.
func NewWhitted(world *scene.World) *Whitted {
	return &Whitted{world: world}
}

// Trace a camera ray and return the gathered radiance.
func (w *Whitted) Trace(r types.Ray) types.Vec3 {
	w.primaryRays.Add(1)
	return w.RayColor(r, 0)
}

// Calculate the color seen along ray. Recursion stops once depth reaches the
// world's max depth. Any NaN produced by degenerate geometry is propagated to
// the caller.
func (w *Whitted) RayColor(r types.Ray, depth uint32) types.Vec3 {
	if depth >= w.world.MaxDepth {
		return types.Vec3{}
	}

	hit, ok := w.world.Intersect(r, rayEpsilon, infinity)
	if !ok {
		return types.Vec3{}
	}

	mat := hit.Material
	color := w.world.Ambient.Add(mat.Emission)

	viewDir := r.Dir.Neg().Normalize()
	for _, light := range w.world.Lights {
		switch light.Type {
		case scene.DirectionalLight:
			lightDir := light.Vector.Neg().Normalize()
			if w.occluded(hit.Point, lightDir, infinity) {
				continue
			}
			color = color.Add(shade(&hit, light.Intensity, lightDir, viewDir))
		case scene.PointLight:
			lightVec := light.Vector.Sub(hit.Point)
			dist := lightVec.Len()
			lightDir := lightVec.Div(dist)
			if w.occluded(hit.Point, lightDir, dist) {
				continue
			}
			att := w.world.Attenuation
			color = color.Add(
				shade(&hit, light.Intensity, lightDir, viewDir).Div(att[0] + att[1]*dist + att[2]*dist*dist),
			)
		}
	}

	// Mirror reflection
	w.reflectionRays.Add(1)
	reflected := types.NewRay(hit.Point, types.Reflect(r.Dir, hit.Normal))
	return color.Add(mat.Specular.MulVec(w.RayColor(reflected, depth+1)))
}

// Check whether anything blocks the path from origin along dir within dist.
func (w *Whitted) occluded(origin, dir types.Vec3, dist float32) bool {
	w.shadowRays.Add(1)
	_, hit := w.world.Intersect(types.NewRay(origin, dir), rayEpsilon, dist)
	return hit
}

// Get the number of traced rays by type and reset the counters.
func (w *Whitted) ResetCounters() (primary, shadow, reflection uint64) {
	return w.primaryRays.Swap(0), w.shadowRays.Swap(0), w.reflectionRays.Swap(0)
}

// Evaluate the diffuse and Blinn-Phong specular terms for a single
// unoccluded light.
func shade(hit *scene.Hit, intensity, lightDir, viewDir types.Vec3) types.Vec3 {
	mat := hit.Material
	nDotL := float32(math.Max(0, float64(hit.Normal.Dot(lightDir))))
	halfVec := viewDir.Add(lightDir).Normalize()
	nDotH := math.Max(0, float64(hit.Normal.Dot(halfVec)))

	diffuse := intensity.MulVec(mat.Diffuse).Mul(nDotL)
	specular := mat.Specular.Mul(float32(math.Pow(nDotH, float64(mat.Shininess))))
	return diffuse.Add(specular)
}
