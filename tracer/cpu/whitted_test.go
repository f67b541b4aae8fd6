package cpu

import (
	"math"
	"testing"

	"github.com/achilleasa/go-raytrace/scene/compiler"
	"github.com/achilleasa/go-raytrace/types"
)

func TestRecursionBound(t *testing.T) {
	for _, maxDepth := range []uint32{0, 1, 3, 5, 10} {
		// Two mirrors facing each other
		b := compiler.NewBuilder(compiler.PostMultiply)
		b.MaxDepth(maxDepth)
		b.Emission(types.XYZ(0.1, 0, 0))
		b.Specular(types.XYZ(0.5, 0.5, 0.5))
		b.Sphere(types.XYZ(0, 0, -3), 1)
		b.Sphere(types.XYZ(0, 0, 3), 1)

		w := NewWhitted(b.Build())
		color := w.RayColor(types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), 0)

		_, _, reflectionRays := w.ResetCounters()
		if reflectionRays != uint64(maxDepth) {
			t.Fatalf("[depth %d] expected %d reflection rays; got %d", maxDepth, maxDepth, reflectionRays)
		}

		// Each bounce adds the emission scaled by the accumulated specular factor
		expRed := 0.1 * (1 - math.Pow(0.5, float64(maxDepth))) / 0.5
		if math.Abs(float64(color[0])-expRed) > 1e-5 || color[1] != 0 || color[2] != 0 {
			t.Fatalf("[depth %d] expected color (%f, 0, 0); got %v", maxDepth, expRed, color)
		}
	}
}

func TestBackgroundIsBlack(t *testing.T) {
	b := compiler.NewBuilder(compiler.PostMultiply)
	b.Ambient(types.XYZ(1, 1, 1))
	b.Sphere(types.XYZ(0, 0, -3), 1)

	w := NewWhitted(b.Build())
	color := w.RayColor(types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1)), 0)
	if color != (types.Vec3{}) {
		t.Fatalf("expected a ray that misses all geometry to be black; got %v", color)
	}

	color = w.RayColor(types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), 0)
	if color != types.XYZ(1, 1, 1) {
		t.Fatalf("expected ambient color for an unlit hit; got %v", color)
	}
}

func TestPointLightShadow(t *testing.T) {
	type spec struct {
		occluder  bool
		center    types.Vec3
		expOccl   bool
		expShadow uint64
	}
	specs := []spec{
		{false, types.Vec3{}, false, 1},
		// Occluder between the surface and the light
		{true, types.XYZ(0, 2.5, 0), true, 1},
		// Occluder behind the light
		{true, types.XYZ(0, 7, 0), false, 1},
	}

	for index, s := range specs {
		b := compiler.NewBuilder(compiler.PostMultiply)
		b.Point(types.XYZ(0, 5, 0), types.XYZ(1, 1, 1))
		b.Diffuse(types.XYZ(1, 1, 1))
		b.Sphere(types.XYZ(0, 0, 0), 1)
		if s.occluder {
			b.Sphere(s.center, 0.5)
		}

		// The ray hits the top of the first sphere at (0, 1, 0)
		w := NewWhitted(b.Build())
		origin := types.XYZ(2, 3, 0)
		color := w.RayColor(types.NewRay(origin, types.XYZ(0, 1, 0).Sub(origin)), 0)

		_, shadowRays, _ := w.ResetCounters()
		if shadowRays != s.expShadow {
			t.Fatalf("[spec %d] expected %d shadow rays; got %d", index, s.expShadow, shadowRays)
		}

		if s.expOccl {
			if color != (types.Vec3{}) {
				t.Fatalf("[spec %d] expected shadowed point to receive no light; got %v", index, color)
			}
			continue
		}

		for ch := 0; ch < 3; ch++ {
			if math.Abs(float64(color[ch]-1)) > 1e-4 {
				t.Fatalf("[spec %d] expected unoccluded point to be fully lit; got %v", index, color)
			}
		}
	}
}

func TestPointLightAttenuation(t *testing.T) {
	b := compiler.NewBuilder(compiler.PostMultiply)
	b.Attenuation(1, 0.5, 0.25)
	b.Point(types.XYZ(0, 3, 0), types.XYZ(1, 1, 1))
	b.Diffuse(types.XYZ(1, 1, 1))
	b.Sphere(types.XYZ(0, 0, 0), 1)

	// Hit point at (0, 1, 0); light at distance 2
	w := NewWhitted(b.Build())
	color := w.RayColor(types.NewRay(types.XYZ(0, 5, 0), types.XYZ(0, -1, 0)), 0)

	// The ray passes through the light position but lights are not geometry
	exp := float32(1.0 / (1 + 0.5*2 + 0.25*4))
	if math.Abs(float64(color[0]-exp)) > 1e-4 {
		t.Fatalf("expected attenuated intensity %f; got %f", exp, color[0])
	}
}

func TestDirectionalLightSpecular(t *testing.T) {
	b := compiler.NewBuilder(compiler.PostMultiply)
	b.Directional(types.XYZ(0, 0, -1), types.XYZ(0.5, 0.5, 0.5))
	b.Diffuse(types.XYZ(1, 0, 0))
	b.Specular(types.XYZ(0, 0.25, 0))
	b.Shininess(10)
	b.MaxDepth(1)
	b.Sphere(types.XYZ(0, 0, 0), 1)

	// Viewer, light and normal are aligned so N.L = N.H = 1
	w := NewWhitted(b.Build())
	color := w.RayColor(types.NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1)), 0)

	exp := types.XYZ(0.5, 0.25, 0)
	for ch := 0; ch < 3; ch++ {
		if math.Abs(float64(color[ch]-exp[ch])) > 1e-4 {
			t.Fatalf("expected color %v; got %v", exp, color)
		}
	}
}
