package scene

import "github.com/achilleasa/go-raytrace/types"

type LightType uint8

const (
	DirectionalLight LightType = iota
	PointLight
)

// Defines a scene light.
type Light struct {
	Type LightType

	// The direction light travels along for directional lights or the
	// world-space light position for point lights.
	Vector types.Vec3

	// Light intensity.
	Intensity types.Vec3
}

// Create a directional light emitting along dir.
func NewDirectionalLight(dir, intensity types.Vec3) Light {
	return Light{Type: DirectionalLight, Vector: dir, Intensity: intensity}
}

// Create a point light at the given position. Point lights are attenuated
// using the world attenuation coefficients.
func NewPointLight(pos, intensity types.Vec3) Light {
	return Light{Type: PointLight, Vector: pos, Intensity: intensity}
}
