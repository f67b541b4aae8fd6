package scene

import "github.com/achilleasa/go-raytrace/types"

// Defines a surface material for the local illumination model. Materials are
// never modified after creation and are shared by all primitives that
// reference them.
type Material struct {
	// Diffuse color.
	Diffuse types.Vec3

	// Specular color. Also scales mirror reflections.
	Specular types.Vec3

	// Phong exponent for specular highlights.
	Shininess float32

	// Emissive color.
	Emission types.Vec3
}
