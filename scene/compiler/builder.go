package compiler

import (
	"errors"
	"fmt"

	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/types"
)

// TransformOrder controls how a new transform is combined with the transform
// at the top of the builder's transform stack.
type TransformOrder uint8

const (
	// top = top * M; transforms apply to geometry in reverse order of
	// declaration.
	PostMultiply TransformOrder = iota

	// top = M * top; transforms apply to geometry in order of declaration.
	PreMultiply
)

var (
	ErrTransformStackEmpty = errors.New("builder: cannot pop the last transform from the stack")
)

const (
	defaultWidth    uint32  = 640
	defaultHeight   uint32  = 480
	defaultFov      float32 = 30
	defaultMaxDepth uint32  = 5
)

// Builder assembles a World from a sequence of scene commands. It keeps
// track of the current material and a stack of transforms which are applied
// to subsequently defined primitives.
type Builder struct {
	order TransformOrder

	width, height uint32

	cameraSet bool
	eye       types.Vec3
	lookAt    types.Vec3
	up        types.Vec3
	fovY      float32

	ambient     types.Vec3
	attenuation types.Vec3
	maxDepth    uint32
	outputFile  string

	lights     []scene.Light
	primitives scene.PrimitiveList
	vertices   []types.Vec3
	transforms []types.Mat4

	// The current material properties and a shared instance of them which is
	// reset whenever a property changes.
	material    scene.Material
	materialRef *scene.Material
}

// Create a new builder using the specified transform order.
func NewBuilder(order TransformOrder) *Builder {
	return &Builder{
		order:       order,
		width:       defaultWidth,
		height:      defaultHeight,
		fovY:        defaultFov,
		attenuation: types.XYZ(1, 0, 0),
		maxDepth:    defaultMaxDepth,
		lights:      make([]scene.Light, 0),
		primitives:  make(scene.PrimitiveList, 0),
		vertices:    make([]types.Vec3, 0),
		transforms:  []types.Mat4{types.Ident4()},
	}
}

// Set frame dimensions.
func (b *Builder) Size(width, height uint32) {
	b.width, b.height = width, height
}

// Set the max recursion depth for reflection rays.
func (b *Builder) MaxDepth(depth uint32) {
	b.maxDepth = depth
}

// Set the file that the rendered frame should be written to.
func (b *Builder) Output(filename string) {
	b.outputFile = filename
}

// Setup camera. The fov is the vertical field of view in degrees.
func (b *Builder) Camera(eye, lookAt, up types.Vec3, fovY float32) {
	b.cameraSet = true
	b.eye, b.lookAt, b.up, b.fovY = eye, lookAt, up, fovY
}

// Set ambient color.
func (b *Builder) Ambient(color types.Vec3) {
	b.ambient = color
}

// Set point light attenuation coefficients.
func (b *Builder) Attenuation(constant, linear, quadratic float32) {
	b.attenuation = types.XYZ(constant, linear, quadratic)
}

// Add a directional light.
func (b *Builder) Directional(dir, intensity types.Vec3) {
	b.lights = append(b.lights, scene.NewDirectionalLight(dir, intensity))
}

// Add a point light.
func (b *Builder) Point(pos, intensity types.Vec3) {
	b.lights = append(b.lights, scene.NewPointLight(pos, intensity))
}

// Set diffuse color of the current material.
func (b *Builder) Diffuse(color types.Vec3) {
	b.material.Diffuse = color
	b.materialRef = nil
}

// Set specular color of the current material.
func (b *Builder) Specular(color types.Vec3) {
	b.material.Specular = color
	b.materialRef = nil
}

// Set shininess of the current material.
func (b *Builder) Shininess(s float32) {
	b.material.Shininess = s
	b.materialRef = nil
}

// Set emission color of the current material.
func (b *Builder) Emission(color types.Vec3) {
	b.material.Emission = color
	b.materialRef = nil
}

// Add a vertex to the vertex list. Vertices are referenced by Tri using
// their zero-based index.
func (b *Builder) Vertex(v types.Vec3) {
	b.vertices = append(b.vertices, v)
}

// Get number of defined vertices.
func (b *Builder) VertexCount() int {
	return len(b.vertices)
}

// Add a sphere using the current material and transform.
func (b *Builder) Sphere(center types.Vec3, radius float32) {
	b.primitives = append(b.primitives, scene.NewSphere(center, radius, b.currentMaterial(), b.top()))
}

// Add a triangle using the current material and transform.
func (b *Builder) Tri(v1, v2, v3 int) error {
	for _, idx := range []int{v1, v2, v3} {
		if idx < 0 || idx >= b.VertexCount() {
			return fmt.Errorf("builder: vertex index %d out of bounds; %d vertices defined", idx, b.VertexCount())
		}
	}

	b.primitives = append(b.primitives, scene.NewTriangle(
		b.vertices[v1], b.vertices[v2], b.vertices[v3],
		b.currentMaterial(), b.top(),
	))
	return nil
}

// Push a copy of the current transform to the stack.
func (b *Builder) PushTransform() {
	b.transforms = append(b.transforms, b.top())
}

// Pop the current transform off the stack.
func (b *Builder) PopTransform() error {
	if len(b.transforms) == 1 {
		return ErrTransformStackEmpty
	}
	b.transforms = b.transforms[:len(b.transforms)-1]
	return nil
}

// Apply a translation to the current transform.
func (b *Builder) Translate(v types.Vec3) {
	b.apply(types.Translate4(v))
}

// Apply a scale to the current transform.
func (b *Builder) Scale(v types.Vec3) {
	b.apply(types.Scale4(v))
}

// Apply a rotation around axis to the current transform. The angle is
// specified in degrees.
func (b *Builder) Rotate(axis types.Vec3, degrees float32) {
	b.apply(types.Rotate4(axis, degrees))
}

// Apply a rotation around the X axis to the current transform.
func (b *Builder) RotateX(degrees float32) {
	b.apply(types.RotateX4(degrees))
}

// Apply a rotation around the Y axis to the current transform.
func (b *Builder) RotateY(degrees float32) {
	b.apply(types.RotateY4(degrees))
}

// Apply a rotation around the Z axis to the current transform.
func (b *Builder) RotateZ(degrees float32) {
	b.apply(types.RotateZ4(degrees))
}

// Get the transform at the top of the stack.
func (b *Builder) Transform() types.Mat4 {
	return b.top()
}

// Package the world and build its BVH.
func (b *Builder) Build() *scene.World {
	w := &scene.World{
		Primitives:  b.primitives,
		Lights:      b.lights,
		Ambient:     b.ambient,
		Attenuation: b.attenuation,
		MaxDepth:    b.maxDepth,
		OutputFile:  b.outputFile,
	}

	if b.cameraSet {
		w.Camera = scene.NewCamera(b.eye, b.lookAt, b.up, b.fovY, b.width, b.height)
	}
	w.Bvh = BuildBVH(w.Primitives)

	return w
}

func (b *Builder) top() types.Mat4 {
	return b.transforms[len(b.transforms)-1]
}

func (b *Builder) apply(m types.Mat4) {
	top := &b.transforms[len(b.transforms)-1]
	switch b.order {
	case PreMultiply:
		*top = m.Mul4(*top)
	default:
		*top = top.Mul4(m)
	}
}

func (b *Builder) currentMaterial() *scene.Material {
	if b.materialRef == nil {
		mat := b.material
		b.materialRef = &mat
	}
	return b.materialRef
}
