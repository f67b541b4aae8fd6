package types

import "github.com/go-gl/mathgl/mgl32"

// A column-major 4x4 matrix.
type Mat4 mgl32.Mat4

// Create a 4x4 identity matrix.
func Ident4() Mat4 {
	return Mat4(mgl32.Ident4())
}

// Create a translation matrix.
func Translate4(v Vec3) Mat4 {
	return Mat4(mgl32.Translate3D(v[0], v[1], v[2]))
}

// Create a scale matrix.
func Scale4(v Vec3) Mat4 {
	return Mat4(mgl32.Scale3D(v[0], v[1], v[2]))
}

// Create a rotation matrix for rotating by the given angle (in degrees)
// around an arbitrary axis.
func Rotate4(axis Vec3, degrees float32) Mat4 {
	return Mat4(mgl32.HomogRotate3D(Radians(degrees), mgl32.Vec3(axis.Normalize())))
}

// Create a rotation matrix around the X axis. The angle is specified in degrees.
func RotateX4(degrees float32) Mat4 {
	return Mat4(mgl32.HomogRotate3DX(Radians(degrees)))
}

// Create a rotation matrix around the Y axis. The angle is specified in degrees.
func RotateY4(degrees float32) Mat4 {
	return Mat4(mgl32.HomogRotate3DY(Radians(degrees)))
}

// Create a rotation matrix around the Z axis. The angle is specified in degrees.
func RotateZ4(degrees float32) Mat4 {
	return Mat4(mgl32.HomogRotate3DZ(Radians(degrees)))
}

// Multiply with another matrix.
func (m Mat4) Mul4(m2 Mat4) Mat4 {
	return Mat4(mgl32.Mat4(m).Mul4(mgl32.Mat4(m2)))
}

// Multiply with a 4 component vector.
func (m Mat4) Mul4x1(v Vec4) Vec4 {
	return Vec4(mgl32.Mat4(m).Mul4x1(mgl32.Vec4(v)))
}

// Calculate matrix inverse. A singular matrix yields a zero matrix.
func (m Mat4) Inv() Mat4 {
	return Mat4(mgl32.Mat4(m).Inv())
}

// Calculate matrix transpose.
func (m Mat4) Transpose() Mat4 {
	return Mat4(mgl32.Mat4(m).Transpose())
}

// Transform a point. The matrix is assumed to be affine.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// Transform a vector, ignoring the translation part of the matrix.
func (m Mat4) MulVector(v Vec3) Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}

func (m Mat4) String() string {
	return mgl32.Mat4(m).String()
}
