package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/go-raytrace/types"
)

// A pinhole camera that maps frame pixels to primary rays.
type Camera struct {
	Eye    types.Vec3
	LookAt types.Vec3
	Up     types.Vec3

	// Vertical field of view in degrees.
	FovY float32

	// Frame dimensions.
	Width  uint32
	Height uint32

	// Orthonormal camera basis; w points from the look-at point towards the eye.
	u, v, w types.Vec3

	tanHalfFovY float32
}

// Create a new camera.
func NewCamera(eye, lookAt, up types.Vec3, fovY float32, width, height uint32) *Camera {
	w := eye.Sub(lookAt).Normalize()
	u := up.Cross(w).Normalize()
	return &Camera{
		Eye:         eye,
		LookAt:      lookAt,
		Up:          up,
		FovY:        fovY,
		Width:       width,
		Height:      height,
		u:           u,
		v:           w.Cross(u),
		w:           w,
		tanHalfFovY: float32(math.Tan(float64(types.Radians(fovY / 2.0)))),
	}
}

// Get the normalized primary ray through the center of the pixel at the
// given frame row and column. Row 0 is the top of the frame.
func (c *Camera) Ray(row, col uint32) types.Ray {
	return c.RayThrough(float32(col)+0.5, float32(row)+0.5)
}

// Get the normalized primary ray through the continuous frame coordinates
// (x, y). Pixel (row, col) covers [col, col+1) x [row, row+1).
func (c *Camera) RayThrough(x, y float32) types.Ray {
	w := float32(c.Width)
	h := float32(c.Height)
	tanHalfFovX := c.tanHalfFovY * w / h

	alpha := tanHalfFovX * 2.0 / w * (x - w/2.0)
	beta := c.tanHalfFovY * 2.0 / h * (h/2.0 - y)
	dir := c.u.Mul(alpha).Add(c.v.Mul(beta)).Sub(c.w).Normalize()
	return types.NewRay(c.Eye, dir)
}

func (c *Camera) String() string {
	return fmt.Sprintf(
		"eye: (%3.3f, %3.3f, %3.3f), look at: (%3.3f, %3.3f, %3.3f), up: (%3.3f, %3.3f, %3.3f), fov: %3.1f, frame: %dx%d",
		c.Eye[0], c.Eye[1], c.Eye[2],
		c.LookAt[0], c.LookAt[1], c.LookAt[2],
		c.Up[0], c.Up[1], c.Up[2],
		c.FovY, c.Width, c.Height,
	)
}
