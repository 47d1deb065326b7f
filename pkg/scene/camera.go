package scene

import (
	"math"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// Camera is a pinhole perspective camera. The field of view spans the image
// width; pixels are square.
type Camera struct {
	position  core.Vec3
	direction core.Vec3
	right     core.Vec3
	up        core.Vec3
	width     int
	height    int
	pixelSize float64 // Size of one pixel on the image plane at distance 1
}

// NewCamera creates a camera looking along direction with the horizontal
// field of view given in degrees
func NewCamera(position, direction, up core.Vec3, fovDegrees float64, width, height int) *Camera {
	direction = direction.Normalize()
	right := direction.Cross(up).Normalize()
	up = right.Cross(direction).Normalize()

	fov := fovDegrees * math.Pi / 180
	return &Camera{
		position:  position,
		direction: direction,
		right:     right,
		up:        up,
		width:     width,
		height:    height,
		pixelSize: 2 * math.Tan(fov/2) / float64(width),
	}
}

// Position returns the camera origin
func (c *Camera) Position() core.Vec3 {
	return c.position
}

// Ray returns the ray through the centre of pixel (x, y); y grows downwards
func (c *Camera) Ray(x, y int) core.Ray {
	return c.rayAt(float64(x)+0.5, float64(y)+0.5)
}

// Rays returns n×n rays through a regular grid inside pixel (x, y)
func (c *Camera) Rays(x, y, n int) []core.Ray {
	if n <= 1 {
		return []core.Ray{c.Ray(x, y)}
	}

	rays := make([]core.Ray, 0, n*n)
	step := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			rays = append(rays, c.rayAt(float64(x)+(float64(j)+0.5)*step, float64(y)+(float64(i)+0.5)*step))
		}
	}
	return rays
}

// rayAt maps continuous image coordinates to a world ray
func (c *Camera) rayAt(px, py float64) core.Ray {
	sx := (px - float64(c.width)/2) * c.pixelSize
	sy := (float64(c.height)/2 - py) * c.pixelSize

	direction := c.direction.Add(c.right.Multiply(sx)).Add(c.up.Multiply(sy))
	return core.NewRay(c.position, direction)
}
