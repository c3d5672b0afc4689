package nodectl

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

const (
	// normalizeEpsilon is the smallest length treated as a usable direction
	normalizeEpsilon = 1e-5
)

// Vector3 is a point or direction in the host world frame: X and Z span the ground plane, Y points up
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

var (
	VectorZero = Vector3{}
	VectorUp   = Vector3{X: 0, Y: 1, Z: 0}
)

// String returns pretty printed value for Vector3
func (v Vector3) String() string {
	return fmt.Sprintf("(%f, %f, %f)", v.X, v.Y, v.Z)
}

func (v Vector3) Add(u Vector3) Vector3 {
	return Vector3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

func (v Vector3) Sub(u Vector3) Vector3 {
	return Vector3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector3) Neg() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

func (v Vector3) Dot(u Vector3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns cross product v × u
func (v Vector3) Cross(u Vector3) Vector3 {
	return Vector3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns unit vector of the same direction. Vectors shorter than normalizeEpsilon become zero
func (v Vector3) Normalized() Vector3 {
	length := v.Length()
	if length < normalizeEpsilon {
		return VectorZero
	}
	return v.Scale(1.0 / length)
}

// Horizontal projects vector onto the ground plane
func (v Vector3) Horizontal() Vector3 {
	return Vector3{X: v.X, Y: 0, Z: v.Z}
}

// Planar returns ground plane coordinates of the vector as orb.Point (X == east, Y == north)
func (v Vector3) Planar() orb.Point {
	return orb.Point{v.X, v.Z}
}

// ApproxEqual checks if every component differs by no more than eps
func (v Vector3) ApproxEqual(u Vector3, eps float64) bool {
	return math.Abs(v.X-u.X) <= eps && math.Abs(v.Y-u.Y) <= eps && math.Abs(v.Z-u.Z) <= eps
}

// TransformToAbsolute converts vector v given in basis (axisX, axisY, axisZ) into the absolute frame
func TransformToAbsolute(v, axisX, axisY, axisZ Vector3) Vector3 {
	return axisX.Scale(v.X).Add(axisY.Scale(v.Y)).Add(axisZ.Scale(v.Z))
}

// TransformToLocal converts absolute vector v into basis (axisX, axisY, axisZ).
//
// Note: it is inverse of TransformToAbsolute only when axes are orthonormal
//
func TransformToLocal(v, axisX, axisY, axisZ Vector3) Vector3 {
	return Vector3{
		X: v.Dot(axisX),
		Y: v.Dot(axisY),
		Z: v.Dot(axisZ),
	}
}
