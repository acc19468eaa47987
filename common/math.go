package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec3 is a world-space vector. X/Y form the ground plane, Z is up.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector, or the zero vector for near-zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Flat drops the vertical component.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Y: v.Y}
}

func Dist(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// Forward is the unit ground-plane direction for a yaw in degrees.
func Forward(yawDeg float64) Vec3 {
	r := yawDeg * math.Pi / 180
	return Vec3{X: math.Cos(r), Y: math.Sin(r)}
}

// YawTowards returns the yaw in degrees that faces from a to b on the ground plane.
func YawTowards(a, b Vec3) float64 {
	d := b.Sub(a)
	if math.Abs(d.X) < 1e-9 && math.Abs(d.Y) < 1e-9 {
		return 0
	}
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

func RadToDeg(r float64) float64 {
	return r * 180 / math.Pi
}
