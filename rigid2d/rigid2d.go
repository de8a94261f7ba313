// Package rigid2d provides two-dimensional rigid body transformations:
// angle normalization, twists, poses and their composition.
package rigid2d

import (
	"math"

	"github.com/golang/geo/r2"
)

// AlmostEqual compares two floating point numbers using an absolute
// tolerance eps and returns true if they are within eps of each other.
func AlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// Deg2Rad converts an angle in degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rad2Deg converts an angle in radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeAngle maps an angle in radians to the equivalent angle in
// (-Pi, Pi]. The boundary maps as NormalizeAngle(-Pi) == Pi and
// NormalizeAngle(Pi) == Pi.
func NormalizeAngle(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad > math.Pi {
		rad -= 2 * math.Pi
	}
	if rad <= -math.Pi {
		rad += 2 * math.Pi
	}
	return rad
}

// Twist is a two-dimensional body velocity: angular velocity about z and
// linear velocities along the body x and y axes.
type Twist struct {
	// Wz is angular velocity
	Wz float64
	// Vx is linear x velocity
	Vx float64
	// Vy is linear y velocity
	Vy float64
}

// Pose is a planar robot pose: heading followed by position.
type Pose struct {
	// Theta is heading in radians
	Theta float64
	// X is x position
	X float64
	// Y is y position
	Y float64
}

// Point returns the position component of the pose.
func (p Pose) Point() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Transform is a rigid body transformation in two dimensions.
// Use NewTransform or NewTransformFromPose to create one.
type Transform struct {
	theta          float64
	ctheta, stheta float64
	x, y           float64
}

// NewTransform creates a transformation composed of a rotation by theta
// radians followed by a translation by trans.
func NewTransform(trans r2.Point, theta float64) Transform {
	return Transform{
		theta:  theta,
		ctheta: math.Cos(theta),
		stheta: math.Sin(theta),
		x:      trans.X,
		y:      trans.Y,
	}
}

// NewTransformFromPose creates the transformation from the world frame to
// the body frame of a robot at pose p.
func NewTransformFromPose(p Pose) Transform {
	return NewTransform(r2.Point{X: p.X, Y: p.Y}, p.Theta)
}

// Apply transforms the point v into the new coordinate frame.
func (t Transform) Apply(v r2.Point) r2.Point {
	return r2.Point{
		X: t.ctheta*v.X - t.stheta*v.Y + t.x,
		Y: t.stheta*v.X + t.ctheta*v.Y + t.y,
	}
}

// ApplyTwist maps the twist tw into the frame reached by t. The angular
// component is frame invariant; the linear component picks up the lever arm
// of the frame origin.
func (t Transform) ApplyTwist(tw Twist) Twist {
	return Twist{
		Wz: tw.Wz,
		Vx: t.y*tw.Wz + t.ctheta*tw.Vx - t.stheta*tw.Vy,
		Vy: -t.x*tw.Wz + t.stheta*tw.Vx + t.ctheta*tw.Vy,
	}
}

// Inv returns the inverse transformation.
func (t Transform) Inv() Transform {
	return Transform{
		theta:  -t.theta,
		ctheta: t.ctheta,
		stheta: -t.stheta,
		x:      -t.ctheta*t.x - t.stheta*t.y,
		y:      t.stheta*t.x - t.ctheta*t.y,
	}
}

// Mul composes t with rhs and returns the resulting transformation:
// applying the result is equivalent to applying rhs first and t second.
func (t Transform) Mul(rhs Transform) Transform {
	theta := NormalizeAngle(t.theta + rhs.theta)
	return Transform{
		theta:  theta,
		ctheta: math.Cos(theta),
		stheta: math.Sin(theta),
		x:      t.ctheta*rhs.x - t.stheta*rhs.y + t.x,
		y:      t.stheta*rhs.x + t.ctheta*rhs.y + t.y,
	}
}

// Pose returns the pose reached by applying t to the origin.
func (t Transform) Pose() Pose {
	return Pose{
		Theta: NormalizeAngle(t.theta),
		X:     t.x,
		Y:     t.y,
	}
}

// Integrate returns the transformation reached by following the constant
// twist tw for one time unit: a pure translation when Wz is zero, otherwise
// a screw motion about the instantaneous center of rotation.
func Integrate(tw Twist) Transform {
	if tw.Wz == 0 {
		return NewTransform(r2.Point{X: tw.Vx, Y: tw.Vy}, 0)
	}

	s := math.Sin(tw.Wz)
	c := math.Cos(tw.Wz)
	trans := r2.Point{
		X: (s*tw.Vx - (1-c)*tw.Vy) / tw.Wz,
		Y: ((1-c)*tw.Vx + s*tw.Vy) / tw.Wz,
	}

	return NewTransform(trans, tw.Wz)
}
