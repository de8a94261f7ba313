package diffdrive

import (
	"github.com/pkg/errors"

	"github.com/milosgajdos/go-slam/rigid2d"
)

// WheelVelocities are the wheel velocities of a differential drive robot,
// assumed to be held constant for one time unit.
type WheelVelocities struct {
	// UL is left wheel velocity
	UL float64
	// UR is right wheel velocity
	UR float64
}

// DiffDrive tracks the pose of a differential drive robot from either
// commanded body twists or wheel encoder readings.
type DiffDrive struct {
	// pose is the current robot pose
	pose rigid2d.Pose
	// base is the distance between the wheel centers
	base float64
	// radius is the wheel radius
	radius float64
	// vels are the wheel velocities from the last update
	vels WheelVelocities
	// left and right are the last seen encoder angles
	left, right float64
}

// New creates new DiffDrive robot with the given pose and wheel geometry and returns it.
// It returns error if the wheel base or the wheel radius is not positive.
func New(pose rigid2d.Pose, base, radius float64) (*DiffDrive, error) {
	if base <= 0 {
		return nil, errors.Errorf("invalid wheel base: %f", base)
	}

	if radius <= 0 {
		return nil, errors.Errorf("invalid wheel radius: %f", radius)
	}

	return &DiffDrive{
		pose:   pose,
		base:   base,
		radius: radius,
	}, nil
}

// TwistToWheels returns the wheel velocities which make the robot follow the
// desired body twist.
// It returns error if the twist has a lateral velocity component, which
// wheels cannot produce.
func (d *DiffDrive) TwistToWheels(tw rigid2d.Twist) (WheelVelocities, error) {
	if tw.Vy != 0 {
		return WheelVelocities{}, errors.Errorf("invalid twist: lateral velocity %f", tw.Vy)
	}

	return WheelVelocities{
		UL: (tw.Vx - d.base/2*tw.Wz) / d.radius,
		UR: (tw.Vx + d.base/2*tw.Wz) / d.radius,
	}, nil
}

// WheelsToTwist returns the body twist produced by the given wheel velocities.
func (d *DiffDrive) WheelsToTwist(vel WheelVelocities) rigid2d.Twist {
	return rigid2d.Twist{
		Wz: d.radius * (vel.UR - vel.UL) / d.base,
		Vx: d.radius * (vel.UR + vel.UL) / 2,
	}
}

// Feedforward drives the robot along cmd for one time unit, advancing the
// pose and the encoders as if the wheels tracked the command perfectly.
// It returns error if cmd cannot be realized by the wheels.
func (d *DiffDrive) Feedforward(cmd rigid2d.Twist) error {
	vels, err := d.TwistToWheels(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to follow twist")
	}

	d.vels = vels
	d.left += vels.UL
	d.right += vels.UR

	t := rigid2d.NewTransformFromPose(d.pose)
	d.pose = t.Mul(rigid2d.Integrate(cmd)).Pose()

	return nil
}

// UpdateOdometry advances the pose from the current encoder angles, given in
// radians, assuming the wheels spun at constant speed since the last update.
// It returns the wheel velocities recovered from the encoder deltas.
func (d *DiffDrive) UpdateOdometry(left, right float64) WheelVelocities {
	d.vels = WheelVelocities{
		UL: left - d.left,
		UR: right - d.right,
	}
	d.left = left
	d.right = right

	tw := d.WheelsToTwist(d.vels)

	t := rigid2d.NewTransformFromPose(d.pose)
	d.pose = t.Mul(rigid2d.Integrate(tw)).Pose()

	return d.vels
}

// Pose returns the current pose of the robot
func (d *DiffDrive) Pose() rigid2d.Pose {
	return d.pose
}

// WheelVelocities returns the wheel speeds from the last update
func (d *DiffDrive) WheelVelocities() WheelVelocities {
	return d.vels
}

// Twist returns the body twist from the last update
func (d *DiffDrive) Twist() rigid2d.Twist {
	return d.WheelsToTwist(d.vels)
}

// Reset places the robot at the given pose and zeroes the wheel state
func (d *DiffDrive) Reset(pose rigid2d.Pose) {
	d.pose = pose
	d.vels = WheelVelocities{}
	d.left = 0
	d.right = 0
}
