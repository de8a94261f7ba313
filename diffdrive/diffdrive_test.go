package diffdrive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milosgajdos/go-slam/rigid2d"
)

func TestNew(t *testing.T) {
	assert := assert.New(t)

	d, err := New(rigid2d.Pose{}, 1.0, 0.5)
	assert.NotNil(d)
	assert.NoError(err)

	d, err = New(rigid2d.Pose{}, 0, 0.5)
	assert.Nil(d)
	assert.Error(err)

	d, err = New(rigid2d.Pose{}, 1.0, -0.1)
	assert.Nil(d)
	assert.Error(err)
}

func TestTwistToWheels(t *testing.T) {
	assert := assert.New(t)

	d, err := New(rigid2d.Pose{}, 1.0, 0.5)
	assert.NoError(err)

	// straight drive spins both wheels equally
	vels, err := d.TwistToWheels(rigid2d.Twist{Vx: 1.0})
	assert.NoError(err)
	assert.InDelta(2.0, vels.UL, 1e-12)
	assert.InDelta(2.0, vels.UR, 1e-12)

	// turning in place spins the wheels in opposite directions
	vels, err = d.TwistToWheels(rigid2d.Twist{Wz: 1.0})
	assert.NoError(err)
	assert.InDelta(-vels.UR, vels.UL, 1e-12)

	// wheels cannot produce lateral motion
	_, err = d.TwistToWheels(rigid2d.Twist{Vx: 1.0, Vy: 0.2})
	assert.Error(err)
}

func TestWheelsToTwist(t *testing.T) {
	assert := assert.New(t)

	d, err := New(rigid2d.Pose{}, 1.0, 0.5)
	assert.NoError(err)

	twists := []rigid2d.Twist{
		{Vx: 1.0},
		{Wz: 0.5},
		{Wz: -0.7, Vx: 0.3},
	}

	// wheel velocities round-trip back to the commanded twist
	for _, tw := range twists {
		vels, err := d.TwistToWheels(tw)
		assert.NoError(err)

		got := d.WheelsToTwist(vels)
		assert.InDelta(tw.Wz, got.Wz, 1e-12)
		assert.InDelta(tw.Vx, got.Vx, 1e-12)
		assert.Equal(0.0, got.Vy)
	}
}

func TestFeedforward(t *testing.T) {
	assert := assert.New(t)

	d, err := New(rigid2d.Pose{}, 1.0, 0.5)
	assert.NoError(err)

	assert.NoError(d.Feedforward(rigid2d.Twist{Vx: 1.0}))

	pose := d.Pose()
	assert.InDelta(0.0, pose.Theta, 1e-12)
	assert.InDelta(1.0, pose.X, 1e-12)
	assert.InDelta(0.0, pose.Y, 1e-12)

	// quarter arc of radius 2 from the origin
	d.Reset(rigid2d.Pose{})
	assert.NoError(d.Feedforward(rigid2d.Twist{Wz: math.Pi / 2, Vx: math.Pi}))

	pose = d.Pose()
	assert.InDelta(math.Pi/2, pose.Theta, 1e-12)
	assert.InDelta(2.0, pose.X, 1e-12)
	assert.InDelta(2.0, pose.Y, 1e-12)

	// unrealizable twist leaves the pose alone
	assert.Error(d.Feedforward(rigid2d.Twist{Vx: 1.0, Vy: 0.2}))
	assert.Equal(pose, d.Pose())
}

func TestUpdateOdometry(t *testing.T) {
	assert := assert.New(t)

	d, err := New(rigid2d.Pose{}, 1.0, 0.5)
	assert.NoError(err)

	// both wheels advanced two radians: one unit straight ahead
	vels := d.UpdateOdometry(2.0, 2.0)
	assert.InDelta(2.0, vels.UL, 1e-12)
	assert.InDelta(2.0, vels.UR, 1e-12)

	pose := d.Pose()
	assert.InDelta(0.0, pose.Theta, 1e-12)
	assert.InDelta(1.0, pose.X, 1e-12)

	// encoder readings are absolute: the second update sees the deltas
	vels = d.UpdateOdometry(4.0, 4.0)
	assert.InDelta(2.0, vels.UL, 1e-12)
	assert.InDelta(2.0, vels.UR, 1e-12)
	assert.InDelta(2.0, d.Pose().X, 1e-12)
}

func TestFeedforwardOdometryAgree(t *testing.T) {
	assert := assert.New(t)

	ff, err := New(rigid2d.Pose{}, 1.0, 0.5)
	assert.NoError(err)
	odo, err := New(rigid2d.Pose{}, 1.0, 0.5)
	assert.NoError(err)

	var left, right float64

	cmds := []rigid2d.Twist{
		{Vx: 0.5},
		{Wz: 0.3, Vx: 0.4},
		{Wz: -0.8},
	}

	// driving the command and integrating the matching encoder readings
	// must track the same pose
	for _, cmd := range cmds {
		assert.NoError(ff.Feedforward(cmd))

		vels, err := odo.TwistToWheels(cmd)
		assert.NoError(err)
		left += vels.UL
		right += vels.UR
		odo.UpdateOdometry(left, right)
	}

	assert.InDelta(ff.Pose().Theta, odo.Pose().Theta, 1e-9)
	assert.InDelta(ff.Pose().X, odo.Pose().X, 1e-9)
	assert.InDelta(ff.Pose().Y, odo.Pose().Y, 1e-9)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	d, err := New(rigid2d.Pose{}, 1.0, 0.5)
	assert.NoError(err)

	assert.NoError(d.Feedforward(rigid2d.Twist{Wz: 0.3, Vx: 0.4}))
	assert.NotEqual(rigid2d.Pose{}, d.Pose())

	home := rigid2d.Pose{Theta: 0.1, X: 2, Y: 3}
	d.Reset(home)
	assert.Equal(home, d.Pose())
	assert.Equal(WheelVelocities{}, d.WheelVelocities())
	assert.Equal(rigid2d.Twist{}, d.Twist())
}
