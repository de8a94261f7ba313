package slam

import (
	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/mat"

	"github.com/milosgajdos/go-slam/rigid2d"
)

// Filter is a simultaneous localization and mapping filter.
type Filter interface {
	// Predict propagates the estimate through one motion command
	Predict(cmd rigid2d.Twist) error
	// Correct folds one scan of landmark observations into the estimate
	Correct(scan []Observation) error
	// Pose returns the current robot pose estimate as {theta, x, y}
	Pose() []float64
}

// MotionModel computes the deterministic pose change caused by a motion
// command applied for one time unit.
type MotionModel interface {
	// Delta returns the pose change {dtheta, dx, dy} produced by cmd at
	// heading theta, together with the partial derivatives of the change
	// with respect to theta
	Delta(theta float64, cmd rigid2d.Twist) (delta, ddelta mat.Vector)
}

// MeasurementModel turns robot and landmark positions into sensor
// observations and linearizes them around the current estimate.
type MeasurementModel interface {
	// Observe returns the observation {range, bearing} of the point p as
	// seen from pose; noise, when non-nil, is added to the observation
	// before the bearing is normalized
	Observe(pose rigid2d.Pose, p r2.Point, noise mat.Vector) mat.Vector
	// Jacobian returns the observation Jacobian of the landmark stored in
	// the given slot out of landmarks state slots, evaluated at pose and p
	Jacobian(pose rigid2d.Pose, p r2.Point, slot, landmarks int) (mat.Matrix, error)
}

// Noise is additive system noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset() error
}

// Estimate is a state estimate with covariance
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}

// Observation is one detected landmark in a sensor scan. Observations are
// matched to filter state by position: the i-th observation of every scan
// must belong to the i-th landmark slot.
type Observation struct {
	// Center is the estimated landmark center
	Center r2.Point
	// Radius is the estimated landmark radius; it is accepted but does
	// not participate in the correction
	Radius float64
}
