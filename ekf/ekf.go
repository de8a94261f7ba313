package ekf

import (
	"fmt"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/mat"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/estimate"
	"github.com/milosgajdos/go-slam/model"
	"github.com/milosgajdos/go-slam/noise"
	"github.com/milosgajdos/go-slam/rigid2d"
)

// unknownLandmarkVar is the variance assigned to landmark coordinates
// before the first observation arrives.
const unknownLandmarkVar = 10000.0

// SLAM is an Extended Kalman Filter which estimates the robot pose jointly
// with the positions of a fixed set of landmarks.
// The state vector stores {theta, x, y} in the first three slots followed by
// one {x, y} pair per landmark slot.
type SLAM struct {
	// motion is robot motion model
	motion slam.MotionModel
	// sensor is landmark sensor model
	sensor slam.MeasurementModel
	// q is state noise a.k.a. process noise
	q slam.Noise
	// r is output noise a.k.a. measurement noise
	r slam.Noise
	// landmarks is the number of landmark slots
	landmarks int
	// x is joint robot and map state
	x *mat.VecDense
	// p is the filter covariance matrix
	p *mat.SymDense
	// inn is innovation vector
	inn *mat.VecDense
	// k is Kalman gain
	k *mat.Dense
}

// New creates new SLAM filter and returns it.
// It accepts the following parameters:
// - landmarks: number of landmark slots tracked in the state
// - q:         state a.k.a. process noise
// - r:         output a.k.a. measurement noise
// Nil noise is replaced with zero noise of the expected dimension.
// It returns error if either of the following conditions is met:
// - invalid landmark count is given: landmark count must not be negative
// - invalid state or output noise is given: noise covariance must match the pose and observation dimensions
func New(landmarks int, q, r slam.Noise) (*SLAM, error) {
	if landmarks < 0 {
		return nil, fmt.Errorf("invalid landmark count: %d", landmarks)
	}

	if q != nil {
		if q.Cov().SymmetricDim() != 3 {
			return nil, fmt.Errorf("invalid state noise dimension: %d", q.Cov().SymmetricDim())
		}
	} else {
		q, _ = noise.NewZero(3)
	}

	if r != nil {
		if r.Cov().SymmetricDim() != 2 {
			return nil, fmt.Errorf("invalid output noise dimension: %d", r.Cov().SymmetricDim())
		}
	} else {
		r, _ = noise.NewZero(2)
	}

	dim := 3 + 2*landmarks

	x := mat.NewVecDense(dim, nil)

	// robot and cross blocks start at zero, landmark positions start unknown
	p := mat.NewSymDense(dim, nil)
	for i := 3; i < dim; i++ {
		p.SetSym(i, i, unknownLandmarkVar)
	}

	return &SLAM{
		motion:    model.NewUnicycle(),
		sensor:    model.NewRangeBearing(),
		q:         q,
		r:         r,
		landmarks: landmarks,
		x:         x,
		p:         p,
		inn:       mat.NewVecDense(2, nil),
		k:         mat.NewDense(dim, 2, nil),
	}, nil
}

// Predict propagates the pose part of the state through one motion command
// and updates the filter covariance accordingly.
// Landmark slots are left untouched as landmarks do not move.
// It returns error if the state noise sample has unexpected dimension.
func (s *SLAM) Predict(cmd rigid2d.Twist) error {
	w := s.q.Sample()
	if w.Len() != 3 {
		return fmt.Errorf("invalid state noise sample length: %d", w.Len())
	}

	delta, ddelta := s.motion.Delta(s.x.AtVec(0), cmd)

	for i := 0; i < 3; i++ {
		s.x.SetVec(i, s.x.AtVec(i)+delta.AtVec(i)+w.AtVec(i))
	}

	// state transition Jacobian: identity with the delta derivatives
	// folded into the heading column of the pose block
	dim := s.x.Len()
	g := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		g.Set(i, i, 1.0)
	}
	for i := 0; i < 3; i++ {
		g.Set(i, 0, g.At(i, 0)+ddelta.AtVec(i))
	}

	cov := &mat.Dense{}
	cov.Mul(g, s.p)
	cov.Mul(cov, g.T())

	// process noise enters through the pose block only
	qCov := s.q.Cov()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cov.Set(i, j, cov.At(i, j)+qCov.At(i, j))
		}
	}

	// update SLAM covariance matrix
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			s.p.SetSym(i, j, cov.At(i, j))
		}
	}

	return nil
}

// Correct folds one scan of landmark observations into the estimate.
// Observation i must belong to landmark slot i; updates are applied
// sequentially so the correction of slot i sees the state already corrected
// by slots 0..i-1. A landmark whose estimate coincides with the robot
// position has no defined observation Jacobian and is skipped; updates
// applied earlier in the same call remain in place.
// It returns error if the scan observes more landmarks than the filter
// tracks, before any state is modified, or if the innovation covariance
// turns out singular.
func (s *SLAM) Correct(scan []slam.Observation) error {
	if len(scan) > s.landmarks {
		return fmt.Errorf("invalid scan length: %d observations for %d landmark slots", len(scan), s.landmarks)
	}

	dim := s.x.Len()

	for i, o := range scan {
		pose := rigid2d.Pose{Theta: s.x.AtVec(0), X: s.x.AtVec(1), Y: s.x.AtVec(2)}
		lm := r2.Point{X: s.x.AtVec(3 + 2*i), Y: s.x.AtVec(4 + 2*i)}

		// fresh measurement noise shapes the expected observation,
		// the actual observation is taken as sensed
		zExpected := s.sensor.Observe(pose, lm, s.r.Sample())
		zActual := s.sensor.Observe(pose, o.Center, nil)

		h, err := s.sensor.Jacobian(pose, lm, i, s.landmarks)
		if err != nil {
			// degenerate geometry: skip this landmark
			continue
		}

		// P*H'
		pht := &mat.Dense{}
		pht.Mul(s.p, h.T())

		// H*P*H' + R
		hpht := &mat.Dense{}
		hpht.Mul(h, pht)
		hpht.Add(hpht, s.r.Cov())

		hphtInv := &mat.Dense{}
		if err := hphtInv.Inverse(hpht); err != nil {
			return fmt.Errorf("failed to invert innovation covariance: %v", err)
		}

		// calculate Kalman gain
		gain := &mat.Dense{}
		gain.Mul(pht, hphtInv)

		// innovation vector
		inn := &mat.VecDense{}
		inn.SubVec(zActual, zExpected)

		// update state
		corr := &mat.Dense{}
		corr.Mul(gain, inn)
		s.x.AddVec(s.x, corr.ColView(0))

		// (I - K*H) * P
		eye := mat.NewDiagDense(dim, nil)
		for j := 0; j < dim; j++ {
			eye.SetDiag(j, 1.0)
		}
		a := &mat.Dense{}
		a.Mul(gain, h)
		a.Sub(eye, a)

		cov := &mat.Dense{}
		cov.Mul(a, s.p)

		// update SLAM innovation vector and Kalman gain
		s.inn.CopyVec(inn)
		s.k.Copy(gain)
		// update SLAM covariance matrix
		for r := 0; r < dim; r++ {
			for c := r; c < dim; c++ {
				s.p.SetSym(r, c, cov.At(r, c))
			}
		}
	}

	return nil
}

// Pose returns the current robot pose estimate as {theta, x, y}
func (s *SLAM) Pose() []float64 {
	return []float64{s.x.AtVec(0), s.x.AtVec(1), s.x.AtVec(2)}
}

// Landmark returns the current position estimate of the given landmark slot.
// It returns error if the slot is out of range.
func (s *SLAM) Landmark(i int) (r2.Point, error) {
	if i < 0 || i >= s.landmarks {
		return r2.Point{}, fmt.Errorf("invalid landmark slot: %d", i)
	}

	return r2.Point{X: s.x.AtVec(3 + 2*i), Y: s.x.AtVec(4 + 2*i)}, nil
}

// Landmarks returns the number of landmark slots tracked by the filter
func (s *SLAM) Landmarks() int {
	return s.landmarks
}

// Estimate returns the current joint state estimate with its covariance
func (s *SLAM) Estimate() (slam.Estimate, error) {
	return estimate.NewJoint(s.x, s.p)
}

// StateNoise returns state noise
func (s *SLAM) StateNoise() slam.Noise {
	return s.q
}

// OutputNoise returns output noise
func (s *SLAM) OutputNoise() slam.Noise {
	return s.r
}

// Cov returns SLAM covariance
func (s *SLAM) Cov() mat.Symmetric {
	cov := mat.NewSymDense(s.p.SymmetricDim(), nil)
	cov.CopySym(s.p)

	return cov
}

// SetCov sets SLAM covariance matrix to cov.
// It returns error if either cov is nil or its dimensions differ from the SLAM covariance dimensions.
func (s *SLAM) SetCov(cov mat.Symmetric) error {
	if cov == nil {
		return fmt.Errorf("invalid covariance matrix: %v", cov)
	}

	if cov.SymmetricDim() != s.p.SymmetricDim() {
		return fmt.Errorf("invalid covariance matrix dims: [%d x %d]", cov.SymmetricDim(), cov.SymmetricDim())
	}

	s.p.CopySym(cov)

	return nil
}

// Gain returns Kalman gain
func (s *SLAM) Gain() mat.Matrix {
	gain := &mat.Dense{}
	gain.CloneFrom(s.k)

	return gain
}
