package sim

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/diffdrive"
	"github.com/milosgajdos/go-slam/noise"
	"github.com/milosgajdos/go-slam/rand"
	"github.com/milosgajdos/go-slam/rigid2d"
)

// World simulates a differential drive robot driving among a fixed set of
// circular landmarks. The twists the robot executes and the scans it takes
// are perturbed by the configured noise, drawn from a seeded source so the
// same configuration replays the same world.
type World struct {
	// truth is the ground truth robot
	truth *diffdrive.DiffDrive
	// landmarks are the true landmarks
	landmarks []Landmark
	// actuation perturbs executed twists
	actuation slam.Noise
	// scanCov shapes the scan perturbations
	scanCov *mat.SymDense
	// src drives the scan randomness
	src xrand.Source
}

// NewWorld creates new simulated World from c and returns it.
// It returns error if c does not validate or if the actuation noise
// covariance cannot be factorized.
func NewWorld(c *Config) (*World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	truth, err := diffdrive.New(rigid2d.Pose{}, c.WheelBase, c.WheelRadius)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create robot")
	}

	// actuation noise perturbs the twist components wheels can realize
	var actuation slam.Noise
	if c.ProcessNoise[0] > 0 || c.ProcessNoise[1] > 0 {
		actCov := mat.NewSymDense(2, nil)
		actCov.SetSym(0, 0, c.ProcessNoise[0])
		actCov.SetSym(1, 1, c.ProcessNoise[1])

		actuation, err = noise.NewGaussianWithSource([]float64{0, 0}, actCov, xrand.NewSource(c.Seed))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create actuation noise")
		}
	} else {
		actuation, _ = noise.NewZero(2)
	}

	scanCov := mat.NewSymDense(2, nil)
	scanCov.SetSym(0, 0, c.ScanNoise[0])
	scanCov.SetSym(1, 1, c.ScanNoise[1])

	landmarks := make([]Landmark, len(c.Landmarks))
	copy(landmarks, c.Landmarks)

	return &World{
		truth:     truth,
		landmarks: landmarks,
		actuation: actuation,
		scanCov:   scanCov,
		src:       xrand.NewSource(c.Seed + 1),
	}, nil
}

// Step executes cmd perturbed by actuation noise on the ground truth robot
// for one time unit. It returns the twist the robot actually followed.
// It returns error if the perturbed twist cannot be realized by the wheels.
func (w *World) Step(cmd rigid2d.Twist) (rigid2d.Twist, error) {
	n := w.actuation.Sample()

	tw := rigid2d.Twist{
		Wz: cmd.Wz + n.AtVec(0),
		Vx: cmd.Vx + n.AtVec(1),
		Vy: cmd.Vy,
	}

	if err := w.truth.Feedforward(tw); err != nil {
		return rigid2d.Twist{}, errors.Wrap(err, "failed to drive robot")
	}

	return tw, nil
}

// Scan returns one observation per landmark in configuration order, each
// center perturbed by scan noise.
func (w *World) Scan() ([]slam.Observation, error) {
	perturb, err := rand.WithCovSourceN(w.scanCov, w.src, len(w.landmarks))
	if err != nil {
		return nil, errors.Wrap(err, "failed to perturb scan")
	}

	scan := make([]slam.Observation, len(w.landmarks))
	for i, lm := range w.landmarks {
		scan[i] = slam.Observation{
			Center: r2.Point{X: lm.X + perturb.At(0, i), Y: lm.Y + perturb.At(1, i)},
			Radius: lm.Radius,
		}
	}

	return scan, nil
}

// Pose returns the ground truth robot pose
func (w *World) Pose() rigid2d.Pose {
	return w.truth.Pose()
}

// Landmarks returns the true landmarks
func (w *World) Landmarks() []Landmark {
	landmarks := make([]Landmark, len(w.landmarks))
	copy(landmarks, w.landmarks)

	return landmarks
}
