package sim

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	slam "github.com/milosgajdos/go-slam"
	"github.com/milosgajdos/go-slam/diffdrive"
	"github.com/milosgajdos/go-slam/rigid2d"
)

// Runner drives a SLAM filter through the simulated world tick by tick:
// one prediction per executed command, one correction per scan, and records
// the ground truth, odometry only and filtered trajectories for comparison.
type Runner struct {
	// world is the simulated world
	world *World
	// filter is the estimator under test
	filter slam.Filter
	// odo is the odometry only baseline robot
	odo *diffdrive.DiffDrive
	// logger logs simulation progress
	logger golog.Logger
	// truth, odometry and filtered are recorded xy trajectories
	truth, odometry, filtered *mat.Dense
}

// NewRunner creates new simulation Runner and returns it.
// A nil logger is replaced with a default one.
// It returns error if the world, the filter or the odometry robot is nil.
func NewRunner(world *World, filter slam.Filter, odo *diffdrive.DiffDrive, logger golog.Logger) (*Runner, error) {
	if world == nil {
		return nil, errors.New("invalid world: nil")
	}

	if filter == nil {
		return nil, errors.New("invalid filter: nil")
	}

	if odo == nil {
		return nil, errors.New("invalid odometry robot: nil")
	}

	if logger == nil {
		logger = golog.NewLogger("sim")
	}

	return &Runner{
		world:  world,
		filter: filter,
		odo:    odo,
		logger: logger,
	}, nil
}

// Run simulates one control tick per command: the world executes the noisy
// command, the filter predicts with the commanded twist, corrects with the
// scan the world took, and the odometry baseline integrates the command as
// commanded. Trajectories recorded during the run replace earlier ones.
// It returns error if any tick fails.
func (r *Runner) Run(cmds []rigid2d.Twist) error {
	if len(cmds) == 0 {
		return errors.New("no commands to run")
	}

	r.truth = mat.NewDense(len(cmds), 2, nil)
	r.odometry = mat.NewDense(len(cmds), 2, nil)
	r.filtered = mat.NewDense(len(cmds), 2, nil)

	for i, cmd := range cmds {
		followed, err := r.world.Step(cmd)
		if err != nil {
			return errors.Wrapf(err, "failed to step world at tick %d", i)
		}

		if err := r.filter.Predict(cmd); err != nil {
			return errors.Wrapf(err, "failed to predict at tick %d", i)
		}

		scan, err := r.world.Scan()
		if err != nil {
			return errors.Wrapf(err, "failed to scan at tick %d", i)
		}

		if err := r.filter.Correct(scan); err != nil {
			return errors.Wrapf(err, "failed to correct at tick %d", i)
		}

		if err := r.odo.Feedforward(cmd); err != nil {
			return errors.Wrapf(err, "failed to integrate odometry at tick %d", i)
		}

		truth := r.world.Pose()
		odo := r.odo.Pose()
		pose := r.filter.Pose()

		r.truth.Set(i, 0, truth.X)
		r.truth.Set(i, 1, truth.Y)
		r.odometry.Set(i, 0, odo.X)
		r.odometry.Set(i, 1, odo.Y)
		r.filtered.Set(i, 0, pose[1])
		r.filtered.Set(i, 1, pose[2])

		r.logger.Debugf("tick %d: followed %+v truth (%.3f, %.3f) odometry (%.3f, %.3f) filtered (%.3f, %.3f)",
			i, followed, truth.X, truth.Y, odo.X, odo.Y, pose[1], pose[2])
	}

	return nil
}

// Truth returns the recorded ground truth trajectory
func (r *Runner) Truth() *mat.Dense {
	if r.truth == nil {
		return nil
	}

	out := &mat.Dense{}
	out.CloneFrom(r.truth)

	return out
}

// Odometry returns the recorded odometry only trajectory
func (r *Runner) Odometry() *mat.Dense {
	if r.odometry == nil {
		return nil
	}

	out := &mat.Dense{}
	out.CloneFrom(r.odometry)

	return out
}

// Filtered returns the recorded filtered trajectory
func (r *Runner) Filtered() *mat.Dense {
	if r.filtered == nil {
		return nil
	}

	out := &mat.Dense{}
	out.CloneFrom(r.filtered)

	return out
}
