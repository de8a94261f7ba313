package model

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/mat"

	"github.com/milosgajdos/go-slam/rigid2d"
)

// RangeBearing is a range and bearing sensor model.
// Range is the Euclidean distance from the sensor to the target and bearing
// is the heading-relative angle to the target, normalized to (-pi, pi].
type RangeBearing struct{}

// NewRangeBearing creates new RangeBearing sensor model and returns it
func NewRangeBearing() *RangeBearing {
	return &RangeBearing{}
}

// Observe returns the observation {range, bearing} of p as seen from pose.
// When noise is not nil its two components are added to the raw range and
// bearing before the bearing is normalized.
func (rb *RangeBearing) Observe(pose rigid2d.Pose, p r2.Point, noise mat.Vector) mat.Vector {
	dx := p.X - pose.X
	dy := p.Y - pose.Y

	var n0, n1 float64
	if noise != nil {
		n0, n1 = noise.AtVec(0), noise.AtVec(1)
	}

	z := mat.NewVecDense(2, nil)
	z.SetVec(0, math.Sqrt(dx*dx+dy*dy)+n0)
	z.SetVec(1, rigid2d.NormalizeAngle(math.Atan2(dy, dx)-pose.Theta+n1))

	return z
}

// Jacobian returns the observation Jacobian of the landmark stored in slot,
// one of landmarks state slots, evaluated at pose and the landmark position p.
// The returned matrix has 2 rows and 3+2*landmarks columns: the first three
// columns hold the pose derivatives, the slot columns hold the landmark ones.
// It returns error if slot is out of range or if p coincides with the pose
// position, which makes the observation derivatives undefined.
func (rb *RangeBearing) Jacobian(pose rigid2d.Pose, p r2.Point, slot, landmarks int) (mat.Matrix, error) {
	if slot < 0 || slot >= landmarks {
		return nil, fmt.Errorf("invalid landmark slot: %d", slot)
	}

	dx := p.X - pose.X
	dy := p.Y - pose.Y
	dist := dx*dx + dy*dy

	if dist == 0 {
		return nil, fmt.Errorf("landmark %d coincides with the pose position", slot)
	}

	r := math.Sqrt(dist)

	h := mat.NewDense(2, 3+2*landmarks, nil)

	// range row
	h.Set(0, 1, -dx/r)
	h.Set(0, 2, -dy/r)
	h.Set(0, 3+2*slot, dx/r)
	h.Set(0, 4+2*slot, dy/r)

	// bearing row
	h.Set(1, 0, -1)
	h.Set(1, 1, dy/dist)
	h.Set(1, 2, dx/dist)
	h.Set(1, 3+2*slot, -dy/dist)
	h.Set(1, 4+2*slot, dx/dist)

	return h, nil
}
