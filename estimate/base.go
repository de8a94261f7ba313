package estimate

import (
	"fmt"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/mat"
)

// Base is base estimate
type Base struct {
	// val is estimated value
	val *mat.VecDense
	// cov is estimated covariance
	cov *mat.SymDense
}

// NewBase returns base estimate given val
func NewBase(val mat.Vector) (*Base, error) {
	v := &mat.VecDense{}
	if val != nil {
		v.CloneFromVec(val)
	}

	c := mat.NewSymDense(v.Len(), nil)

	return &Base{
		val: v,
		cov: c,
	}, nil
}

// NewBaseWithCov returns base estimate given val and covariance
func NewBaseWithCov(val mat.Vector, cov mat.Symmetric) (*Base, error) {
	rv, _ := val.Dims()
	rc := cov.SymmetricDim()

	if rv != rc {
		return nil, fmt.Errorf("invalid dimensions. Val: %d, Cov: %d x %d", rv, rc, rc)
	}

	v := &mat.VecDense{}
	v.CloneFromVec(val)

	c := mat.NewSymDense(rc, nil)
	c.CopySym(cov)

	return &Base{
		val: v,
		cov: c,
	}, nil
}

// Val returns estimated value
func (b *Base) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(b.val)

	return v
}

// Cov returns covariance estimate
func (b *Base) Cov() mat.Symmetric {
	cov := mat.NewSymDense(b.cov.SymmetricDim(), nil)
	cov.CopySym(b.cov)

	return cov
}

// Joint is a joint robot and map estimate. Its value follows the joint state
// layout: {theta, x, y} in the first three slots followed by one {x, y} pair
// per landmark.
type Joint struct {
	*Base
}

// NewJoint returns joint estimate given val and covariance.
// It returns error if val does not follow the joint state layout or if the
// covariance dimensions do not match it.
func NewJoint(val mat.Vector, cov mat.Symmetric) (*Joint, error) {
	r, _ := val.Dims()
	if r < 3 || (r-3)%2 != 0 {
		return nil, fmt.Errorf("invalid joint state length: %d", r)
	}

	b, err := NewBaseWithCov(val, cov)
	if err != nil {
		return nil, err
	}

	return &Joint{Base: b}, nil
}

// Pose returns the estimated robot pose as {theta, x, y}
func (j *Joint) Pose() []float64 {
	return []float64{j.val.AtVec(0), j.val.AtVec(1), j.val.AtVec(2)}
}

// Landmarks returns the number of landmarks in the estimate
func (j *Joint) Landmarks() int {
	return (j.val.Len() - 3) / 2
}

// Landmark returns the estimated position of the given landmark slot.
// It returns error if the slot is out of range.
func (j *Joint) Landmark(i int) (r2.Point, error) {
	if i < 0 || i >= j.Landmarks() {
		return r2.Point{}, fmt.Errorf("invalid landmark slot: %d", i)
	}

	return r2.Point{X: j.val.AtVec(3 + 2*i), Y: j.val.AtVec(4 + 2*i)}, nil
}
