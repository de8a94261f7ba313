package model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/milosgajdos/go-slam/rigid2d"
)

// Unicycle is a planar unicycle motion model.
// It maps a body twist applied for one time unit to a pose change in
// heading-first coordinates {theta, x, y}.
type Unicycle struct{}

// NewUnicycle creates new Unicycle motion model and returns it
func NewUnicycle() *Unicycle {
	return &Unicycle{}
}

// Delta returns the pose change caused by cmd at heading theta together with
// the partial derivatives of the change with respect to theta.
// Twists without angular velocity translate the pose; twists with angular
// velocity move it along a circular arc of radius Vx/Wz.
func (u *Unicycle) Delta(theta float64, cmd rigid2d.Twist) (delta, ddelta mat.Vector) {
	d := mat.NewVecDense(3, nil)
	dd := mat.NewVecDense(3, nil)

	if cmd.Wz == 0 {
		d.SetVec(1, cmd.Vx*math.Cos(theta))
		d.SetVec(2, cmd.Vy*math.Sin(theta))

		dd.SetVec(1, -cmd.Vx*math.Sin(theta))
		dd.SetVec(2, cmd.Vx*math.Cos(theta))

		return d, dd
	}

	ratio := cmd.Vx / cmd.Wz

	d.SetVec(0, cmd.Wz)
	d.SetVec(1, -ratio*math.Sin(theta)+ratio*math.Sin(theta+cmd.Wz))
	d.SetVec(2, ratio*math.Cos(theta)-ratio*math.Cos(theta+cmd.Wz))

	dd.SetVec(1, -ratio*math.Cos(theta)+ratio*math.Cos(theta+cmd.Wz))
	dd.SetVec(2, -ratio*math.Sin(theta)+ratio*math.Sin(theta+cmd.Wz))

	return d, dd
}
