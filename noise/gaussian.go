package noise

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

var (
	sourceOnce sync.Once
	source     rand.Source
)

// defaultSource returns the process wide pseudorandom source. It is created
// once, on first use, seeded from OS entropy, and never reseeded. The source
// is not synchronized: it must only be used from one goroutine at a time,
// which holds for filters driven by a single control loop.
func defaultSource() rand.Source {
	sourceOnce.Do(func() {
		var b [8]byte
		if _, err := crand.Read(b[:]); err == nil {
			source = rand.NewSource(binary.LittleEndian.Uint64(b[:]))
			return
		}
		source = rand.NewSource(uint64(time.Now().UnixNano()))
	})
	return source
}

// Gaussian is gaussian noise
type Gaussian struct {
	// dist is a multivariate normal distribution
	dist *distmv.Normal
	// src drives dist
	src rand.Source
	// mean is Gaussian mean
	mean []float64
	// cov is Gaussian covariance
	cov mat.Symmetric
}

// NewGaussian creates new Gaussian noise with given mean and covariance,
// drawn from the process wide pseudorandom source.
// It returns error if the covariance cannot be Cholesky-factorized, i.e.
// it is not positive definite.
func NewGaussian(mean []float64, cov mat.Symmetric) (*Gaussian, error) {
	return NewGaussianWithSource(mean, cov, defaultSource())
}

// NewGaussianWithSource creates new Gaussian noise like NewGaussian does,
// but draws its samples from src. Pass a seeded source to get a
// reproducible sample stream.
// It returns error if the covariance cannot be Cholesky-factorized.
func NewGaussianWithSource(mean []float64, cov mat.Symmetric, src rand.Source) (*Gaussian, error) {
	dist, ok := distmv.NewNormal(mean, cov, src)
	if !ok {
		return nil, fmt.Errorf("failed to factorize noise covariance")
	}

	return &Gaussian{
		dist: dist,
		src:  src,
		mean: mean,
		cov:  cov,
	}, nil
}

// Sample generates a sample from Gaussian noise and returns it: the
// Cholesky factor of the covariance applied to a vector of independent
// standard normal variates.
func (g *Gaussian) Sample() mat.Vector {
	r := g.dist.Rand(nil)
	return mat.NewVecDense(len(r), r)
}

// Cov returns covariance matrix of Gaussian noise.
func (g *Gaussian) Cov() mat.Symmetric {
	return g.cov
}

// Mean returns Gaussian mean.
func (g *Gaussian) Mean() []float64 {
	return g.mean
}

// Reset resets Gaussian noise keeping its random source.
// It returns error if it fails to reset the noise.
func (g *Gaussian) Reset() error {
	dist, ok := distmv.NewNormal(g.mean, g.cov, g.src)
	if !ok {
		return fmt.Errorf("failed to reset Gaussian noise")
	}
	g.dist = dist

	return nil
}

// String implements the Stringer interface.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{\nMean=%v\nCov=%v\n}", g.mean, mat.Formatted(g.cov, mat.Prefix("    "), mat.Squeeze()))
}
