package rand

import (
	"fmt"
	"math"
	rnd "math/rand"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// WithCovN draws n random samples from a zero-mean Normal (aka Gaussian) distribution with covariance cov.
// It returns matrix which contains the randomly generated samples stored in its columns.
// It fails with error if n is smaller than 1 or if SVD factorization of cov fails.
func WithCovN(cov mat.Symmetric, n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid number of samples requested: %d", n)
	}

	u, err := covTransform(cov)
	if err != nil {
		return nil, err
	}

	rows, _ := cov.Dims()
	data := make([]float64, rows*n)
	for i := range data {
		data[i] = rnd.NormFloat64()
	}
	samples := mat.NewDense(rows, n, data)
	samples.Mul(u, samples)

	return samples, nil
}

// WithCovSourceN draws n random samples from a zero-mean Normal (aka Gaussian) distribution
// with covariance cov, reading randomness from src.
// It is otherwise the same as WithCovN.
func WithCovSourceN(cov mat.Symmetric, src rand.Source, n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid number of samples requested: %d", n)
	}

	u, err := covTransform(cov)
	if err != nil {
		return nil, err
	}

	r := rand.New(src)
	rows, _ := cov.Dims()
	data := make([]float64, rows*n)
	for i := range data {
		data[i] = r.NormFloat64()
	}
	samples := mat.NewDense(rows, n, data)
	samples.Mul(u, samples)

	return samples, nil
}

// covTransform returns a linear map which turns standard normal samples into samples with covariance cov.
// Uses SVD instead of Cholesky as Cholesky can be numerically unstable if cov is (almost) singular.
func covTransform(cov mat.Symmetric) (*mat.Dense, error) {
	var svd mat.SVD
	ok := svd.Factorize(cov, mat.SVDFull)
	if !ok {
		return nil, fmt.Errorf("SVD factorization failed")
	}

	u := new(mat.Dense)
	svd.UTo(u)
	vals := svd.Values(nil)
	for i := range vals {
		vals[i] = math.Sqrt(vals[i])
	}
	diag := mat.NewDiagDense(len(vals), vals)
	u.Mul(u, diag)

	return u, nil
}
