package noise

import (
	"testing"

	"github.com/milosgajdos/matrix"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestNewGaussian(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{2, 3}
	cov := mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1})

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	// not positive definite: Cholesky factorization must fail
	badCov := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	g, err = NewGaussian(mean, badCov)
	assert.Nil(g)
	assert.Error(err)
}

func TestGaussianMeanCov(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{2, 3}
	cov := mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1})

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	gCov := g.Cov()
	assert.Equal(cov.SymmetricDim(), gCov.SymmetricDim())

	rows, cols := gCov.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			assert.Equal(cov.At(r, c), gCov.At(r, c))
		}
	}

	assert.EqualValues(mean, g.Mean())
}

func TestGaussianSample(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{0, 0}
	cov := mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1})

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	sample := g.Sample()
	r, c := sample.Dims()
	assert.Equal(len(mean), r)
	assert.Equal(1, c)
}

func TestGaussianSampleDeterministic(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{0, 0, 0}
	cov := mat.NewSymDense(3, []float64{2, 0.5, 0, 0.5, 1, 0.2, 0, 0.2, 3})

	g1, err := NewGaussianWithSource(mean, cov, rand.NewSource(42))
	assert.NoError(err)
	g2, err := NewGaussianWithSource(mean, cov, rand.NewSource(42))
	assert.NoError(err)

	// same seed, same draws
	for i := 0; i < 10; i++ {
		s1, s2 := g1.Sample(), g2.Sample()
		for j := 0; j < s1.Len(); j++ {
			assert.Equal(s1.AtVec(j), s2.AtVec(j))
		}
	}
}

func TestGaussianSampleCov(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{0, 0}
	cov := mat.NewSymDense(2, []float64{1, 0.3, 0.3, 0.5})

	g, err := NewGaussianWithSource(mean, cov, rand.NewSource(7))
	assert.NotNil(g)
	assert.NoError(err)

	// empirical covariance of a large sample must approach cov
	n := 50000
	samples := mat.NewDense(2, n, nil)
	for i := 0; i < n; i++ {
		s := g.Sample()
		samples.Set(0, i, s.AtVec(0))
		samples.Set(1, i, s.AtVec(1))
	}

	sampleCov, err := matrix.Cov(samples, "cols")
	assert.NoError(err)

	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			assert.InDelta(cov.At(r, c), sampleCov.At(r, c), 0.05)
		}
	}
}

func TestGaussianReset(t *testing.T) {
	assert := assert.New(t)

	mean := []float64{2, 3}
	cov := mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1})

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	err = g.Reset()
	assert.NoError(err)

	sample := g.Sample()
	r, _ := sample.Dims()
	assert.Equal(len(mean), r)
}

func TestGaussianString(t *testing.T) {
	assert := assert.New(t)

	str := `Gaussian{
Mean=[2 3]
Cov=⎡  1  0.1⎤
    ⎣0.1    1⎦
}`
	mean := []float64{2, 3}
	cov := mat.NewSymDense(2, []float64{1, 0.1, 0.1, 1})

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)
	assert.Equal(str, g.String())
}
