package rand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestWithCovN(t *testing.T) {
	assert := assert.New(t)

	data := []float64{1.0, 0.0, 0.0, 1.0}
	covTest := mat.NewSymDense(2, data)
	covR, _ := covTest.Dims()

	// n must be bigger than 0
	nTest := -3
	res, err := WithCovN(covTest, nTest)
	assert.Error(err)
	assert.Nil(res)

	nTest = 1
	res, err = WithCovN(covTest, nTest)
	assert.NoError(err)
	assert.NotNil(res)

	// 2 samples
	nTest = 2
	res, err = WithCovN(covTest, nTest)
	assert.NoError(err)
	assert.NotNil(res)
	r, c := res.Dims()
	assert.Equal(r, covR)
	assert.Equal(c, nTest)
}

func TestWithCovSourceN(t *testing.T) {
	assert := assert.New(t)

	cov := mat.NewSymDense(2, []float64{2.0, 0.5, 0.5, 1.0})

	res, err := WithCovSourceN(cov, rand.NewSource(3), 0)
	assert.Error(err)
	assert.Nil(res)

	n := 5
	s1, err := WithCovSourceN(cov, rand.NewSource(3), n)
	assert.NoError(err)
	assert.NotNil(s1)

	r, c := s1.Dims()
	assert.Equal(2, r)
	assert.Equal(n, c)

	// same seed yields the same samples
	s2, err := WithCovSourceN(cov, rand.NewSource(3), n)
	assert.NoError(err)
	assert.True(mat.Equal(s1, s2))
}
