package sim

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Landmark is one circular landmark in the simulated world
type Landmark struct {
	// X is the landmark center x coordinate
	X float64 `json:"x"`
	// Y is the landmark center y coordinate
	Y float64 `json:"y"`
	// Radius is the landmark radius
	Radius float64 `json:"radius"`
}

// Config configures the simulated world and the filter noise
type Config struct {
	// Landmarks are the true landmarks
	Landmarks []Landmark `json:"landmarks"`
	// WheelBase is the distance between the wheel centers
	WheelBase float64 `json:"wheel_base"`
	// WheelRadius is the wheel radius
	WheelRadius float64 `json:"wheel_radius"`
	// Steps is the number of simulated control ticks
	Steps int `json:"steps"`
	// ProcessNoise is the diagonal of the process noise covariance {wz, vx, vy};
	// the first two entries also perturb the twists the world executes
	ProcessNoise []float64 `json:"process_noise"`
	// MeasurementNoise is the diagonal of the measurement noise covariance {range, bearing}
	MeasurementNoise []float64 `json:"measurement_noise"`
	// ScanNoise is the diagonal of the scan perturbation covariance {x, y}
	ScanNoise []float64 `json:"scan_noise"`
	// Seed seeds the world randomness
	Seed uint64 `json:"seed"`
}

// Validate checks that the configuration describes a world which can be built.
// It returns error naming the first offending field.
func (c *Config) Validate() error {
	if len(c.Landmarks) == 0 {
		return errors.New("no landmarks configured")
	}

	if c.WheelBase <= 0 {
		return errors.Errorf("invalid wheel base: %f", c.WheelBase)
	}

	if c.WheelRadius <= 0 {
		return errors.Errorf("invalid wheel radius: %f", c.WheelRadius)
	}

	if c.Steps <= 0 {
		return errors.Errorf("invalid step count: %d", c.Steps)
	}

	if len(c.ProcessNoise) != 3 {
		return errors.Errorf("invalid process noise diagonal: %v", c.ProcessNoise)
	}

	if len(c.MeasurementNoise) != 2 {
		return errors.Errorf("invalid measurement noise diagonal: %v", c.MeasurementNoise)
	}

	if len(c.ScanNoise) != 2 {
		return errors.Errorf("invalid scan noise diagonal: %v", c.ScanNoise)
	}

	for _, vs := range [][]float64{c.ProcessNoise, c.MeasurementNoise, c.ScanNoise} {
		for _, v := range vs {
			if v < 0 {
				return errors.Errorf("negative noise variance: %f", v)
			}
		}
	}

	return nil
}

// QCov returns the process noise covariance
func (c *Config) QCov() *mat.SymDense {
	q := mat.NewSymDense(3, nil)
	for i, v := range c.ProcessNoise {
		q.SetSym(i, i, v)
	}

	return q
}

// RCov returns the measurement noise covariance
func (c *Config) RCov() *mat.SymDense {
	r := mat.NewSymDense(2, nil)
	for i, v := range c.MeasurementNoise {
		r.SetSym(i, i, v)
	}

	return r
}

// FromReader decodes and validates configuration read from r.
func FromReader(r io.Reader) (*Config, error) {
	var c Config
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// FromFile decodes and validates configuration stored in the file at path.
func FromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config %s", path)
	}
	defer f.Close()

	return FromReader(f)
}
