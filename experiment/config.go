// Copyright ©2012 Dan Kortschak <dan.kortschak@adelaide.edu.au>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package experiment

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("experiment: invalid config")

// A DeleteMode selects the keys removed in the second half of a trial.
type DeleteMode string

const (
	// DeleteInserted removes the inserted keys in random order.
	DeleteInserted DeleteMode = "inserted"
	// DeleteRandom removes freshly sampled keys, some of which may be absent.
	DeleteRandom DeleteMode = "random"
)

// Config describes an experiment over a range of tree sizes.
type Config struct {
	Strategy string     `yaml:"strategy"`
	From     int        `yaml:"from"`
	To       int        `yaml:"to"`
	Step     int        `yaml:"step"`
	Reps     int        `yaml:"reps"`
	Workers  int        `yaml:"workers"`
	Seed     int64      `yaml:"seed"`
	Delete   DeleteMode `yaml:"delete"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Strategy: "rbtree",
		From:     1_000,
		To:       10_000,
		Step:     1_000,
		Reps:     10,
		Workers:  runtime.NumCPU(),
		Seed:     1,
		Delete:   DeleteInserted,
	}
}

// LoadConfig reads a YAML configuration from path. Fields absent from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("error decoding config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	switch {
	case !Known(c.Strategy):
		return fmt.Errorf("%w: %w", ErrInvalidConfig, unknownStrategy(c.Strategy))
	case c.From < 1:
		return fmt.Errorf("%w: from must be positive, got %d", ErrInvalidConfig, c.From)
	case c.To < c.From:
		return fmt.Errorf("%w: to (%d) is less than from (%d)", ErrInvalidConfig, c.To, c.From)
	case c.Step < 1:
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidConfig, c.Step)
	case c.Reps < 1:
		return fmt.Errorf("%w: reps must be positive, got %d", ErrInvalidConfig, c.Reps)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.Delete != DeleteInserted && c.Delete != DeleteRandom:
		return fmt.Errorf("%w: delete mode %q is not one of %q or %q", ErrInvalidConfig, c.Delete, DeleteInserted, DeleteRandom)
	}
	return nil
}

// Sizes returns the tree sizes visited by the experiment.
func (c Config) Sizes() []int {
	var sizes []int
	for n := c.From; n <= c.To; n += c.Step {
		sizes = append(sizes, n)
	}
	return sizes
}
