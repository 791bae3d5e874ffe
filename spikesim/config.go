// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikesim

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/emer/odespike/membrane"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RunConfig has the run-level settings
type RunConfig struct {

	// number of cycles to run
	Cycles int `def:"1000" min:"1"`

	// file to write the CSV trace to -- empty = no trace file
	TraceFile string

	// logging level: panic, fatal, error, warn, info, debug, or trace
	LogLevel string `def:"info"`
}

func (rc *RunConfig) Defaults() {
	rc.Cycles = 1000
	rc.LogLevel = "info"
}

// Config is the full configuration of a spike train simulation
type Config struct {

	// membrane kind and parameters
	Membrane membrane.Config

	// stimulus schedule
	Stim Stim

	// run settings
	Run RunConfig
}

func (cf *Config) Defaults() {
	cf.Membrane.Defaults()
	cf.Stim.Defaults()
	cf.Run.Defaults()
}

// Validate checks the stimulus and run settings.  Membrane parameters are
// validated when the membrane is built.
func (cf *Config) Validate() error {
	if err := cf.Stim.Validate(); err != nil {
		return err
	}
	if cf.Run.Cycles < 1 {
		return errors.Errorf("spikesim: Run.Cycles must be >= 1, got %d", cf.Run.Cycles)
	}
	if _, err := cf.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the parsed Run.LogLevel
func (cf *Config) LogLevel() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(cf.Run.LogLevel)
	if err != nil {
		return lvl, errors.Wrap(err, "spikesim: Run.LogLevel")
	}
	return lvl, nil
}

// LoadConfig returns the defaults overridden by the values in the TOML
// file at path.  Keys that do not match any parameter are an error.
func LoadConfig(path string) (*Config, error) {
	cf := &Config{}
	cf.Defaults()
	md, err := toml.DecodeFile(path, cf)
	if err != nil {
		return nil, errors.Wrapf(err, "spikesim: loading config %q", path)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("spikesim: unknown keys in config %q: %s", path, strings.Join(keys, ", "))
	}
	cf.Membrane.Update()
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}
