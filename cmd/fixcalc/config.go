package main

import (
	"bytes"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/govalues/fixed"
)

// config holds the calculator settings.
// Modes and the log level are written by name, for example:
//
//	scale: 2
//	rounding: half-even
//	overflow: checked
//	log_level: warn
//	workers: 4
type config struct {
	Scale    int                `yaml:"scale"`
	Rounding fixed.RoundingMode `yaml:"rounding"`
	Overflow fixed.OverflowMode `yaml:"overflow"`
	LogLevel zapcore.Level      `yaml:"log_level"`
	Workers  int                `yaml:"workers"`
}

func newDefaultConfig() *config {
	return &config{
		Scale:    2,
		Rounding: fixed.RoundHalfUp,
		Overflow: fixed.Checked,
		LogLevel: zapcore.InfoLevel,
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// newConfigFromFile reads a YAML file on top of the default settings.
func newConfigFromFile(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	cfg, err := newConfigFromYAML(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %q", path)
	}
	return cfg, nil
}

func newConfigFromYAML(data []byte) (*config, error) {
	cfg := newDefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode YAML")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) validate() error {
	if _, err := c.arithmetic(); err != nil {
		return errors.Wrap(err, "validate engine settings")
	}
	if c.Workers < 1 {
		return errors.Errorf("validate workers: %v is not positive", c.Workers)
	}
	return nil
}

func (c *config) arithmetic() (*fixed.Arithmetic, error) {
	return fixed.Get(c.Scale, c.Rounding, c.Overflow)
}
