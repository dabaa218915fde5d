package main

import (
	"encoding"

	"github.com/spf13/pflag"

	"github.com/govalues/fixed"
)

const (
	configFlag   = "config"
	scaleFlag    = "scale"
	roundingFlag = "rounding"
	overflowFlag = "overflow"
	logLevelFlag = "log-level"
	workersFlag  = "workers"
)

// textValue exposes a value with text marshalling as a flag.
type textValue struct {
	v interface {
		encoding.TextMarshaler
		encoding.TextUnmarshaler
	}
	typ string
}

func (f *textValue) String() string {
	b, err := f.v.MarshalText()
	if err != nil {
		return ""
	}
	return string(b)
}

func (f *textValue) Set(s string) error {
	return f.v.UnmarshalText([]byte(s))
}

func (f *textValue) Type() string {
	return f.typ
}

// options are the values of the global flags.
// They take precedence over the configuration file only when set explicitly.
type options struct {
	configPath string
	cfg        config
}

func (o *options) bind(fs *pflag.FlagSet) {
	d := newDefaultConfig()
	o.cfg = *d
	fs.StringVarP(&o.configPath, configFlag, "c", "", "path to a YAML configuration file")
	fs.IntVarP(&o.cfg.Scale, scaleFlag, "s", d.Scale, "number of digits after the decimal point")
	fs.VarP(&textValue{&o.cfg.Rounding, "rounding"}, roundingFlag, "r", "rounding mode: "+roundingModeList())
	fs.VarP(&textValue{&o.cfg.Overflow, "overflow"}, overflowFlag, "o", "overflow mode: unchecked, checked")
	fs.Var(&textValue{&o.cfg.LogLevel, "level"}, logLevelFlag, "log level: debug, info, warn, error")
	fs.IntVar(&o.cfg.Workers, workersFlag, d.Workers, "number of concurrent evaluations in batch mode")
}

// override copies explicitly set flags into cfg.
func (o *options) override(fs *pflag.FlagSet, cfg *config) {
	if fs.Changed(scaleFlag) {
		cfg.Scale = o.cfg.Scale
	}
	if fs.Changed(roundingFlag) {
		cfg.Rounding = o.cfg.Rounding
	}
	if fs.Changed(overflowFlag) {
		cfg.Overflow = o.cfg.Overflow
	}
	if fs.Changed(logLevelFlag) {
		cfg.LogLevel = o.cfg.LogLevel
	}
	if fs.Changed(workersFlag) {
		cfg.Workers = o.cfg.Workers
	}
}

func roundingModeList() string {
	var s string
	for i, m := range fixed.RoundingModes() {
		if i > 0 {
			s += ", "
		}
		s += m.String()
	}
	return s
}
