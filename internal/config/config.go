package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"perceptron-forge/internal/model"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Dataset      string  `yaml:"dataset"`
	Model        string  `yaml:"model"`
	Eta          float64 `yaml:"eta"`
	IterationCap int     `yaml:"iteration_cap"`
	Seed         int64   `yaml:"seed"`
	Beta         float64 `yaml:"beta"`
	LogEvery     int     `yaml:"log_every"`
	LogLevel     string  `yaml:"log_level"`
	Render       bool    `yaml:"render"`
	Listen       string  `yaml:"listen"`
	DatasetsDir  string  `yaml:"datasets_dir"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Dataset      string
	Model        string
	Eta          float64
	IterationCap int
	Seed         int64
	Beta         float64
	LogEvery     int
	LogLevel     string
	Render       bool
	Listen       string
	DatasetsDir  string
}

// Default returns a runnable configuration: a perceptron on AND.
func Default() *Config {
	return &Config{
		Dataset:      "and",
		Model:        "perceptron",
		Eta:          0.1,
		IterationCap: 1000,
		Beta:         1,
		LogEvery:     50,
		LogLevel:     "INFO",
	}
}

// Load reads and validates a Config from YAML. Keys missing from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Dataset != "" {
		c.Dataset = o.Dataset
	}
	if o.Model != "" {
		c.Model = o.Model
	}
	if o.Eta > 0 {
		c.Eta = o.Eta
	}
	if o.IterationCap > 0 {
		c.IterationCap = o.IterationCap
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Beta > 0 {
		c.Beta = o.Beta
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.Render {
		c.Render = true
	}
	if o.Listen != "" {
		c.Listen = o.Listen
	}
	if o.DatasetsDir != "" {
		c.DatasetsDir = o.DatasetsDir
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Dataset == "" {
		return errors.New("dataset must be set")
	}
	if _, err := model.ParseKind(c.Model); err != nil {
		return err
	}
	if !(c.Eta > 0) {
		return errors.Errorf("eta must be > 0 (got %g)", c.Eta)
	}
	if c.IterationCap <= 0 {
		return errors.Errorf("iteration_cap must be > 0 (got %d)", c.IterationCap)
	}
	if !(c.Beta > 0) {
		return errors.Errorf("beta must be > 0 (got %g)", c.Beta)
	}
	switch strings.ToUpper(c.LogLevel) {
	case "", "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return errors.Errorf("log_level must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 50
	}
	return nil
}

// ModelKind returns the parsed model name.
func (c *Config) ModelKind() (model.Kind, error) {
	k, err := model.ParseKind(c.Model)
	if err != nil {
		return 0, errors.Wrap(err, "model")
	}
	return k, nil
}

func parseYAML(r io.Reader) (*Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if len(bytes.TrimSpace(raw)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
