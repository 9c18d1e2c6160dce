package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the command-line flags. Keys use the flag names;
// flags given on the command line win over the file.
type fileConfig struct {
	LogLevel  string `yaml:"log-level"`
	LogFormat string `yaml:"log-format"`

	Tree     string `yaml:"tree"`
	TreeFile string `yaml:"tree-file"`

	Log         string `yaml:"log"`
	Format      string `yaml:"format"`
	Sep         string `yaml:"sep"`
	CaseCol     string `yaml:"case-col"`
	ActivityCol string `yaml:"activity-col"`

	Workers       int    `yaml:"workers"`
	CacheCapacity int    `yaml:"cache-capacity"`
	Strategy      string `yaml:"strategy"`
	Output        string `yaml:"output"`
	MetricsAddr   string `yaml:"metrics-addr"`
}

// loadConfig reads a YAML config file. Unknown keys are rejected.
func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &fileConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// values returns the non-zero settings keyed by flag name.
func (c *fileConfig) values() map[string]string {
	out := make(map[string]string)
	put := func(name, v string) {
		if v != "" {
			out[name] = v
		}
	}
	putInt := func(name string, v int) {
		if v != 0 {
			out[name] = strconv.Itoa(v)
		}
	}

	put("log-level", c.LogLevel)
	put("log-format", c.LogFormat)
	put("tree", c.Tree)
	put("tree-file", c.TreeFile)
	put("log", c.Log)
	put("format", c.Format)
	put("sep", c.Sep)
	put("case-col", c.CaseCol)
	put("activity-col", c.ActivityCol)
	putInt("workers", c.Workers)
	putInt("cache-capacity", c.CacheCapacity)
	put("strategy", c.Strategy)
	put("output", c.Output)
	put("metrics-addr", c.MetricsAddr)

	return out
}

// apply sets every flag of fs that the file configures and the command
// line left alone. Settings for flags fs does not define are ignored.
func (c *fileConfig) apply(fs *pflag.FlagSet) error {
	for name, v := range c.values() {
		f := fs.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := fs.Set(name, v); err != nil {
			return fmt.Errorf("config key %q: %w", name, err)
		}
	}

	return nil
}
