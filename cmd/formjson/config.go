package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tomasbasham/formjson"
)

// Config holds the options of every operation, as read from a YAML file.
type Config struct {
	ToJSON   formjson.ToJSONOptions   `yaml:"tojson"`
	FromJSON formjson.FromJSONOptions `yaml:"fromjson"`
	Reset    formjson.ResetOptions    `yaml:"reset"`
	Clear    formjson.ClearOptions    `yaml:"clear"`
}

// loadConfig reads the config at path. An empty path yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

type attachment struct {
	name string
	path string
}

// attachments collects repeated -attach name=path flags.
type attachments []attachment

func (a *attachments) String() string {
	parts := make([]string, len(*a))
	for i, at := range *a {
		parts[i] = at.name + "=" + at.path
	}
	return strings.Join(parts, ",")
}

func (a *attachments) Set(value string) error {
	name, path, ok := strings.Cut(value, "=")
	if !ok || name == "" || path == "" {
		return fmt.Errorf("expected name=path, got %q", value)
	}
	*a = append(*a, attachment{name: name, path: path})
	return nil
}
