package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML run configuration, overridable by
// flags. Unset fields keep whatever default main assigns them.
type fileConfig struct {
	TabStop  int    `yaml:"tabstop"`
	Columns  int    `yaml:"columns"`
	Strict   bool   `yaml:"strict"`
	Smart    bool   `yaml:"smart"`
	ParseRaw bool   `yaml:"parseraw"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Pandoc   string `yaml:"pandoc"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}
