// Package config holds the detector's tunable knobs. Defaults match the
// shipped weights; a YAML file can overlay any subset of them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/strrl/fakeprofile/internal/activity"
	"github.com/strrl/fakeprofile/internal/content"
	"github.com/strrl/fakeprofile/internal/image"
)

type Config struct {
	// ModelPath points at a trained model file. Empty or missing means the
	// heuristic decision path is used.
	ModelPath string `yaml:"model_path"`

	Content  content.Config  `yaml:"content"`
	Activity activity.Config `yaml:"activity"`
	Image    image.Config    `yaml:"image"`
}

// Default returns the shipped configuration. The MODEL_PATH environment
// variable overrides the built-in model location when set.
func Default() Config {
	modelPath := "models/fake_profile_model.yaml"
	if env := os.Getenv("MODEL_PATH"); env != "" {
		modelPath = env
	}
	return Config{
		ModelPath: modelPath,
		Content:   content.DefaultConfig(),
		Activity:  activity.DefaultConfig(),
		Image:     image.DefaultConfig(),
	}
}

// Load reads a YAML config from path, overlaying it on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
