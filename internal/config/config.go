package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Format    string `yaml:"format" env:"ANIMIO_FORMAT" validate:"oneof=json yaml yml"`
	Policy    string `yaml:"policy" env:"ANIMIO_POLICY" validate:"oneof=replace-action replace action replace-curves curves merge-keyframes merge"`
	Workers   int    `yaml:"workers" env:"ANIMIO_WORKERS" validate:"min=1"`
	LogLevel  string `yaml:"log_level" env:"ANIMIO_LOG_LEVEL" validate:"oneof=debug info warn error"`
	ShowStats bool   `yaml:"stats" env:"ANIMIO_STATS"`
	InputDir  string `yaml:"input_dir" env:"ANIMIO_INPUT_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" env:"ANIMIO_OUTPUT_DIR" validate:"required"`

	BuildVersion string `yaml:"-"`
}

func Default() Config {
	return Config{
		Format:    "json",
		Policy:    "replace-action",
		Workers:   runtime.NumCPU(),
		LogLevel:  "info",
		InputDir:  "input/scenes",
		OutputDir: "output",
	}
}

// Load starts from the defaults, applies the YAML file at path if it exists
// and then the ANIMIO_* environment variables. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the values after all overrides were applied.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var problems []string
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s: %v is not one of %s", fe.Field(), fe.Value(), fe.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s: failed %q validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}
