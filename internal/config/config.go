// Package config loads the YAML settings shared by the chess binaries.
// Command-line flags override whatever the file sets.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"termchess/internal/render"
	"termchess/internal/rules"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Display     render.Options `yaml:"display"`
	Rules       string         `yaml:"rules" validate:"omitempty,oneof=pseudo geometry"`
	HistoryFile string         `yaml:"historyFile"`
	Storage     Storage        `yaml:"storage"`
	Server      Server         `yaml:"server"`
}

type Storage struct {
	Path string `yaml:"path"` // empty disables persistence
	Dev  bool   `yaml:"dev"`  // WAL journal
}

type Server struct {
	Host    string `yaml:"host" validate:"required"`
	Port    int    `yaml:"port" validate:"min=1,max=65535"`
	Dev     bool   `yaml:"dev"`
	PID     string `yaml:"pid"`
	PIDLock bool   `yaml:"pidLock"`
	// Requests per second per client on /api/v1, 0 disables the limiter
	RateLimit int `yaml:"rateLimit" validate:"min=0"`
}

var validate = validator.New()

func Default() Config {
	return Config{
		Display:     render.DefaultOptions(),
		Rules:       rules.NamePseudoLegal,
		HistoryFile: ".chess_history",
		Server: Server{
			Host:      "localhost",
			Port:      8080,
			RateLimit: 1,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "failed to read from %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to unmarshal %s", path)
	}

	return cfg, cfg.Validate()
}

// Write saves cfg as YAML, used to produce a sample file
func Write(cfg Config, path string, mode os.FileMode) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal")
	}

	err = os.WriteFile(path, data, mode)
	return errors.Wrapf(err, "failed to write to %s", path)
}

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "invalid config")
	}

	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		details.WriteString(Describe(fe))
	}
	return errors.Errorf("invalid config: %s", details.String())
}

// Describe turns a validation failure into a short sentence
func Describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
