// Package config loads runtime settings from an optional .env file and
// PLATEVISION_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/plate-vision/internal/vision"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PLATEVISION_"

// Config holds every tunable of the application.
type Config struct {
	Device      int
	WindowTitle string
	Dictionary  string

	ShowGrid    bool
	GridSpacing int
	GridColor   string
	ShowAxes    bool

	LogLevel string
	LogFile  string

	OCRLanguage string
	LabelScale  float64
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Device:      0,
		WindowTitle: "Plate Detection",
		Dictionary:  string(vision.Dict4x4_50),
		ShowGrid:    false,
		GridSpacing: 50,
		GridColor:   "#646464",
		ShowAxes:    true,
		LogLevel:    "info",
		OCRLanguage: "eng",
		LabelScale:  3.0,
	}
}

// Load reads envFile (ignored when missing; empty means ".env") and applies
// environment overrides on top of Default.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv applies overrides found through lookup on top of Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}
	setInt := func(key string, dst *int) {
		if v, ok := get(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok := get(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}
	setString := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}

	setInt("DEVICE", &cfg.Device)
	setString("WINDOW_TITLE", &cfg.WindowTitle)
	setString("DICTIONARY", &cfg.Dictionary)
	setBool("SHOW_GRID", &cfg.ShowGrid)
	setInt("GRID_SPACING", &cfg.GridSpacing)
	setString("GRID_COLOR", &cfg.GridColor)
	setBool("SHOW_AXES", &cfg.ShowAxes)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("LOG_FILE", &cfg.LogFile)
	setString("OCR_LANGUAGE", &cfg.OCRLanguage)
	if v, ok := get("LABEL_SCALE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sLABEL_SCALE: %w", EnvPrefix, err))
		} else {
			cfg.LabelScale = f
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	var errs []error
	if c.Device < 0 {
		errs = append(errs, fmt.Errorf("device index must not be negative, got %d", c.Device))
	}
	if _, err := vision.ParseDictionary(c.Dictionary); err != nil {
		errs = append(errs, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level: %w", err))
	}
	if c.LabelScale <= 0 {
		errs = append(errs, fmt.Errorf("label scale must be positive, got %v", c.LabelScale))
	}
	return errors.Join(errs...)
}
