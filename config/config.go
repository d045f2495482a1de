package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/soffa-projects/bugout-go/errors"
	"github.com/soffa-projects/bugout-go/h"
)

const (
	DefaultBroodURL            = "https://auth.bugout.dev"
	DefaultSpireURL            = "https://spire.bugout.dev"
	DefaultTimeoutSeconds      = 5
	DefaultApplicationIDHeader = "x-bugout-application-id"
)

// Settings is the immutable configuration shared by every Bugout client.
// Build it once with Load, LoadFile or Default and pass it by value.
type Settings struct {
	BroodURL            string `envconfig:"BUGOUT_BROOD_URL" default:"https://auth.bugout.dev" toml:"brood_url" validate:"required,url"`
	SpireURL            string `envconfig:"BUGOUT_SPIRE_URL" default:"https://spire.bugout.dev" toml:"spire_url" validate:"required,url"`
	TimeoutSeconds      int    `envconfig:"BUGOUT_TIMEOUT_SECONDS" default:"5" toml:"timeout_seconds" validate:"gte=1"`
	ApplicationIDHeader string `envconfig:"BUGOUT_APPLICATION_ID_HEADER" default:"x-bugout-application-id" toml:"application_id_header" validate:"required"`
	LogLevel            string `envconfig:"BUGOUT_LOG_LEVEL" toml:"log_level"`
}

func Default() Settings {
	return Settings{
		BroodURL:            DefaultBroodURL,
		SpireURL:            DefaultSpireURL,
		TimeoutSeconds:      DefaultTimeoutSeconds,
		ApplicationIDHeader: DefaultApplicationIDHeader,
	}
}

func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return errors.InvalidParameters("invalid bugout settings: %v", err)
	}
	return nil
}

// Load reads settings from the environment (and .env outside production).
func Load() (Settings, error) {
	var cfg Settings
	if err := h.LoadEnv(&cfg); err != nil {
		return Settings{}, fmt.Errorf("could not parse bugout environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// LoadFile reads settings from the environment and then overlays any value
// present in the TOML file at path.
func LoadFile(path string) (Settings, error) {
	var cfg Settings
	if err := h.LoadEnv(&cfg); err != nil {
		return Settings{}, fmt.Errorf("could not parse bugout environment: %w", err)
	}
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Settings{}, fmt.Errorf("could not read settings file %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			log.Warnf("ignoring unknown keys in %s: %v", path, undecoded)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func MustLoad() Settings {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
