package settings

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/cognicore/voxpop/pkg/voxpop/config"
	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
)

// Prefix is the environment variable prefix, e.g. VOXPOP_ADDR.
const Prefix = "VOXPOP"

// Settings configures the dashboard server.
type Settings struct {
	Addr        string `envconfig:"ADDR" default:":8080"`
	DataPath    string `envconfig:"DATA_PATH"`
	ProfilePath string `envconfig:"PROFILE_PATH"`
	Preset      string `envconfig:"PRESET" default:"reviews"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	// RequestTimeout bounds one dashboard computation, including a first load.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

// Load reads settings from the environment.
func Load() (*Settings, error) {
	var s Settings
	if err := envconfig.Process(Prefix, &s); err != nil {
		return nil, fmt.Errorf("settings from env: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	return &s, nil
}

// Validate checks settings needed to serve.
func (s *Settings) Validate() error {
	if s.DataPath == "" {
		return fmt.Errorf("%s_DATA_PATH is required: %w", Prefix, internalerr.ErrInvalidConfig)
	}
	if s.Addr == "" {
		return fmt.Errorf("%s_ADDR is empty: %w", Prefix, internalerr.ErrInvalidConfig)
	}
	for name, d := range map[string]time.Duration{
		"READ_TIMEOUT":     s.ReadTimeout,
		"WRITE_TIMEOUT":    s.WriteTimeout,
		"SHUTDOWN_TIMEOUT": s.ShutdownTimeout,
		"REQUEST_TIMEOUT":  s.RequestTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s_%s must be positive: %w", Prefix, name, internalerr.ErrInvalidConfig)
		}
	}
	return nil
}

// Profile resolves the dashboard profile: the YAML file when ProfilePath is
// set, otherwise the named preset.
func (s *Settings) Profile() (*config.Profile, error) {
	if s.ProfilePath != "" {
		return config.LoadProfile(s.ProfilePath)
	}
	return config.Preset(s.Preset)
}
