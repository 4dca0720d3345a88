// Package config loads plugin configuration from a YAML file with
// environment overrides. The ibm section carries the hardware service
// credentials so they stay out of shared code; tests use HasCredentials
// to skip hardware-backed runs when none are configured.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/projectq-plugins/projectq-go/pkg/device"
)

// EnvPrefix is the environment variable prefix, e.g. PQ_IBM_USER.
const EnvPrefix = "PQ"

// envKeyReplacer maps nested config keys onto environment variable
// names: ibm.user becomes PQ_IBM_USER.
var envKeyReplacer = strings.NewReplacer(".", "_")

// Config is the plugin configuration.
type Config struct {
	IBM IBMConfig `mapstructure:"ibm"`
	Sim SimConfig `mapstructure:"sim"`
	Log LogConfig `mapstructure:"log"`
}

// IBMConfig configures the hardware-backed device.
type IBMConfig struct {
	// User and Password are the hardware service credentials.
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`

	// Device names the chip used when UseHardware is set.
	Device string `mapstructure:"device"`

	// UseHardware runs on the real chip instead of the hosted simulator.
	UseHardware bool `mapstructure:"use_hardware"`

	// NumRuns is the number of runs used to collect statistics.
	NumRuns int `mapstructure:"num_runs"`

	// JobStore is the path of the local job record file.
	JobStore string `mapstructure:"job_store"`
}

// SimConfig configures the local simulator.
type SimConfig struct {
	// Seed, when non-zero, seeds sampling deterministically.
	Seed int64 `mapstructure:"seed"`

	// GateFusion enables operation caching.
	GateFusion bool `mapstructure:"gate_fusion"`
}

// LogConfig configures execution logging.
type LogConfig struct {
	// File is the CBOR execution log path. Empty disables file logging.
	File string `mapstructure:"file"`

	// Verbose enables console logging of device activity.
	Verbose bool `mapstructure:"verbose"`
}

// Load reads the configuration file at path. An empty path falls back
// to $PQ_CONFIG, then to config.yaml in the user config directory.
// A missing fallback file yields defaults rather than an error; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Every key needs a default: viper only consults the environment
	// during Unmarshal for keys it already knows about, so an unset
	// default would make the matching PQ_ variable invisible.
	v.SetDefault("ibm.user", "")
	v.SetDefault("ibm.password", "")
	v.SetDefault("ibm.device", device.DefaultHardwareBackend)
	v.SetDefault("ibm.use_hardware", false)
	v.SetDefault("ibm.num_runs", 0)
	v.SetDefault("ibm.job_store", "")
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.gate_fusion", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "projectq-go", "config.yaml")
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// A fallback file may simply not exist; an explicit one must.
			if explicit {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// HasCredentials reports whether both hardware credentials are present.
// Hardware-backed tests skip when this is false.
func (c *Config) HasCredentials() bool {
	return c.IBM.User != "" && c.IBM.Password != ""
}

// Credentials returns the configured user name and password.
func (c *Config) Credentials() (user, password string) {
	return c.IBM.User, c.IBM.Password
}

// DeviceOptions maps the configuration onto device construction
// options for the named device.
func (c *Config) DeviceOptions() []device.Option {
	var opts []device.Option

	if c.HasCredentials() {
		opts = append(opts, device.WithCredentials(c.IBM.User, c.IBM.Password))
	}
	if c.IBM.UseHardware {
		opts = append(opts, device.WithHardware())
	}
	if c.IBM.Device != "" {
		opts = append(opts, device.WithHardwareBackend(c.IBM.Device))
	}
	if c.IBM.NumRuns > 0 {
		opts = append(opts, device.WithNumRuns(c.IBM.NumRuns))
	}
	if c.IBM.JobStore != "" {
		opts = append(opts, device.WithJobStore(c.IBM.JobStore))
	}
	if c.Sim.Seed != 0 {
		opts = append(opts, device.WithSeed(c.Sim.Seed))
	}
	if c.Sim.GateFusion {
		opts = append(opts, device.WithGateFusion())
	}
	if c.Log.Verbose {
		opts = append(opts, device.WithVerbose())
	}
	return opts
}
