package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultHUD           = "submissions,drawcalls,pipelines,memory,gpuload,compiler"
	DefaultFrameInterval = "50ms"
)

// Endpoint is a saved counter exporter.
type Endpoint struct {
	Name     string `json:"name" mapstructure:"name"`
	BaseURL  string `json:"base_url" mapstructure:"base_url"`
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`
	Timeout  string `json:"timeout" mapstructure:"timeout"`
}

type Config struct {
	Endpoints     []Endpoint `json:"endpoints" mapstructure:"endpoints"`
	HUD           string     `json:"hud" mapstructure:"hud"`
	FrameInterval string     `json:"frame_interval" mapstructure:"frame_interval"`
	Debug         bool       `json:"debug" mapstructure:"debug"`
	LogFile       string     `json:"log_file,omitempty" mapstructure:"log_file"`
}

var configPath string

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	configPath = filepath.Join(home, ".config", "gpuhud", "config.json")
}

// Path is the config file in use. GPUHUD_CONFIG overrides the default
// location.
func Path() string {
	if p := os.Getenv("GPUHUD_CONFIG"); p != "" {
		return p
	}
	return configPath
}

func defaultEndpoints() []Endpoint {
	return []Endpoint{
		{
			Name:     "local",
			BaseURL:  "http://127.0.0.1:6767",
			Endpoint: "/counters",
			Timeout:  "2s",
		},
	}
}

// Load reads the config file if present and applies GPUHUD_* environment
// overrides on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(Path())
	v.SetConfigType("json")
	v.SetEnvPrefix("GPUHUD")
	v.AutomaticEnv()

	v.SetDefault("hud", DefaultHUD)
	v.SetDefault("frame_interval", DefaultFrameInterval)
	v.SetDefault("debug", false)
	v.SetDefault("log_file", "")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Endpoints) == 0 {
		cfg.Endpoints = defaultEndpoints()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.FrameInterval); err != nil {
		return fmt.Errorf("invalid frame_interval %q: %w", c.FrameInterval, err)
	}
	for _, ep := range c.Endpoints {
		if ep.Name == "" {
			return errors.New("endpoint name must not be empty")
		}
		if ep.BaseURL == "" {
			return fmt.Errorf("endpoint '%s' has no base_url", ep.Name)
		}
	}
	return nil
}

// Interval returns the frame interval, falling back to the default when the
// configured value does not parse.
func (c *Config) Interval() time.Duration {
	d, err := time.ParseDuration(c.FrameInterval)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultFrameInterval)
	}
	return d
}

// Lookup returns the endpoint with the given name.
func (c *Config) Lookup(name string) (Endpoint, bool) {
	for _, e := range c.Endpoints {
		if e.Name == name {
			return e, true
		}
	}
	return Endpoint{}, false
}

func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func AddEndpoint(cfg *Config, ep Endpoint) error {
	if _, exists := cfg.Lookup(ep.Name); exists {
		return fmt.Errorf("endpoint with name '%s' already exists", ep.Name)
	}
	cfg.Endpoints = append(cfg.Endpoints, ep)
	return Save(cfg)
}

func RemoveEndpoint(cfg *Config, name string) error {
	found := false
	endpoints := make([]Endpoint, 0, len(cfg.Endpoints))
	for _, e := range cfg.Endpoints {
		if e.Name != name {
			endpoints = append(endpoints, e)
		} else {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("endpoint '%s' not found", name)
	}
	cfg.Endpoints = endpoints
	return Save(cfg)
}

func UpdateEndpoint(cfg *Config, oldName string, newEp Endpoint) error {
	for i, e := range cfg.Endpoints {
		if e.Name == oldName {
			cfg.Endpoints[i] = newEp
			return Save(cfg)
		}
	}
	return fmt.Errorf("endpoint '%s' not found", oldName)
}
