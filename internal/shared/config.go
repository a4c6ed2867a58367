package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database   DatabaseConfig   `toml:"database"`
	Visualizer VisualizerConfig `toml:"visualizer"`
	Library    LibraryConfig    `toml:"library"`
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// VisualizerConfig tunes the step runners.
type VisualizerConfig struct {
	StepDelayMS      int    `toml:"step_delay_ms"`
	RecommendCount   int    `toml:"recommend_count"`
	DefaultAlgorithm string `toml:"default_algorithm"`
	DefaultCriterion string `toml:"default_criterion"`
}

// StepDelay returns the pacing interval between emitted steps.
func (v VisualizerConfig) StepDelay() time.Duration {
	if v.StepDelayMS <= 0 {
		return 0
	}
	return time.Duration(v.StepDelayMS) * time.Millisecond
}

// LibraryConfig contains library and playlist file settings.
type LibraryConfig struct {
	PlaylistsFile string `toml:"playlists_file"`
	SeedDefaults  bool   `toml:"seed_defaults"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BrowseURL is the local URL of path, with wildcard hosts replaced by localhost.
func (s ServerConfig) BrowseURL(path string) string {
	host := s.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s%s", net.JoinHostPort(host, strconv.Itoa(s.Port)), path)
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the numeric settings of a loaded config.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is empty", ErrInvalidConfig)
	}
	if c.Visualizer.StepDelayMS < 0 {
		return fmt.Errorf("%w: visualizer.step_delay_ms must be >= 0", ErrInvalidConfig)
	}
	if c.Visualizer.RecommendCount <= 0 {
		return fmt.Errorf("%w: visualizer.recommend_count must be > 0", ErrInvalidConfig)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port out of range", ErrInvalidConfig)
	}
	return nil
}

// LoadEnv loads variables from the given .env files into the process environment.
// Missing files are skipped; a file that exists but cannot be parsed is reported and the rest still load.
func LoadEnv(files ...string) error {
	var errs []error
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, f, err))
		}
	}
	return errors.Join(errs...)
}

// ApplyEnv overrides config values with VIBETUNE_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("VIBETUNE_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("VIBETUNE_STEP_DELAY_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: VIBETUNE_STEP_DELAY_MS=%q", ErrInvalidConfig, v)
		}
		c.Visualizer.StepDelayMS = n
	}
	if v := os.Getenv("VIBETUNE_PLAYLISTS_FILE"); v != "" {
		c.Library.PlaylistsFile = v
	}
	if v := os.Getenv("VIBETUNE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("VIBETUNE_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: VIBETUNE_PORT=%q", ErrInvalidConfig, v)
		}
		c.Server.Port = n
	}
	return c.Validate()
}
