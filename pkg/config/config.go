package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the media seeder.
// Only Output, Prompt and Logging are read from files; the HTTP and batch
// settings are fixed by DefaultConfig and only code can change them.
type Config struct {
	// Output location
	Output OutputConfig `yaml:"output" json:"output"`

	// HTTP client settings shared by every request
	HTTP HTTPConfig `yaml:"-" json:"-"`

	// Travel/landscape batch
	Travel TravelConfig `yaml:"-" json:"-"`

	// Profile picture batch
	Profile ProfileConfig `yaml:"-" json:"-"`

	// Confirmation prompt
	Prompt PromptConfig `yaml:"prompt" json:"prompt"`

	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// OutputConfig says where images are written
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
}

// HTTPConfig holds request settings
type HTTPConfig struct {
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
}

// TravelConfig describes the travel image batch
type TravelConfig struct {
	Count           int           `yaml:"count" json:"count"`
	PlaceholderBase string        `yaml:"placeholder_base" json:"placeholder_base"`
	Width           int           `yaml:"width" json:"width"`
	Height          int           `yaml:"height" json:"height"`
	SeedOffset      int           `yaml:"seed_offset" json:"seed_offset"`
	Delay           time.Duration `yaml:"delay" json:"delay"`
}

// ProfileConfig describes the profile picture batch
type ProfileConfig struct {
	Count              int           `yaml:"count" json:"count"`
	PrimaryURL         string        `yaml:"primary_url" json:"primary_url"`
	PrimaryDelay       time.Duration `yaml:"primary_delay" json:"primary_delay"`
	FallbackBase       string        `yaml:"fallback_base" json:"fallback_base"`
	FallbackWidth      int           `yaml:"fallback_width" json:"fallback_width"`
	FallbackHeight     int           `yaml:"fallback_height" json:"fallback_height"`
	FallbackSeedOffset int           `yaml:"fallback_seed_offset" json:"fallback_seed_offset"`
	FallbackDelay      time.Duration `yaml:"fallback_delay" json:"fallback_delay"`
}

// PromptConfig controls the confirmation prompt
type PromptConfig struct {
	AssumeYes bool `yaml:"assume_yes" json:"assume_yes"`
}

// LoggingConfig selects the log level and an optional log file
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

const (
	DefaultOutputDirectory = "uploads/profile-pictures"
	DefaultUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultPlaceholderBase = "https://picsum.photos"
	DefaultFaceURL         = "https://thispersondoesnotexist.com/image"
)

// DefaultConfig returns a Config instance with the fixed seeding plan
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Directory: DefaultOutputDirectory,
		},
		HTTP: HTTPConfig{
			UserAgent: DefaultUserAgent,
			Timeout:   10 * time.Second,
		},
		Travel: TravelConfig{
			Count:           50,
			PlaceholderBase: DefaultPlaceholderBase,
			Width:           800,
			Height:          600,
			SeedOffset:      1000,
			Delay:           500 * time.Millisecond,
		},
		Profile: ProfileConfig{
			Count:              100,
			PrimaryURL:         DefaultFaceURL,
			PrimaryDelay:       2 * time.Second,
			FallbackBase:       DefaultPlaceholderBase,
			FallbackWidth:      400,
			FallbackHeight:     400,
			FallbackSeedOffset: 2000,
			FallbackDelay:      500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv applies the MEDIASEED_* environment variables that are set
func (c *Config) LoadFromEnv() error {
	if dir := os.Getenv("MEDIASEED_OUTPUT_DIR"); dir != "" {
		c.Output.Directory = dir
	}
	if level := os.Getenv("MEDIASEED_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("MEDIASEED_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	if yes := os.Getenv("MEDIASEED_ASSUME_YES"); yes != "" {
		c.Prompt.AssumeYes = strings.ToLower(yes) == "true"
	}

	return nil
}

// LoadFromFile overlays a YAML file. An empty path searches the working
// directory; finding nothing there is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile returns the first default config file present in the working directory
func (c *Config) findConfigFile() string {
	locations := []string{
		"mediaseed.yaml",
		"mediaseed.yml",
		".mediaseed.yaml",
		".mediaseed.yml",
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("http timeout must be positive"))
	}
	if c.HTTP.UserAgent == "" {
		errs = append(errs, errors.New("user agent is required"))
	}

	if c.Travel.Count < 0 || c.Travel.Count > 99 {
		errs = append(errs, errors.New("travel count must be between 0 and 99"))
	}
	if c.Profile.Count < 0 || c.Profile.Count > 999 {
		errs = append(errs, errors.New("profile count must be between 0 and 999"))
	}
	if c.Travel.PlaceholderBase == "" || c.Profile.FallbackBase == "" {
		errs = append(errs, errors.New("placeholder base URL is required"))
	}
	if c.Profile.PrimaryURL == "" {
		errs = append(errs, errors.New("profile primary URL is required"))
	}
	if c.Travel.Delay < 0 || c.Profile.PrimaryDelay < 0 || c.Profile.FallbackDelay < 0 {
		errs = append(errs, errors.New("delays cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// MergeCommandLineFlags applies flags the user set explicitly
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if yes, ok := flags["yes"].(bool); ok && yes {
		c.Prompt.AssumeYes = true
	}
}

// Load resolves the configuration.
// Precedence: flags > environment > .env files > config file > defaults.
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".mediaseed.env")

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
