package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	LibraryFile string       `yaml:"library_file" mapstructure:"library_file"`
	StrictLoad  bool         `yaml:"strict_load" mapstructure:"strict_load"`
	Debug       bool         `yaml:"debug" mapstructure:"debug"`
	LogFile     string       `yaml:"log_file" mapstructure:"log_file"`
	Render      RenderConfig `yaml:"render" mapstructure:"render"`
}

type RenderConfig struct {
	Style    string `yaml:"style" mapstructure:"style"`
	WordWrap int    `yaml:"word_wrap" mapstructure:"word_wrap"`
}

func DefaultConfig() *Config {
	return &Config{
		LibraryFile: "library.txt",
		Render: RenderConfig{
			Style:    "auto",
			WordWrap: 100,
		},
	}
}

// Dir is where a user-level config.yaml lives.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bookshelf")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookshelf")
}

// Load reads .env, then config.yaml from the working directory or the user config dir,
// then BOOKSHELF_* environment variables. Missing files fall back to defaults.
func Load() (*Config, error) {
	return LoadFrom(".", Dir())
}

// LoadFrom is Load with explicit search paths, in priority order.
func LoadFrom(paths ...string) (*Config, error) {
	// .env is optional; the variables may come straight from the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := DefaultConfig()
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("BOOKSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults must be registered for env-only keys to reach Unmarshal.
	v.SetDefault("library_file", cfg.LibraryFile)
	v.SetDefault("strict_load", cfg.StrictLoad)
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("render.style", cfg.Render.Style)
	v.SetDefault("render.word_wrap", cfg.Render.WordWrap)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.LibraryFile = os.ExpandEnv(cfg.LibraryFile)
	cfg.LogFile = os.ExpandEnv(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LibraryFile) == "" {
		return fmt.Errorf("config: library_file is required")
	}
	if c.Render.WordWrap < 0 {
		return fmt.Errorf("config: render.word_wrap must not be negative, got %d", c.Render.WordWrap)
	}
	if c.Render.Style == "" {
		c.Render.Style = "auto"
	}
	return nil
}
