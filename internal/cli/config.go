package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"content-indexer/internal/output"

	"github.com/spf13/viper"
)

// Config is the indexctl configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Output OutputConfig `mapstructure:"output"`
}

type ServerConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type OutputConfig struct {
	// Color is auto, always or never.
	Color string `mapstructure:"color"`
	Quiet bool   `mapstructure:"quiet"`
}

// newViper builds the lookup chain: flags, INDEXCTL_* env, .indexctl.yaml, defaults.
func newViper(cfgFile string) *viper.Viper {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".indexctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/indexctl")
	}

	v.SetEnvPrefix("INDEXCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.url", "http://localhost:3001")
	v.SetDefault("server.timeout", 10*time.Second)
	v.SetDefault("output.color", "auto")
	v.SetDefault("output.quiet", false)
	return v
}

// loadConfig reads the config file, if any, and validates the result.
func loadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("invalid server url %q: %w", c.Server.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server url %q: scheme must be http or https", c.Server.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server url %q: missing host", c.Server.URL)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %s", c.Server.Timeout)
	}
	if _, err := output.ParseColorMode(c.Output.Color); err != nil {
		return err
	}
	return nil
}
