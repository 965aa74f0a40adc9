// Package config loads the console configuration from a JSON or YAML file
// with environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/dispatchconsole/auth"
	"github.com/kilianp07/dispatchconsole/core/metrics"
	"github.com/kilianp07/dispatchconsole/core/poll"
	"github.com/kilianp07/dispatchconsole/infra/mqtt"
)

// Assignment modes.
const (
	ModeServer = "server"
	ModeLocal  = "local"
)

type Config struct {
	// Mode selects server-confirmed or local-mock assignment.
	Mode    string         `json:"mode"`
	API     APIConfig      `json:"api"`
	Auth    auth.Conf      `json:"auth"`
	Poll    poll.Config    `json:"poll"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    mqtt.Config    `json:"mqtt"`
	Map     MapConfig      `json:"map"`
	Console ConsoleConfig  `json:"console"`
}

// Load reads the file at path and applies DC_-prefixed environment
// overrides, with "__" separating nested keys (DC_API__BASE_URL).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("DC_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "dc_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies sane defaults to every section.
func (c *Config) SetDefaults() {
	if c.Mode == "" {
		c.Mode = ModeServer
	}
	c.API.SetDefaults()
	c.Poll.SetDefaults()
	c.MQTT.SetDefaults()
	c.Map.SetDefaults()
	c.Console.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Mode != ModeServer && c.Mode != ModeLocal {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Mode == ModeServer {
		if err := c.API.Validate(); err != nil {
			return err
		}
	}
	if err := c.Poll.Validate(); err != nil {
		return err
	}
	if err := c.MQTT.Validate(); err != nil {
		return err
	}
	return c.Map.Validate()
}
