package config

import "fmt"

// APIConfig defines the dispatch backend endpoint.
type APIConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c APIConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("api: base_url is required")
	}
	return nil
}

// MapConfig tunes the map view.
type MapConfig struct {
	// FlyZoom is the zoom level applied on locate transitions.
	FlyZoom int `json:"fly_zoom"`
}

func (c *MapConfig) SetDefaults() {
	if c.FlyZoom == 0 {
		c.FlyZoom = 15
	}
}

func (c MapConfig) Validate() error {
	if c.FlyZoom < 1 || c.FlyZoom > 22 {
		return fmt.Errorf("map: fly_zoom out of range: %d", c.FlyZoom)
	}
	return nil
}

// ConsoleConfig defines the local status HTTP surface.
type ConsoleConfig struct {
	// Addr is the listen address shared by the snapshot, analytics and
	// metrics endpoints. Empty disables the server.
	Addr string `json:"addr"`
}

func (c *ConsoleConfig) SetDefaults() {}
