package main

import (
	"fmt"
	"time"
)

// Config holds the simulator parameters.
type Config struct {
	Broker      string
	Count       int
	FirstID     int64
	CenterLat   float64
	CenterLng   float64
	RadiusKm    float64
	SpeedKmh    float64
	Interval    time.Duration
	TopicPrefix string
	Verbose     bool
}

// Validate checks the parameters.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	if c.Count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	if c.RadiusKm <= 0 {
		return fmt.Errorf("radius-km must be positive")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	return nil
}
