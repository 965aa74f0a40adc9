package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/dispatchconsole/core/model"
)

// degPerKm approximates one kilometer in latitude degrees.
const degPerKm = 1.0 / 111.0

// SimulatedVehicle wanders around the fleet center and publishes its
// position on every tick.
type SimulatedVehicle struct {
	ID          int64
	Lat         float64
	Lng         float64
	Heading     float64
	StepDeg     float64
	Broker      string
	TopicPrefix string
	Interval    time.Duration

	rng *rand.Rand
}

// GenerateFleet spawns vehicles at random offsets inside the configured
// radius.
func GenerateFleet(cfg Config) []SimulatedVehicle {
	fleet := make([]SimulatedVehicle, cfg.Count)
	for i := range fleet {
		rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(i)))
		angle := rng.Float64() * 2 * math.Pi
		dist := rng.Float64() * cfg.RadiusKm * degPerKm
		fleet[i] = SimulatedVehicle{
			ID:          cfg.FirstID + int64(i),
			Lat:         cfg.CenterLat + dist*math.Sin(angle),
			Lng:         cfg.CenterLng + dist*math.Cos(angle),
			Heading:     rng.Float64() * 2 * math.Pi,
			StepDeg:     cfg.SpeedKmh / 3600 * cfg.Interval.Seconds() * degPerKm,
			Broker:      cfg.Broker,
			TopicPrefix: cfg.TopicPrefix,
			Interval:    cfg.Interval,
			rng:         rng,
		}
	}
	return fleet
}

// Step advances the vehicle along its heading with a small random drift.
func (v *SimulatedVehicle) Step() {
	v.Heading += (v.rng.Float64() - 0.5) * math.Pi / 4
	v.Lat += v.StepDeg * math.Sin(v.Heading)
	v.Lng += v.StepDeg * math.Cos(v.Heading)
}

// Position returns the current position message.
func (v *SimulatedVehicle) Position() model.VehiclePosition {
	return model.VehiclePosition{VehicleID: v.ID, Lat: v.Lat, Lng: v.Lng}
}

// Run connects to the broker and publishes positions until the context is
// cancelled.
func (v *SimulatedVehicle) Run(ctx context.Context) error {
	opts := paho.NewClientOptions().
		AddBroker(v.Broker).
		SetClientID(fmt.Sprintf("simulator-%d", v.ID))
	opts.AutoReconnect = true
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer cli.Disconnect(250)

	topic := fmt.Sprintf("%s/%d/position", v.TopicPrefix, v.ID)
	ticker := time.NewTicker(v.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			v.Step()
			payload, err := json.Marshal(v.Position())
			if err != nil {
				return err
			}
			if token := cli.Publish(topic, 0, false, payload); token.Wait() && token.Error() != nil {
				return token.Error()
			}
		}
	}
}
