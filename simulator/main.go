// Command simulator publishes synthetic vehicle positions to an MQTT broker,
// feeding the console's live position overlay during development.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	cfg := parseFlags()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fleet := GenerateFleet(cfg)
	runFleet(ctx, fleet, cfg)
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.Broker, "broker", "tcp://localhost:1883", "MQTT broker URL")
	flag.IntVar(&cfg.Count, "count", 5, "number of vehicles")
	flag.Int64Var(&cfg.FirstID, "first-id", 1, "vehicle id of the first simulated vehicle")
	flag.Float64Var(&cfg.CenterLat, "center-lat", 30.0444, "fleet center latitude")
	flag.Float64Var(&cfg.CenterLng, "center-lng", 31.2357, "fleet center longitude")
	flag.Float64Var(&cfg.RadiusKm, "radius-km", 5, "spawn radius around the center")
	flag.Float64Var(&cfg.SpeedKmh, "speed-kmh", 40, "vehicle speed")
	flag.DurationVar(&cfg.Interval, "interval", 2*time.Second, "position publish interval")
	flag.StringVar(&cfg.TopicPrefix, "topic-prefix", "fleet", "MQTT topic prefix")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "enable verbose logging")
	flag.Parse()
	return cfg
}

func runFleet(ctx context.Context, fleet []SimulatedVehicle, cfg Config) {
	var wg sync.WaitGroup
	for i := range fleet {
		v := &fleet[i]
		wg.Add(1)
		go func(v *SimulatedVehicle) {
			defer wg.Done()
			if err := v.Run(ctx); err != nil {
				log.Printf("vehicle %d: %v", v.ID, err)
			}
		}(v)
	}
	wg.Wait()
}
