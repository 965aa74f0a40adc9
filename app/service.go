// Package app wires configuration into a running console service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/dispatchconsole/api/console"
	"github.com/kilianp07/dispatchconsole/auth"
	"github.com/kilianp07/dispatchconsole/config"
	"github.com/kilianp07/dispatchconsole/core/focus"
	"github.com/kilianp07/dispatchconsole/core/maprender"
	coremetrics "github.com/kilianp07/dispatchconsole/core/metrics"
	"github.com/kilianp07/dispatchconsole/core/model"
	"github.com/kilianp07/dispatchconsole/core/poll"
	"github.com/kilianp07/dispatchconsole/core/session"
	"github.com/kilianp07/dispatchconsole/core/store"
	"github.com/kilianp07/dispatchconsole/core/workflow"
	"github.com/kilianp07/dispatchconsole/infra/api"
	"github.com/kilianp07/dispatchconsole/infra/logger"
	"github.com/kilianp07/dispatchconsole/infra/metrics"
	"github.com/kilianp07/dispatchconsole/infra/mqtt"
	"github.com/kilianp07/dispatchconsole/internal/eventbus"
)

// Service orchestrates the entity store, the poll session, the dispatch
// workflow and the map view for one operator.
type Service struct {
	cfg *config.Config
	log logger.Logger

	store      *store.Store
	poller     *poll.Poller
	session    *session.Session
	controller *workflow.Controller
	strategy   workflow.AssignmentStrategy
	emitter    *focus.Emitter
	view       *maprender.View

	snapshotBus *eventbus.Bus[store.Snapshot]
	focusBus    *eventbus.Bus[model.FocusEvent]
	positionBus *eventbus.Bus[model.VehiclePosition]

	feed *mqtt.PositionFeed
}

// New creates a Service from the configuration. The renderer is injected so
// headless runs and tests can observe map output.
func New(cfg *config.Config, renderer maprender.Renderer) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	st := store.New()
	snapshotBus := eventbus.New[store.Snapshot]()
	focusBus := eventbus.New[model.FocusEvent]()
	positionBus := eventbus.New[model.VehiclePosition]()

	svc := &Service{
		cfg:         cfg,
		log:         logg,
		store:       st,
		emitter:     focus.NewEmitter(focusBus),
		view:        maprender.NewView(renderer, logg, cfg.Map.FlyZoom),
		snapshotBus: snapshotBus,
		focusBus:    focusBus,
		positionBus: positionBus,
	}

	switch cfg.Mode {
	case config.ModeServer:
		cred := auth.NewCredential(cfg.Auth)
		client := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, cred)
		svc.poller = poll.New(client, st, sink, logg, cfg.Poll)
		svc.poller.SetNotifier(snapshotBus)
		svc.session = session.New(cred, svc.poller, logg)
		svc.controller = workflow.NewController(client, st, svc.poller, sink, logg)
		svc.strategy = workflow.ServerConfirmed{Controller: svc.controller, Incidents: st}
	case config.ModeLocal:
		incidents, units := workflow.SeedFixture()
		svc.strategy = workflow.OptimisticLocal{Assigner: workflow.NewLocalAssigner(incidents, units)}
	default:
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	if cfg.MQTT.Enabled {
		feed, err := mqtt.NewPositionFeed(cfg.MQTT, positionBus)
		if err != nil {
			return nil, fmt.Errorf("position feed: %w", err)
		}
		svc.feed = feed
	}
	return svc, nil
}

// Store exposes the entity store for read access.
func (s *Service) Store() *store.Store { return s.store }

// Workflow exposes the dispatch controller, nil in local mode.
func (s *Service) Workflow() *workflow.Controller { return s.controller }

// Assign reassigns an incident to a vehicle through the configured strategy.
func (s *Service) Assign(ctx context.Context, incidentID, vehicleID string) error {
	return s.strategy.Assign(ctx, incidentID, vehicleID)
}

// Locate emits a focus event centering the map on the coordinate.
func (s *Service) Locate(lat, lng float64) {
	s.emitter.Emit(lat, lng)
}

// Refresh forces one poll cycle outside the regular interval.
func (s *Service) Refresh(ctx context.Context) error {
	if s.poller == nil {
		return nil
	}
	return s.poller.Refresh(ctx)
}

// Run starts the view, the poll session and the status server, then blocks
// until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go s.view.Run(ctx, s.snapshotBus.Subscribe(), s.focusBus.Subscribe(), s.positionBus.Subscribe())

	if s.session != nil {
		if err := s.session.Start(ctx); err != nil {
			return fmt.Errorf("session: %w", err)
		}
	}

	if addr := s.statusAddr(); addr != "" {
		handlers := map[string]http.Handler{
			"/api/console/snapshot":  console.NewSnapshotHandler(s.store),
			"/api/console/analytics": console.NewAnalyticsHandler(s.store),
		}
		if s.controller != nil {
			handlers["/api/console/workflow"] = console.NewWorkflowHandler(s.controller)
		}
		go func() {
			if err := metrics.StartPromServer(ctx, addr, handlers); err != nil {
				s.log.Errorf("status server: %v", err)
			}
		}()
	}

	<-ctx.Done()
	return nil
}

func (s *Service) statusAddr() string {
	if s.cfg.Console.Addr != "" {
		return s.cfg.Console.Addr
	}
	if s.cfg.Metrics.PrometheusEnabled {
		return s.cfg.Metrics.PrometheusPort
	}
	return ""
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.session != nil {
		s.session.Stop()
	}
	if s.feed != nil {
		s.feed.Close()
	}
	s.snapshotBus.Close()
	s.focusBus.Close()
	s.positionBus.Close()
	return nil
}
