// Package poll keeps the entity store synchronized with the backend.
package poll

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kilianp07/dispatchconsole/auth"
	"github.com/kilianp07/dispatchconsole/core/backend"
	"github.com/kilianp07/dispatchconsole/core/logger"
	"github.com/kilianp07/dispatchconsole/core/metrics"
	"github.com/kilianp07/dispatchconsole/core/model"
	"github.com/kilianp07/dispatchconsole/core/store"
	"github.com/kilianp07/dispatchconsole/internal/eventbus"
)

// Fetcher is the read-only backend surface the poller needs.
type Fetcher interface {
	ListIncidents(ctx context.Context, filter backend.StatusFilter) ([]model.Incident, error)
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	ListStations(ctx context.Context) ([]model.Station, error)
}

// Config defines the polling parameters loaded from configuration.
type Config struct {
	IntervalSeconds int    `json:"interval_seconds"`
	Filter          string `json:"filter"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.IntervalSeconds <= 0 {
		c.IntervalSeconds = 5
	}
	if c.Filter == "" {
		c.Filter = string(backend.FilterAll)
	}
}

// Validate checks the filter value.
func (c Config) Validate() error {
	if !backend.StatusFilter(c.Filter).Valid() {
		return errors.New("unknown status filter " + c.Filter)
	}
	return nil
}

// ErrUnknownFilter is returned by SetFilter for values outside the enum.
var ErrUnknownFilter = errors.New("unknown status filter")

// Poller refreshes incidents, vehicles and stations on a fixed interval.
// Each collection is fetched and replaced independently: a failed fetch logs
// a warning and leaves the previous snapshot untouched. Overlapping cycles
// are tolerated; the last write wins per collection.
type Poller struct {
	fetcher  Fetcher
	store    *store.Store
	sink     metrics.Sink
	log      logger.Logger
	interval time.Duration

	mu     sync.RWMutex
	filter backend.StatusFilter
	notify *eventbus.Bus[store.Snapshot]
}

// New creates a Poller. A nil sink disables metrics.
func New(fetcher Fetcher, st *store.Store, sink metrics.Sink, log logger.Logger, cfg Config) *Poller {
	cfg.SetDefaults()
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Poller{
		fetcher:  fetcher,
		store:    st,
		sink:     sink,
		log:      log,
		interval: time.Duration(cfg.IntervalSeconds) * time.Second,
		filter:   backend.StatusFilter(cfg.Filter),
	}
}

// SetNotifier publishes the full snapshot on bus after every cycle, so the
// map view re-renders without watching the store.
func (p *Poller) SetNotifier(bus *eventbus.Bus[store.Snapshot]) {
	p.mu.Lock()
	p.notify = bus
	p.mu.Unlock()
}

// SetFilter changes the incident status filter for subsequent cycles.
func (p *Poller) SetFilter(f backend.StatusFilter) error {
	if !f.Valid() {
		return ErrUnknownFilter
	}
	p.mu.Lock()
	p.filter = f
	p.mu.Unlock()
	return nil
}

// Filter returns the current status filter.
func (p *Poller) Filter() backend.StatusFilter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.filter
}

// Run refreshes once immediately, then on every tick until ctx is cancelled.
// It returns early when the credential disappears: polling without a
// credential is pointless and would leak anonymous requests.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.Refresh(ctx); errors.Is(err, auth.ErrNoCredential) {
		p.log.Warnf("credential gone, stopping poller")
		return err
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.Refresh(ctx); errors.Is(err, auth.ErrNoCredential) {
				p.log.Warnf("credential gone, stopping poller")
				return err
			}
		}
	}
}

// Refresh performs one poll cycle. The three fetches run concurrently and
// each collection is stored as soon as its fetch resolves; there is no
// barrier between them. The returned error joins the per-collection failures.
func (p *Poller) Refresh(ctx context.Context) error {
	filter := p.Filter()

	var wg sync.WaitGroup
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		errs[0] = p.fetchCollection(ctx, "incidents", func(ctx context.Context) (int, error) {
			incidents, err := p.fetcher.ListIncidents(ctx, filter)
			if err != nil {
				return 0, err
			}
			p.store.ReplaceIncidents(incidents)
			return len(incidents), nil
		})
	}()
	go func() {
		defer wg.Done()
		errs[1] = p.fetchCollection(ctx, "vehicles", func(ctx context.Context) (int, error) {
			vehicles, err := p.fetcher.ListVehicles(ctx)
			if err != nil {
				return 0, err
			}
			p.store.ReplaceVehicles(vehicles)
			return len(vehicles), nil
		})
	}()
	go func() {
		defer wg.Done()
		errs[2] = p.fetchCollection(ctx, "stations", func(ctx context.Context) (int, error) {
			stations, err := p.fetcher.ListStations(ctx)
			if err != nil {
				return 0, err
			}
			p.store.ReplaceStations(stations)
			return len(stations), nil
		})
	}()
	wg.Wait()

	p.mu.RLock()
	notify := p.notify
	p.mu.RUnlock()
	if notify != nil {
		notify.Publish(p.store.Snapshot())
	}

	snap := p.store.Counts()
	if err := p.sink.RecordSnapshotSize(metrics.SnapshotSize{
		Incidents: snap.Incidents,
		Vehicles:  snap.Vehicles,
		Stations:  snap.Stations,
		Time:      time.Now(),
	}); err != nil {
		p.log.Debugf("snapshot metric: %v", err)
	}
	return errors.Join(errs...)
}

func (p *Poller) fetchCollection(ctx context.Context, name string, fetch func(context.Context) (int, error)) error {
	start := time.Now()
	count, err := fetch(ctx)
	res := metrics.PollResult{
		Collection: name,
		Success:    err == nil,
		Count:      count,
		Duration:   time.Since(start),
		Time:       start,
	}
	if serr := p.sink.RecordPollResult(res); serr != nil {
		p.log.Debugf("poll metric: %v", serr)
	}
	if err != nil {
		// previous snapshot stays in place; the next cycle self-heals
		p.log.Warnf("fetch %s failed: %v", name, err)
		return err
	}
	return nil
}
