package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dispatchconsole/config"
	"github.com/kilianp07/dispatchconsole/core/maprender"
)

func localConfig() *config.Config {
	cfg := &config.Config{Mode: config.ModeLocal}
	cfg.SetDefaults()
	return cfg
}

func TestNewLocalMode(t *testing.T) {
	svc, err := New(localConfig(), &maprender.LogRenderer{})
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	assert.Nil(t, svc.Workflow())
	assert.NoError(t, svc.Refresh(context.Background()))
}

func TestLocalAssignThroughService(t *testing.T) {
	svc, err := New(localConfig(), &maprender.LogRenderer{})
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	require.NoError(t, svc.Assign(context.Background(), "2", "c2"))
	// The unit is Busy now; a second assignment must fail.
	assert.Error(t, svc.Assign(context.Background(), "3", "c2"))
}

func TestLocateDrivesRenderer(t *testing.T) {
	r := &maprender.LogRenderer{}
	svc, err := New(localConfig(), r)
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Run(ctx) }()

	svc.Locate(30.05, 31.25)
	assert.Eventually(t, func() bool {
		return len(r.Flights()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	cancel()
}

func TestNewRejectsUnknownMode(t *testing.T) {
	cfg := &config.Config{Mode: "hybrid"}
	_, err := New(cfg, &maprender.LogRenderer{})
	assert.Error(t, err)
}

func TestStatusAddrPrecedence(t *testing.T) {
	cfg := localConfig()
	svc, err := New(cfg, &maprender.LogRenderer{})
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()
	assert.Empty(t, svc.statusAddr())

	cfg.Metrics.PrometheusEnabled = true
	cfg.Metrics.PrometheusPort = ":9091"
	assert.Equal(t, ":9091", svc.statusAddr())

	cfg.Console.Addr = ":8080"
	assert.Equal(t, ":8080", svc.statusAddr())
}
