package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/dispatchconsole/auth"
	"github.com/kilianp07/dispatchconsole/config"
	"github.com/kilianp07/dispatchconsole/core/poll"
	"github.com/kilianp07/dispatchconsole/core/store"
	"github.com/kilianp07/dispatchconsole/infra/api"
	"github.com/kilianp07/dispatchconsole/infra/logger"
	"github.com/kilianp07/dispatchconsole/pkg/export"
)

var snapshotFormat string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch one entity snapshot and print it",
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotFormat, "format", "json", "output format: json or csv (incidents only)")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Mode != config.ModeServer {
		return fmt.Errorf("snapshot requires server mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cred := auth.NewCredential(cfg.Auth)
	client := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, cred)
	st := store.New()
	poller := poll.New(client, st, nil, logger.New("snapshot-command"), cfg.Poll)
	if err := poller.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	switch snapshotFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st.Snapshot())
	case "csv":
		return export.WriteCSV(os.Stdout, st.Incidents())
	default:
		return fmt.Errorf("unknown format %q", snapshotFormat)
	}
}
