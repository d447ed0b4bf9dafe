package main

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/catalog"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/cli"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/server"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/telemetry/health"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/telemetry/tracing"
)

var watchFlags struct {
	initialScan bool
	listen      string
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]...",
	Short: "Keep the catalog current while files change",
	Long: `Scan the given directories, then update the catalog whenever a file
below them is written or removed. Pruning runs on the configured retention
schedule.

When telemetry.metrics.listen_address is set, Prometheus metrics and the
/health, /ready and /version probes are served there.

Examples:
  # Watch the current directory
  simdxf watch

  # Watch a project and expose metrics
  simdxf watch --listen :9464 projects/a`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchFlags.initialScan, "initial-scan", true, "scan the directories before watching")
	watchCmd.Flags().StringVar(&watchFlags.listen, "listen", "", "status address (default: telemetry.metrics.listen_address)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	store, err := a.openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
	ctx = tracing.ExtractFromEnv(ctx)

	scanner := a.newScanner(store)
	if watchFlags.initialScan {
		for _, root := range args {
			res, err := scanner.Scan(ctx, root, a.cfg.Watch.Recursive)
			if err != nil {
				return cli.NewCommandError("watch", err)
			}
			a.metrics.RecordScan(res.Indexed, res.Failed, res.Duration)
		}
	}
	a.updateCatalogSize(ctx, store)

	watcher := catalog.NewWatcher(scanner, &a.cfg.Watch, a.log.Slog())
	watcher.OnEvent = func(op string) {
		a.metrics.RecordWatchEvent(op)
		a.updateCatalogSize(ctx, store)
	}

	scheduler := catalog.NewScheduler(a.newPruner(store), a.cfg.Catalog.Retention.Schedule, a.log.Slog())
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewConfigError("catalog.retention.schedule", err.Error())
	}
	defer scheduler.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return watcher.Run(ctx, args...) })

	listen := watchFlags.listen
	if listen == "" {
		listen = a.cfg.Telemetry.Metrics.ListenAddress
	}
	if listen != "" {
		srv := server.New(server.Config{ListenAddress: listen}, a.statusHandler(store, args), a.log.Slog())
		g.Go(func() error { return srv.Start(ctx) })
	}

	err = g.Wait()
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	a.log.Info("watch stopped")
	return nil
}

// statusHandler serves metrics and the health probes of a running watch.
func (a *app) statusHandler(store *catalog.SQLiteStore, roots []string) http.Handler {
	checker := health.New(0)
	checker.RegisterCheck("catalog", health.PingCheck(store))
	if a.cfg.Keys.Provider == "file" {
		checker.RegisterCheck("keys", health.KeyCheck(a.keys))
	}
	for _, root := range roots {
		checker.RegisterCheck("dir:"+root, health.DirCheck(root))
	}

	mux := http.NewServeMux()
	if a.cfg.Telemetry.Metrics.Enabled {
		mux.Handle(a.cfg.Telemetry.Metrics.Path, a.metrics.Handler())
	}
	health.Mount(mux, checker, versionInfo())
	return tracing.HTTPMiddleware(mux)
}

func (a *app) updateCatalogSize(ctx context.Context, store catalog.Store) {
	n, err := store.Count(ctx, &catalog.Query{})
	if err != nil {
		a.log.Warn("catalog size unavailable", "error", err)
		return
	}
	a.metrics.UpdateCatalogSize(n)
}
