package main

import (
	"log/slog"
	"os"

	"github.com/Veraticus/museum-pulse/internal/api"
	"github.com/Veraticus/museum-pulse/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard as a JSON HTTP API",
		Long: `Serve facets, filtered reviews and dashboard pages over HTTP.

Endpoints:
  GET  /healthz
  GET  /api/facets
  GET  /api/reviews?limit=&offset=
  GET  /api/dashboard/{page}
  POST /api/reload

Filters are query parameters: year, tourist, sentiment, rating, keyword.
The negative page ignores sentiment and accepts emotion to narrow it.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default: server.addr)")
	cmd.Flags().Duration("reload-interval", 0, "Check the source file for changes this often (0 disables)")

	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("data.reload_interval", cmd.Flags().Lookup("reload-interval"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(os.Stderr, "Server")
	ctx := handler.HandleInterrupts(cmd.Context())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg, true)
	if err != nil {
		return err
	}

	server, err := api.NewServer(store, api.Options{
		CacheSize: cfg.Server.CacheSize,
		TopN:      cfg.Report.TopN,
	})
	if err != nil {
		return err
	}

	go server.WatchReload(ctx, cfg.Data.ReloadInterval)
	slog.Info(cli.FormatInfo("Press Ctrl+C to stop"), "addr", cfg.Server.Addr)
	return server.ListenAndServe(ctx, cfg.Server.Addr)
}
