// Command server runs the catanylizer HTTP API: board geometry,
// intersection rankings, and live WebSocket sessions.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/berpycasiano-dotcom/catanylizer/internal/api"
	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
	"github.com/berpycasiano-dotcom/catanylizer/internal/config"
	"github.com/berpycasiano-dotcom/catanylizer/internal/geometry"
	"github.com/berpycasiano-dotcom/catanylizer/internal/live"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	hexes := board.StandardBoard()
	graph := geometry.BuildIntersections(hexes, cfg.DefaultSize, geometry.DefaultPrecision)
	slog.Info("board ready",
		"hexes", len(hexes),
		"intersections", len(graph.Vertices),
		"size", cfg.DefaultSize,
	)

	if cfg.AdminKey == "" {
		slog.Warn("CATANYLIZER_ADMIN_KEY not set — the export endpoint will be disabled")
	}

	liveServer := live.NewServer(graph, cfg.DefaultWeight, cfg.Live)

	apiServer := &api.Server{
		Board: hexes,
		Graph: graph,
		Live:  liveServer,
		Cfg:   cfg,
	}
	apiServer.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("\ncatanylizer is up: %d hexes, %d intersections.\n", len(hexes), len(graph.Vertices))
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.Port)
	fmt.Println("Serving... (Ctrl+C to stop)")

	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)
}
