package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tweetstream/webfront/internal/config"
	"github.com/tweetstream/webfront/internal/server"
)

const (
	defaultAddr = ":8080"
	defaultRoot = "/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the frontend asset server",
	Long:  "Serve the TweetStream single-page app's static assets over HTTP. Unknown routes fall back to index.html so client-side routing works.",
	RunE:  runServe,
}

var (
	serveAddr   string
	serveRoot   string
	configPath  string
	watchAssets bool
	maxRPS      float64
	burst       int
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default "+defaultAddr+")")
	serveCmd.Flags().StringVar(&serveRoot, "root", "", "Asset root directory (default "+defaultRoot+")")
	serveCmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "Config file path")
	serveCmd.Flags().BoolVar(&watchAssets, "watch", false, "Log asset changes in the root directory")
	serveCmd.Flags().Float64Var(&maxRPS, "max-rps", 0, "Max requests per second, 0 disables throttling")
	serveCmd.Flags().IntVar(&burst, "burst", 0, "Throttle burst size")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	setupLogging()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", configPath, err)
	}

	// Flags override the config file; built-in defaults fill the rest.
	addr := firstNonEmpty(serveAddr, cfg.ListenAddr, defaultAddr)
	root := firstNonEmpty(serveRoot, cfg.AssetRoot, defaultRoot)
	rps := maxRPS
	if rps == 0 {
		rps = cfg.MaxRPS
	}
	b := burst
	if b == 0 {
		b = cfg.Burst
	}
	watch := watchAssets || cfg.WatchAssets

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("reading asset root %s: %w", root, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slog.Info("webfront starting", "addr", addr, "root", root, "files", names)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	srv := server.New(server.Options{
		Addr:   addr,
		Root:   root,
		MaxRPS: rps,
		Burst:  b,
	})

	if watch {
		go func() {
			if err := srv.WatchAssets(ctx); err != nil {
				slog.Error("asset watcher stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	slog.Info("webfront stopped")
	return nil
}

// setupLogging picks a text handler on an interactive stderr and JSON
// otherwise, so container logs stay machine-parseable.
func setupLogging() {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
