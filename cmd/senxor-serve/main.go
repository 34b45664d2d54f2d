// senxor-serve streams SenXor frames to websocket clients.
//
// Endpoints:
//
//	/latest  most recent frame as JSON
//	/ws      every frame as a JSON text message
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonas-koeritz/senxor"
	"github.com/jonas-koeritz/senxor/settings"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "configuration file (created with defaults if missing)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level := cfg.level()
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("senxor-serve failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *Config) error {
	dev, err := senxor.Open(cfg.SerialPort, senxor.WithLogger(logger))
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := applyProfile(dev, cfg); err != nil {
		return err
	}
	if cfg.FrameRate > 0 {
		fps, err := dev.SetFramerate(cfg.FrameRate)
		if err != nil {
			return err
		}
		logger.Info("frame rate set", "fps", fps)
	}

	h := newHub(logger.With("component", "hub"), cfg.ClientBuffer)
	r := dev.NewReader()
	if _, err := r.AddListener("broadcast", h.publish); err != nil {
		return err
	}
	if err := r.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	go func() {
		for {
			if _, _, err := r.Read(ctx, true); err != nil {
				cancel(fmt.Errorf("frame reader: %w", err))
				return
			}
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/latest", h.handleLatest)
	mux.HandleFunc("/ws", h.handleWS)
	srv := &http.Server{Addr: cfg.addr(), Handler: mux}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		r.Stop()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	if err := r.Stop(); err != nil {
		return err
	}
	if cause := context.Cause(ctx); !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}

func applyProfile(dev *senxor.Senxor, cfg *Config) error {
	if cfg.SettingsFile == "" {
		return nil
	}
	profiles, err := settings.Load(cfg.SettingsFile)
	if err != nil {
		return err
	}
	if cfg.Profile != "" {
		p, ok := settings.Find(profiles, cfg.Profile)
		if !ok {
			return fmt.Errorf("profile %q not found in %s", cfg.Profile, cfg.SettingsFile)
		}
		profiles = []settings.Profile{p}
	}
	for _, p := range profiles {
		if err := settings.Apply(dev.Fields(), p); err != nil {
			return err
		}
	}
	return nil
}
