// Package server boots the site: configuration, storage, and the HTTP loop.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/inkwell-web/inkwell/internal/media"
	"github.com/inkwell-web/inkwell/internal/platform/config"
	"github.com/inkwell-web/inkwell/internal/storage/sqlite"
	"github.com/inkwell-web/inkwell/internal/web"
	"github.com/inkwell-web/inkwell/internal/web/platform/requestmeta"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
	sessionSweepEvery = time.Hour
)

// Config holds the runtime configuration for the site server.
type Config struct {
	// HTTPAddr is the listen address.
	HTTPAddr string `env:"INKWELL_HTTP_ADDR" envDefault:":8080"`
	// SQLitePath is the sqlite database file path.
	SQLitePath string `env:"INKWELL_SQLITE_PATH" envDefault:"inkwell.db"`
	// MediaRoot is the directory uploaded images are stored under.
	MediaRoot string `env:"INKWELL_MEDIA_ROOT" envDefault:"media"`
	// TrustForwardedProto enables X-Forwarded-Proto scheme detection. Only
	// turn this on behind a proxy that sets the header itself.
	TrustForwardedProto bool `env:"INKWELL_TRUST_FORWARDED_PROTO"`
}

// ParseConfig resolves configuration from the environment, then lets flags
// override it.
func ParseConfig(args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite database path")
	fs.StringVar(&cfg.MediaRoot, "media-root", cfg.MediaRoot, "uploaded media directory")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "trust X-Forwarded-Proto for scheme detection")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	return cfg, nil
}

// Run boots storage and serves HTTP until the context is canceled.
func Run(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("store close failed error=%v", err)
		}
	}()

	mediaStore, err := media.NewStore(cfg.MediaRoot)
	if err != nil {
		return fmt.Errorf("open media store: %w", err)
	}

	handler, err := web.NewHandler(web.Deps{
		Users:        store,
		Sessions:     store,
		Articles:     store,
		Categories:   store,
		Contacts:     store,
		Media:        mediaStore,
		SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
	})
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	go sweepExpiredSessions(ctx, store)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("http server listening addr=%s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}

// sweepExpiredSessions periodically drops sessions past their expiry so the
// session table does not grow without bound.
func sweepExpiredSessions(ctx context.Context, store *sqlite.Store) {
	ticker := time.NewTicker(sessionSweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.DeleteExpiredSessions(ctx, time.Now()); err != nil {
				log.Printf("session sweep failed error=%v", err)
			}
		}
	}
}
