// Command kumbayah serves the booking calendar on a loopback HTTP port.
//
//	@title			Kumbayah Booking Calendar API
//	@version		1.0
//	@description	Single-user booking calendar: month grid, day availability, reservations and iCalendar export.
//	@BasePath		/api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/kumbayah/booking-calendar/internal/backup"
	"github.com/kumbayah/booking-calendar/internal/config"
	httpapi "github.com/kumbayah/booking-calendar/internal/http"
	"github.com/kumbayah/booking-calendar/internal/observability"
	"github.com/kumbayah/booking-calendar/internal/repo"
	"github.com/kumbayah/booking-calendar/internal/sysutil"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	cfg := config.MustLoad()
	sysutil.ConfigureLogger(cfg.LogLevel, cfg.LogPretty, os.Stderr)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("kumbayah stopped")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	shutdownTracing, err := observability.Setup(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(db); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
	}()
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}
	log.Info().Str("db", cfg.DBPath).Msg("storage ready")

	bcfg := backup.Config{Schedule: cfg.Backup.Schedule, Dir: cfg.Backup.Dir, Keep: cfg.Backup.Keep}
	if bcfg.Enabled() {
		sched, err := backup.New(db, bcfg)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := sched.Stop(sctx); err != nil {
				log.Warn().Err(err).Msg("backup scheduler stop")
			}
		}()
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	start := time.Now()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	log.Info().Dur("took", time.Since(start)).Msg("server stopped")
	return nil
}
