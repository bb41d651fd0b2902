package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/librarydesk/console/internal/api"
	"github.com/librarydesk/console/internal/core/service"
	"github.com/librarydesk/console/internal/infrastructure/backend"
	"github.com/librarydesk/console/internal/infrastructure/config"
	dbmongo "github.com/librarydesk/console/internal/infrastructure/db/mongo"
	dbredis "github.com/librarydesk/console/internal/infrastructure/db/redis"
	"github.com/librarydesk/console/internal/infrastructure/http/handlers"
	"github.com/librarydesk/console/internal/infrastructure/queue"
	"github.com/librarydesk/console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var addr, backendURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if backendURL != "" {
				cfg.Backend.BaseURL = backendURL
			}
			if addr == "" {
				addr = ":" + cfg.Port
			}
			return serve(ctx, cfg, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to :$PORT)")
	cmd.Flags().StringVar(&backendURL, "backend", "", "library backend base URL (overrides BACKEND_BASE_URL)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, addr string) error {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "librarydesk",
		Env:     cfg.Env,
	})

	rdb, err := dbredis.Connect(ctx, dbredis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	mongoClient, db, err := dbmongo.Connect(ctx, dbmongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := dbmongo.Disconnect(mongoClient); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	activity := dbmongo.NewActivityRepository(db)
	if err := activity.EnsureIndexes(ctx); err != nil {
		return err
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, logger.Component("backend"))
	if err != nil {
		return err
	}
	lib := backend.NewBackend(client)

	journal := queue.NewDispatcher(cfg.JournalWorkers, activity, logger.Component("journal"))
	// Workers outlive the signal so Close can drain what in-flight requests queued.
	journal.Start(context.WithoutCancel(ctx))
	defer journal.Close()

	svcLog := logger.Component("service")
	e, err := api.NewRouter(api.Deps{
		Log:           logger.Component("http"),
		SessionSecret: cfg.Session.Secret,
		SecureCookie:  cfg.Session.Secure,
		Development:   cfg.IsDevelopment(),

		Sessions:     service.NewSessionService(lib.Auth, dbredis.NewSessionStore(rdb, cfg.Session.TTL), svcLog),
		Catalog:      service.NewCatalogService(lib.Books, journal, svcLog),
		Fines:        service.NewFineService(lib.Fines, journal, svcLog),
		Reservations: service.NewReservationService(lib.Reservations, journal, svcLog),
		Members:      service.NewMemberService(lib.Members, journal, svcLog),
		Admins:       service.NewAdminService(lib.Admins, journal, svcLog),
		Borrow:       service.NewBorrowService(lib.Borrow, lib.Members, lib.Books, journal, svcLog),
		Reports:      service.NewReportService(lib.Reports, svcLog),
		Dashboards:   service.NewDashboardService(lib, activity, svcLog),

		Health: map[string]handlers.Check{
			"mongo":   handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
			"backend": client.Ping,
		},
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("backend", cfg.Backend.BaseURL).Msg("librarydesk listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
