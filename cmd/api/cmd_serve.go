package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/anafloresm/ropita-backend/internal/config"
	"github.com/anafloresm/ropita-backend/internal/modules/auth"
	"github.com/anafloresm/ropita-backend/internal/modules/catalog"
	"github.com/anafloresm/ropita-backend/internal/modules/inventory"
	"github.com/anafloresm/ropita-backend/internal/modules/user"
	"github.com/anafloresm/ropita-backend/internal/platform/database"
	"github.com/anafloresm/ropita-backend/internal/platform/logger"
	"github.com/anafloresm/ropita-backend/internal/platform/metrics"
	"github.com/anafloresm/ropita-backend/internal/platform/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(cfg.AppEnv)

		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Info().Msg("connected to the database")

		router := chi.NewRouter()
		router.Use(middleware.RequestID)
		router.Use(middleware.Recoverer)
		router.Use(web.RequestLogger(log))
		router.Use(metrics.Middleware)

		router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			if err := db.PingContext(r.Context()); err != nil {
				web.Error(w, http.StatusServiceUnavailable, "database unreachable")
				return
			}
			web.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		router.Handle("/metrics", metrics.Handler())

		// Identity
		userRepo := user.NewPostgresRepository(db)
		userService := user.NewService(userRepo)
		authService := auth.NewService(userRepo, cfg.JWTSecret)
		requireAuth := auth.Middleware(authService)
		requireAdmin := auth.AdminOnly(authService)
		auth.NewHandler(authService, requireAuth).RegisterRoutes(router)
		user.NewHandler(userService, requireAdmin).RegisterRoutes(router)

		// Catalog
		categoryRepo := catalog.NewCategoryPostgresRepository(db)
		productRepo := catalog.NewProductPostgresRepository(db)
		catalogService := catalog.NewService(categoryRepo, productRepo)
		catalog.NewHandler(catalogService, requireAuth, requireAdmin).RegisterRoutes(router)

		// Stock ledger
		inventoryRepo := inventory.NewPostgresRepository(db)
		inventoryService := inventory.NewService(inventoryRepo)
		inventory.NewHandler(inventoryService, requireAuth).RegisterRoutes(router)

		srv := &http.Server{
			Addr:              ":" + cfg.AppPort,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", srv.Addr).Msg("http server listening")
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-stop:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
