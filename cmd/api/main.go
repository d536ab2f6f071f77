package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/museum-cart/api/controllers"
	"github.com/angelmondragon/museum-cart/api/routes"
	"github.com/angelmondragon/museum-cart/api/views"
	"github.com/angelmondragon/museum-cart/internal/cart"
	"github.com/angelmondragon/museum-cart/internal/cartview"
	"github.com/angelmondragon/museum-cart/internal/catalog"
	"github.com/angelmondragon/museum-cart/internal/shop"
	"github.com/angelmondragon/museum-cart/pkg/config"
	"github.com/angelmondragon/museum-cart/pkg/db"
	"github.com/angelmondragon/museum-cart/pkg/instance"
	"github.com/angelmondragon/museum-cart/pkg/logger"
	"github.com/angelmondragon/museum-cart/pkg/memstore"
	"github.com/angelmondragon/museum-cart/pkg/metrics"
	"github.com/angelmondragon/museum-cart/pkg/migrate"
	"github.com/angelmondragon/museum-cart/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

type blobBackend interface {
	cartview.BlobStore
	controllers.Pinger
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i].Close())
		}
	}()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	closers = append(closers, dbClient)

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	blobs, err := newBlobBackend(ctx, cfg, logg)
	if err != nil {
		return err
	}
	if c, ok := blobs.(io.Closer); ok {
		closers = append(closers, c)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	cartMetrics := metrics.NewCartMetrics(reg)

	carts, err := cart.NewService(blobs, cart.Options{KeyPrefix: cfg.Cart.KeyPrefix, TTL: cfg.Cart.TTL}, logg, cartMetrics)
	if err != nil {
		return err
	}
	shopSvc, err := shop.NewService(carts, catalog.NewRepository(dbClient.DB()), logg, cartMetrics)
	if err != nil {
		return err
	}
	viewSvc, err := cartview.NewService(carts, blobs, cfg.Cart.TTL, logg, cartMetrics)
	if err != nil {
		return err
	}
	renderer, err := views.New()
	if err != nil {
		return err
	}

	handler := routes.NewRouter(cfg, logg, routes.Dependencies{
		Shop:     shopSvc,
		CartView: viewSvc,
		Renderer: renderer,
		Ready: map[string]controllers.Pinger{
			"cart_store": blobs,
			"catalog":    dbClient,
		},
		Gatherer: reg,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"instance":     instance.ID(),
		"cart_backend": cfg.Cart.Backend,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newBlobBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (blobBackend, error) {
	if cfg.Cart.UsesMemory() {
		logg.Warn(ctx, "cart backend is in-process memory; carts are lost on restart")
		return memstore.New(), nil
	}
	client, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return nil, err
	}
	return client, nil
}
