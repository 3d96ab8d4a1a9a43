package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"powersite-catalog/internal/catalog"
	"powersite-catalog/internal/config"
	"powersite-catalog/internal/database"
	"powersite-catalog/internal/handlers"
	"powersite-catalog/internal/logger"
	"powersite-catalog/internal/middleware"
	"powersite-catalog/internal/repository"
	"powersite-catalog/internal/routes"
	"powersite-catalog/internal/search"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Env:    cfg.Env,
	})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := connect(ctx, cfg, log)
	if client != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}()
	}

	stores, engine := buildStores(ctx, cfg, client, log)
	svc := catalog.New(stores, log)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Timeout(cfg.RequestTimeout),
	)
	routes.RegisterRoutes(router, handlers.NewCatalogHandler(svc, log))

	srv := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if engine != nil && cfg.ElasticsearchSyncInterval > 0 {
		src := stores.Products.(search.ProductSource)
		g.Go(func() error {
			return engine.Watch(gctx, src, cfg.ElasticsearchSyncInterval)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		// dejar que terminen las peticiones en curso
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// connect devuelve nil si la base de datos no está disponible; el servicio arranca igualmente
func connect(ctx context.Context, cfg *config.Config, log *slog.Logger) *mongo.Client {
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Warn("database unavailable, serving degraded responses", "err", err)
		return nil
	}
	log.Info("connected to mongo", "db", cfg.MongoDB)
	return client
}

// buildStores devuelve también el motor de Elasticsearch cuando está activo
func buildStores(ctx context.Context, cfg *config.Config, client *mongo.Client, log *slog.Logger) (catalog.Stores, *search.Elastic) {
	if client == nil {
		return catalog.Stores{}, nil
	}

	db := client.Database(cfg.MongoDB)
	repos := repository.New(db, repository.SubstringMatcher{})

	stores := catalog.Stores{
		Products:   repos.Products,
		Search:     repos.Products,
		Brands:     repos.Brands,
		Categories: repos.Categories,
		Reviews:    repos.Reviews,
		Spares:     repos.Spares,
		Orders:     repos.Orders,
		DB:         database.NewStore(db),
	}

	if cfg.SearchBackend != config.SearchElasticsearch {
		return stores, nil
	}

	engine, err := elasticEngine(ctx, cfg, repos.Products, log)
	if err != nil {
		log.Warn("elasticsearch unavailable, using mongo search", "err", err)
		return stores, nil
	}
	stores.Search = engine
	return stores, engine
}

func elasticEngine(ctx context.Context, cfg *config.Config, src search.ProductSource, log *slog.Logger) (*search.Elastic, error) {
	engine, err := search.Open(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	n, err := engine.Sync(ctx, src)
	if err != nil {
		return nil, err
	}
	log.Info("search index synced", "index", cfg.ElasticsearchIndex, "products", n)
	return engine, nil
}
