package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/geo"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/metrics"
	pgdb "route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/publisher"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres/Redis caches, Nominatim,
// OSRM, NATS) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Local SQLite database backs the optimization history and the
	// default cache tier.
	sqliteDB, err := openSqlite(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatal(err)
	}

	var mcol *metrics.Collector
	if cfg.MetricsAddr != "" {
		mcol = metrics.NewCollector()
		srv := mcol.Serve(cfg.MetricsAddr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	geocodeCache, costCache, cleanup, err := buildCaches(cfg, sqliteDB)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	// Geocode/cost collaborators share the cache tier to stay inside the
	// public Nominatim/OSRM usage policies.
	geocoder, err := geo.NewNominatimGeocoder(
		cfg.NominatimBaseURL,
		cfg.NominatimUserAgent,
		cfg.CollaboratorTimeout,
		geocodeCache,
		wrapClientMetrics(mcol),
	)
	if err != nil {
		log.Fatal(err)
	}

	osrm, err := geo.NewOSRMClient(cfg.OSRMBaseURL, cfg.CollaboratorTimeout, costCache, wrapClientMetrics(mcol))
	if err != nil {
		log.Fatal(err)
	}

	var events *publisher.NATSPublisher
	if cfg.NATSURL != "" {
		events, err = publisher.NewNATSPublisher(cfg.NATSURL, wrapPublisherMetrics(mcol))
		if err != nil {
			log.Fatalf("nats error: %v", err)
		}
		defer events.Close()
	}

	repo := repositories.NewSqliteHistoryRepository(sqliteDB)

	router := api.NewRouter(api.RouterDeps{
		Geocoder:        geocoder,
		Coster:          osrm,
		Geometer:        osrm,
		Repo:            repo,
		Events:          events,
		Metrics:         mcol,
		PairConcurrency: cfg.PairConcurrency,
		SolverWorkers:   cfg.SolverWorkers,
		HistoryLimit:    cfg.HistoryLimit,
	})

	// Timeouts are tuned for cold-cache optimization requests (external
	// API latency dominates; the solver itself is milliseconds).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	log.Println("shutdown complete")
}

func openSqlite(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

// buildCaches picks the cache tier: Redis when configured, a shared
// Postgres when configured, the local SQLite file otherwise.
func buildCaches(cfg *config.Config, sqliteDB *sql.DB) (geo.GeocodeCache, geo.CostCache, func(), error) {
	noop := func() {}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		log.Printf("cache backend=redis addr=%s", cfg.RedisAddr)
		return cache.NewRedisGeocodeCache(client, 0),
			cache.NewRedisCostCache(client, 7*24*time.Hour),
			func() { _ = client.Close() },
			nil
	}

	if cfg.DatabaseURL != "" {
		pg, err := pgdb.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, noop, err
		}
		if err := repositories.InitSchema(pg); err != nil {
			pg.Close()
			return nil, nil, noop, err
		}
		log.Printf("cache backend=postgres")
		return cache.NewSQLGeocodeCache(pg),
			cache.NewSQLCostCache(pg),
			func() { pg.Close() },
			nil
	}

	log.Printf("cache backend=sqlite path=%s", cfg.DBPath)
	return cache.NewSqliteGeocodeCache(sqliteDB), cache.NewSqliteCostCache(sqliteDB), noop, nil
}

// wrapClientMetrics adapts the Collector to the geo.ClientMetrics interface.
func wrapClientMetrics(c *metrics.Collector) geo.ClientMetrics {
	if c == nil {
		return nil
	}
	return &clientMetrics{c: c}
}

type clientMetrics struct{ c *metrics.Collector }

func (m *clientMetrics) GeocodeInc()            { m.c.GeocodeRequests.Inc() }
func (m *clientMetrics) GeocodeErrInc()         { m.c.GeocodeErrors.Inc() }
func (m *clientMetrics) PairwiseInc()           { m.c.PairwiseRequests.Inc() }
func (m *clientMetrics) PairwiseErrInc()        { m.c.PairwiseErrors.Inc() }
func (m *clientMetrics) CacheHit(cache string)  { m.c.CacheHits.WithLabelValues(cache).Inc() }
func (m *clientMetrics) CacheMiss(cache string) { m.c.CacheMisses.WithLabelValues(cache).Inc() }

// wrapPublisherMetrics adapts the Collector to the publisher.PublisherMetrics interface.
func wrapPublisherMetrics(c *metrics.Collector) publisher.PublisherMetrics {
	if c == nil {
		return nil
	}
	return &pubMetrics{c: c}
}

type pubMetrics struct{ c *metrics.Collector }

func (p *pubMetrics) PublishedInc()  { p.c.EventsPublished.Inc() }
func (p *pubMetrics) PublishErrInc() { p.c.EventPublishErrs.Inc() }
func (p *pubMetrics) SetConnected(b bool) {
	if b {
		p.c.PublisherConnected.Set(1)
	} else {
		p.c.PublisherConnected.Set(0)
	}
}
