// README: Entry point; loads config, wires stores and services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"haulmatch/internal/ai"
	"haulmatch/internal/config"
	httptransport "haulmatch/internal/http"
	"haulmatch/internal/infra"
	"haulmatch/internal/maps"
	"haulmatch/internal/modules/driver"
	"haulmatch/internal/modules/job"
	"haulmatch/internal/modules/location"
	"haulmatch/internal/modules/matching"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	// The routing service is optional; without a key the resolver is pure
	// haversine.
	var routes location.RouteEstimator
	if cfg.Maps.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Printf("maps client init failed, distances fall back to haversine: %v", err)
		} else {
			routes = routeSvc
		}
	}
	resolver := location.NewResolver(routes, cfg.Matching.RouteTimeout)

	// The inference service is optional; without a key assisted mode falls
	// back to the deterministic scorer.
	var ranker ai.JobRanker
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiRanker(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Printf("gemini init failed, assisted mode disabled: %v", err)
		} else {
			defer gemini.Close()
			ranker = gemini
		}
	}

	jobStore := job.NewStore(dbPool)
	driverStore := driver.NewStore(dbPool)

	locationStore := location.NewStore(dbPool, redisClient)
	locationSvc := location.NewService(locationStore)

	matchingSvc := matching.NewService(matching.ServiceDeps{
		Jobs:      jobStore,
		Drivers:   driverStore,
		Positions: locationSvc,
		Criteria:  matching.NewCriteriaRepo(driverStore, cfg.Matching),
		Distance:  resolver,
		Ranker:    ranker,
	}, cfg.Matching)

	handler := httptransport.NewRouter(matchingSvc, locationSvc)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
