// README: Distance resolver; prefers the routing service, falls back to haversine.
package location

import (
	"context"
	"log"
	"time"

	"haulmatch/internal/types"
)

// RouteEstimator is the routing-service dependency. internal/maps satisfies
// it; tests substitute stubs.
type RouteEstimator interface {
	RouteDistanceKm(ctx context.Context, origin, destination types.Point) (float64, error)
}

// Resolver computes point-to-point distances. The routing service is
// optional: when it is absent, errors, or exceeds the timeout, the resolver
// answers with the great-circle distance instead. DistanceKm therefore never
// fails and never blocks past the configured timeout.
type Resolver struct {
	routes  RouteEstimator
	timeout time.Duration
}

func NewResolver(routes RouteEstimator, timeout time.Duration) *Resolver {
	return &Resolver{routes: routes, timeout: timeout}
}

func (r *Resolver) DistanceKm(ctx context.Context, a, b types.Point) float64 {
	if r.routes == nil {
		return HaversineKm(a, b)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	km, err := r.routes.RouteDistanceKm(callCtx, a, b)
	if err != nil || km < 0 {
		log.Printf("route distance unavailable, using haversine: %v", err)
		return HaversineKm(a, b)
	}
	return km
}
