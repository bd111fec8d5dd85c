// README: Driver profile read model and stored matching preferences.
package driver

import (
	"time"

	"haulmatch/internal/types"
)

const RoleDriver = "driver"

// Driver is the profile slice the matching engine needs. It is owned by the
// identity subsystem and read-only here.
type Driver struct {
	ID   types.ID
	Role string
	Name string
	// Position is the last profile-level coordinate, nil when never reported.
	// Live positions come from the location module and take precedence.
	Position         *types.Point
	VehicleCapacityL float64
	Rating           float64
	CompletedJobs    int
	WorkStart        string
	WorkEnd          string
	CreatedAt        time.Time
}

// StoredCriteria are a driver's persisted matching preferences. Every field
// is optional; unset fields fall back to the documented defaults.
type StoredCriteria struct {
	MaxDistanceKm       *float64
	MinRating           *float64
	VehicleCapacityL    *float64
	PreferredCategories []string
	WorkStart           *string
	WorkEnd             *string
}
