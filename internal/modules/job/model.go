// README: Haulage job record and status definitions.
package job

import (
	"time"

	"haulmatch/internal/types"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusClaimed    Status = "claimed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Job is a waste-collection job as published by a supplier. The matching
// engine reads jobs but never mutates them; lifecycle transitions belong to
// the job subsystem.
type Job struct {
	ID         types.ID
	SupplierID types.ID
	Category   string
	// VolumeL is the required vehicle volume in litres. Zero means the
	// supplier did not declare a volume.
	VolumeL float64
	// Pickup and Dropoff may be nil when the supplier has not geocoded the
	// addresses yet.
	Pickup  *types.Point
	Dropoff *types.Point
	Urgent  bool
	Price   types.Money
	// QualityGrade and Contaminated are declared by the supplier and carried
	// through to transfer documentation; matching treats them as opaque.
	QualityGrade string
	Contaminated bool
	Status       Status
	CreatedAt    time.Time
	CompletedAt  *time.Time
}
