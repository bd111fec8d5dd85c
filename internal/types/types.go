// README: Shared value types used across modules.
package types

// ID identifies drivers, jobs, and other marketplace entities.
type ID string

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Money is an integer amount in the smallest unit of the given currency.
type Money struct {
	Amount   int64
	Currency string
}
