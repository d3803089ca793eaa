package importer

import "time"

// Record is the activity-provider adapter's inbound shape,
// shared by both the provider fetch path and manual entry.
type Record struct {
	ActivityID        string
	Source            string // "provider" | "manual"
	ActivityDate      string // YYYY-MM-DD
	StartTime         *time.Time
	SportType         string
	SubType           string
	DurationMinutes   float64
	DistanceKM        *float64
	AverageHR         *int
	MaxHR             *int
	HasGPS            bool
	DeviceName        string
	RelativeEffort    *int
	PerceivedExertion *int
	Name              string
	Description       string
	PrivateNote       string
}
