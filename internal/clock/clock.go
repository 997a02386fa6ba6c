// Package clock abstracts wall time so daily/weekly keying and event expiry
// are testable.
package clock

//go:generate mockgen -destination=mocks/mock_timeprovider.go -package=mockclock -source=clock.go

import "time"

// TimeProvider returns the current time
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

// Now returns the current UTC time
func (realTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// New creates a TimeProvider backed by the system clock
func New() TimeProvider {
	return realTimeProvider{}
}
