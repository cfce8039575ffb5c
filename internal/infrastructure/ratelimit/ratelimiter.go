// Package ratelimit throttles login attempts per client address.
package ratelimit

// Windows caps attempts over the two spans the login throttle watches.
// A zero cap disables that window.
type Windows struct {
	PerMinute int
	PerHour   int
}

// Limiter reports whether another attempt under key may proceed.
type Limiter interface {
	Allow(key string) (bool, error)
	Reset(key string) error
}
