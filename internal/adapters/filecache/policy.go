package filecache

import "time"

// Policy decides whether an entry written at storedAt is still valid at now
type Policy interface {
	Valid(storedAt, now time.Time) bool
}

// NoExpiry keeps entries forever
type NoExpiry struct{}

func (NoExpiry) Valid(time.Time, time.Time) bool {
	return true
}

// TTL keeps entries while now - storedAt < the duration
type TTL time.Duration

func (t TTL) Valid(storedAt, now time.Time) bool {
	return now.Sub(storedAt) < time.Duration(t)
}
