package service

import "time"

type LookupSource string

const (
	SourceCache LookupSource = "cache"
	SourceDB    LookupSource = "db"
)

// LookupStats describes where an order projection came from.
type LookupStats struct {
	Source  LookupSource
	CacheMs float64
	DBMs    float64
}

// WriteStats times a local change: the order store call-out and the
// projection write. Pending is set when the store was not notified.
type WriteStats struct {
	NotifyMs  float64
	DBWriteMs float64
	Pending   bool
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
