package server

import "time"

// Timeouts
const (
	ReadHeaderTimeout = 5 * time.Second
	WriteTimeout      = 15 * time.Minute // crawlers on slow links resume via Range
	IdleTimeout       = 5 * time.Minute
	ShutdownTimeout   = 30 * time.Second
)

// TCP tuning
const (
	TCPKeepAlivePeriod = 3 * time.Minute
)

// Compression
const (
	// GzipMinSize is the smallest file worth compressing
	GzipMinSize = 1024
)

// Rate limiting
const (
	RateLimiterCleanupInterval = 30 * time.Minute
	StaleRateLimiterThreshold  = 1 * time.Hour
)
