package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultMinBookingDuration = 30 * time.Minute
	DefaultMaxBookingDuration = 240 * time.Minute
	DefaultChangeCutoff       = 60 * time.Minute
	DefaultSweepInterval      = 1 * time.Minute

	DefaultNotificationsEnabled = false
	DefaultReservationTopic     = "reservation-events"
	DefaultReservationDLQTopic  = "dlq-reservations"

	MaxPaginationLimit = 100
)
