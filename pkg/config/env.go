package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMinBookingDuration = "MIN_BOOKING_DURATION"
	EnvMaxBookingDuration = "MAX_BOOKING_DURATION"
	EnvChangeCutoff       = "CHANGE_CUTOFF"
	EnvSweepInterval      = "SWEEP_INTERVAL"

	EnvNotificationsEnabled = "NOTIFICATIONS_ENABLED"
	EnvReservationTopic     = "RESERVATION_TOPIC"
	EnvReservationDLQTopic  = "RESERVATION_DLQ_TOPIC"
)
