package constants

// Wire formats for the naive local date and clock values the
// reservation system works with.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Default working-day window
const (
	DefaultWorkdayStart = "09:00"
	DefaultWorkdayEnd   = "17:00"
)

// Database pool defaults
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Echo context / header keys
const (
	HeaderRequestID = "X-Request-ID"
)

// MonthViewTTLSeconds bounds staleness of the cached month projection
// in case an invalidation is lost.
const MonthViewTTLSeconds = 300
