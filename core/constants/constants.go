package constants

import "time"

// Request handling
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultTimeout        = 10 * time.Second
)

// Database settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "token:blacklist:"
)

// OAuth
const (
	OAuthStateTTL = 10 * time.Minute
)

// Background tasks
const (
	TaskDestinationStatusSweep = "destination:status_sweep"
)

// Wire formats for scheduled date and time columns.
const (
	ScheduledDateLayout = "2006-01-02"
	ScheduledTimeLayout = "15:04:05"
)
