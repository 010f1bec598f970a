package config

import "time"

const (
	DefaultMongoURI             = "mongodb://localhost:27017"
	DefaultMongoDatabaseName    = "resource_db"
	DefaultMongoCollectionName  = "resource"
	DefaultMongoConnTimeout     = 10 * time.Second
	DefaultMongoUseTransactions = false

	DefaultPort      = "5000"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultBookingBufferMinutes = 10
	MaxBookingBufferMinutes     = 12 * 60
	DefaultBookingLockTTL       = 30 * time.Second

	DefaultCORSAllowedOrigins = "*"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 10 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
