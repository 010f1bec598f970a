package config

const (
	EnvMongoURI             = "MONGO_URI"
	EnvLegacyMongoURI       = "MongoURI"
	EnvMongoDatabaseName    = "MONGO_DATABASE_NAME"
	EnvMongoCollectionName  = "MONGO_COLLECTION_NAME"
	EnvMongoConnTimeout     = "MONGO_CONN_TIMEOUT"
	EnvMongoUseTransactions = "MONGO_USE_TRANSACTIONS"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvBookingBufferMinutes = "BOOKING_BUFFER_MINUTES"
	EnvBookingLockTTL       = "BOOKING_LOCK_TTL"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
