package kafka_config

import "time"

const (
	// Empty disables publishing.
	DefaultKafkaBrokers = ""

	DefaultBookingTopic    = "booking-events"
	DefaultBookingDLQTopic = ""

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false
	DefaultPublishTimeout       = 5 * time.Second

	DefaultEnableMiddleware = true
)
