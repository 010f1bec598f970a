package model

import "time"

// BookingLock serializes booking creation for one resource on one date.
// The document is removed when the holder finishes and expires on its own
// through a TTL index if the holder dies.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	Resource  string    `bson:"resource" json:"resource"`
	Date      string    `bson:"date" json:"date"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
