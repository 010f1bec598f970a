package model

import "time"

type Booking struct {
	ID          string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Date        string    `json:"date" bson:"date"`
	Resource    string    `json:"resource" bson:"resource"`
	TimeFrom    string    `json:"timeFrom" bson:"timeFrom"`
	TimeTo      string    `json:"timeTo" bson:"timeTo"`
	RequestedBy string    `json:"requestedBy,omitempty" bson:"requestedBy,omitempty"`
	BufferFrom  string    `json:"bufferFrom" bson:"bufferFrom"`
	BufferTo    string    `json:"bufferTo" bson:"bufferTo"`
	CreatedAt   time.Time `json:"createdAt,omitzero" bson:"createdAt,omitempty"`
}

// BookingRequest is the client payload for POST /bookings.
type BookingRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Resource    string `json:"resource" validate:"required,max=200"`
	TimeFrom    string `json:"timeFrom" validate:"required,clock"`
	TimeTo      string `json:"timeTo" validate:"required,clock"`
	RequestedBy string `json:"requestedBy,omitempty" validate:"omitempty,max=200"`
}

// BookingFilter narrows GET /bookings. Empty fields match everything.
type BookingFilter struct {
	Resource string
	Date     string
}

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
