package model

import (
	"strconv"
	"time"
)

const keyPrefix = "otp"

// Subject identifies what a one-time code unlocks: one action on one booking.
type Subject struct {
	BookingID int64
	Action    string
}

func (s Subject) Key() string {
	return keyPrefix + ":" + strconv.FormatInt(s.BookingID, 10) + ":" + s.Action
}

// Recipient is the customer who receives the code and reads it out to the artist.
type Recipient struct {
	Name    string
	Email   string
	PhoneNo string
}

type Challenge struct {
	ExpiresAt   time.Time `json:"expires_at"`
	Length      int       `json:"length"`
	MaxAttempts int       `json:"max_attempts"`
}

const (
	FieldHash     = "hash"
	FieldAttempts = "attempts"
)
