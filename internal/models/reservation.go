package models

import "encoding/json"

type GuestDetails struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// Reservation and RsvpRecord are upstream results returned verbatim.
type (
	Reservation = json.RawMessage
	RsvpRecord  = json.RawMessage
)
