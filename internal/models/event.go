package models

import "encoding/json"

type RegistrationType string

const (
	RegistrationRSVP      RegistrationType = "RSVP"
	RegistrationTicketing RegistrationType = "TICKETING"
)

const (
	StatusScheduled = "SCHEDULED"
	DefaultLocation = "Online"
)

// Event is the frontend-facing shape of an upstream event record.
type Event struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Start            string           `json:"start,omitempty"`
	End              string           `json:"end,omitempty"`
	Location         string           `json:"location"`
	Slug             string           `json:"slug"`
	RegistrationType RegistrationType `json:"registrationType"`
	MainImage        json.RawMessage  `json:"mainImage,omitempty"`
	Status           string           `json:"status"`
}
