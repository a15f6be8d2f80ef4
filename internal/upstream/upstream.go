// Package upstream describes the managed events service the adapters proxy to.
//
// Each method maps to exactly one upstream call so that contract changes on the
// vendor side stay inside a single implementation.
package upstream

import (
	"context"
	"encoding/json"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Upstream
type Upstream interface {
	QueryEvents(ctx context.Context, q Query) (Envelope, error)
	QueryTicketDefinitions(ctx context.Context, q Query) (Envelope, error)
	CreateReservation(ctx context.Context, eventID string, req ReservationRequest) (json.RawMessage, error)
	CreateRsvp(ctx context.Context, req RsvpRequest) (json.RawMessage, error)
}

// Envelope is the decoded top-level object of a query response.
type Envelope map[string]json.RawMessage

type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

type Sort struct {
	FieldName string `json:"fieldName"`
	Order     Order  `json:"order"`
}

type Paging struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type Query struct {
	Filter Filter `json:"filter,omitempty"`
	Sort   []Sort `json:"sort,omitempty"`
	Paging Paging `json:"paging"`
}

type TicketQuantity struct {
	TicketDefinitionID string `json:"ticketDefinitionId"`
	Quantity           int    `json:"quantity"`
}

type ReservationRequest struct {
	TicketQuantities []TicketQuantity `json:"ticketQuantities"`
}

const RsvpStatusYes = "YES"

// RsvpRequest is the single flat envelope the RSVP endpoint accepts.
type RsvpRequest struct {
	EventID   string `json:"eventId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}
