package models

import "encoding/json"

// TicketDefinition is owned by the upstream service and passed through field
// for field.
type TicketDefinition map[string]json.RawMessage

// EventID returns the definition's own eventId attribute, if it has one.
func (t TicketDefinition) EventID() (string, bool) {
	raw, ok := t["eventId"]
	if !ok {
		return "", false
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", false
	}

	return id, true
}

type TicketSelection struct {
	TicketID string `json:"ticketId" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}
