package adapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"eventBridge/internal/lib/logger/sl"
	"eventBridge/internal/models"
	"eventBridge/internal/upstream"
)

// GetEventTickets returns the published ticket definitions of an event. An
// event without tickets yields an empty list. The server-side filter is not
// trusted: every definition is re-checked against eventID.
func (a *Adapter) GetEventTickets(ctx context.Context, eventID string) ([]models.TicketDefinition, error) {
	const op = "adapter.GetEventTickets"

	eventID = strings.TrimSpace(eventID)

	log := a.log.With(slog.String("op", op), slog.String("event_id", eventID))

	if eventID == "" {
		return nil, &ValidationError{Errors: []FieldError{{Field: "eventId", Message: "field eventId is a required field"}}}
	}

	q := upstream.Query{
		Filter: upstream.Eq("eventId", eventID, a.opts.FilterForm),
	}

	records, err := a.collect(ctx, a.up.QueryTicketDefinitions, q, a.tickets)
	if err != nil {
		log.Error("failed to query ticket definitions", sl.Err(err))
		return nil, &UnavailableError{Op: op, Message: msgTicketsUnavailable, Err: err}
	}

	defs := make([]models.TicketDefinition, 0, len(records))
	for i, raw := range records {
		var def models.TicketDefinition
		if err := json.Unmarshal(raw, &def); err != nil || def == nil {
			log.Warn("skipping malformed ticket definition", slog.Int("index", i))
			continue
		}
		defs = append(defs, def)
	}

	tickets := lo.Filter(defs, func(def models.TicketDefinition, _ int) bool {
		id, ok := def.EventID()
		return !ok || id == eventID
	})

	if dropped := len(defs) - len(tickets); dropped > 0 {
		log.Warn("upstream returned tickets of other events", slog.Int("dropped", dropped))
	}

	log.Info("tickets fetched", slog.Int("count", len(tickets)))

	return tickets, nil
}
