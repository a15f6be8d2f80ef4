package adapter

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"eventBridge/internal/lib/logger/sl"
	"eventBridge/internal/models"
	"eventBridge/internal/upstream"
)

type reservationInput struct {
	EventID    string                   `json:"eventId" validate:"required"`
	Selections []models.TicketSelection `json:"ticketSelection" validate:"required,min=1,dive"`
}

// CreateReservation reserves the selected tickets. Availability is checked by
// the upstream only. The call is not idempotent and is never retried.
func (a *Adapter) CreateReservation(ctx context.Context, eventID string, selections []models.TicketSelection) (models.Reservation, error) {
	const op = "adapter.CreateReservation"

	in := reservationInput{
		EventID:    strings.TrimSpace(eventID),
		Selections: selections,
	}

	log := a.log.With(slog.String("op", op), slog.String("event_id", in.EventID))

	if err := a.validate.Struct(in); err != nil {
		log.Info("invalid reservation request", sl.Err(err))
		return nil, validationError(err)
	}

	req := upstream.ReservationRequest{
		TicketQuantities: lo.Map(in.Selections, func(s models.TicketSelection, _ int) upstream.TicketQuantity {
			return upstream.TicketQuantity{
				TicketDefinitionID: s.TicketID,
				Quantity:           s.Quantity,
			}
		}),
	}

	res, err := a.up.CreateReservation(ctx, in.EventID, req)
	if err != nil {
		log.Error("failed to create reservation", sl.Err(err), slog.Int("lines", len(req.TicketQuantities)))
		return nil, &ReservationError{Reason: upstream.Reason(err), Err: err}
	}

	log.Info("reservation created", slog.Int("lines", len(req.TicketQuantities)))

	return res, nil
}
