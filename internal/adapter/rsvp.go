package adapter

import (
	"context"
	"log/slog"
	"strings"

	"eventBridge/internal/lib/logger/sl"
	"eventBridge/internal/models"
	"eventBridge/internal/upstream"
)

type rsvpInput struct {
	EventID string              `json:"eventId" validate:"required"`
	Guest   models.GuestDetails `json:"guestDetails"`
}

// CreateRsvp registers a guest for an RSVP event. Guest fields are checked
// before anything is sent. Identical calls are not deduplicated.
func (a *Adapter) CreateRsvp(ctx context.Context, eventID string, guest models.GuestDetails) (models.RsvpRecord, error) {
	const op = "adapter.CreateRsvp"

	in := rsvpInput{
		EventID: strings.TrimSpace(eventID),
		Guest: models.GuestDetails{
			FirstName: strings.TrimSpace(guest.FirstName),
			LastName:  strings.TrimSpace(guest.LastName),
			Email:     strings.TrimSpace(guest.Email),
		},
	}

	log := a.log.With(slog.String("op", op), slog.String("event_id", in.EventID))

	if err := a.validate.Struct(in); err != nil {
		log.Info("invalid rsvp request", sl.Err(err))
		return nil, validationError(err)
	}

	req := upstream.RsvpRequest{
		EventID:   in.EventID,
		FirstName: in.Guest.FirstName,
		LastName:  in.Guest.LastName,
		Email:     in.Guest.Email,
		Status:    upstream.RsvpStatusYes,
	}

	rec, err := a.up.CreateRsvp(ctx, req)
	if err != nil {
		log.Error("failed to create rsvp", sl.Err(err))

		reason := upstream.Reason(err)
		if reason == "" {
			reason = msgUnknownRsvpError
		}

		return nil, &RsvpError{Reason: reason, Err: err}
	}

	log.Info("rsvp created")

	return rec, nil
}
