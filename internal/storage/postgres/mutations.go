package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eventBridge/internal/models"
	"eventBridge/internal/upstream"
)

const (
	opCreateReservation = "create_reservation"
	opCreateRsvp        = "create_rsvp"

	reservationPending = "PENDING"

	pqUniqueViolation = "23505"
)

type reservationRecord struct {
	ID               string                    `json:"id"`
	EventID          string                    `json:"eventId"`
	Status           string                    `json:"status"`
	Expires          string                    `json:"expires"`
	TicketQuantities []upstream.TicketQuantity `json:"ticketQuantities"`
}

type rsvpRecord struct {
	ID        string `json:"id"`
	EventID   string `json:"eventId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	Created   string `json:"created"`
}

// mergeQuantities folds repeated ticket ids into one line, keeping first-seen order.
func mergeQuantities(items []upstream.TicketQuantity) []upstream.TicketQuantity {
	idx := make(map[string]int, len(items))
	merged := make([]upstream.TicketQuantity, 0, len(items))

	for _, it := range items {
		if i, ok := idx[it.TicketDefinitionID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		idx[it.TicketDefinitionID] = len(merged)
		merged = append(merged, it)
	}

	return merged
}

// lockOrder returns the items sorted by ticket id so that concurrent
// reservations take row locks in the same order.
func lockOrder(items []upstream.TicketQuantity) []upstream.TicketQuantity {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b upstream.TicketQuantity) int {
		return strings.Compare(a.TicketDefinitionID, b.TicketDefinitionID)
	})

	return sorted
}

func (s *Storage) registrationType(ctx context.Context, tx *sql.Tx, op, eventID string) (models.RegistrationType, error) {
	var regType sql.NullString

	err := tx.QueryRowContext(ctx, `SELECT registration_type FROM events WHERE id = $1`, eventID).Scan(&regType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &upstream.Error{Op: op, StatusCode: http.StatusNotFound, Message: "event not found"}
	}
	if err != nil {
		return "", fmt.Errorf("failed to get event: %w", err)
	}

	if models.RegistrationType(regType.String) == models.RegistrationTicketing {
		return models.RegistrationTicketing, nil
	}

	return models.RegistrationRSVP, nil
}

func (s *Storage) CreateReservation(ctx context.Context, eventID string, req upstream.ReservationRequest) (json.RawMessage, error) {
	items := mergeQuantities(req.TicketQuantities)
	if len(items) == 0 {
		return nil, badRequest(opCreateReservation, "at least one ticket quantity is required")
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, badRequest(opCreateReservation, "quantity for %s must be positive", it.TicketDefinitionID)
		}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	regType, err := s.registrationType(ctx, tx, opCreateReservation, eventID)
	if err != nil {
		return nil, err
	}
	if regType != models.RegistrationTicketing {
		return nil, badRequest(opCreateReservation, "event does not sell tickets")
	}

	now := s.now().UTC()

	for _, it := range lockOrder(items) {
		var capacity int
		err := tx.QueryRowContext(ctx, `
			SELECT capacity FROM ticket_definitions
			WHERE id = $1 AND event_id = $2
			FOR UPDATE`,
			it.TicketDefinitionID, eventID,
		).Scan(&capacity)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, badRequest(opCreateReservation, "invalid ticket definition id: %s", it.TicketDefinitionID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get ticket definition: %w", err)
		}

		var reserved int
		err = tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(ri.quantity), 0)
			FROM reservation_items ri
			JOIN reservations r ON r.id = ri.reservation_id
			WHERE ri.ticket_definition_id = $1 AND r.expires_at > $2`,
			it.TicketDefinitionID, now,
		).Scan(&reserved)
		if err != nil {
			return nil, fmt.Errorf("failed to count reserved tickets: %w", err)
		}

		if reserved+it.Quantity > capacity {
			return nil, &upstream.Error{
				Op:         opCreateReservation,
				StatusCode: http.StatusConflict,
				Code:       "TICKET_SOLD_OUT",
				Message:    fmt.Sprintf("not enough tickets available for %s", it.TicketDefinitionID),
			}
		}
	}

	rec := reservationRecord{
		ID:               uuid.NewString(),
		EventID:          eventID,
		Status:           reservationPending,
		Expires:          now.Add(s.hold).Format(time.RFC3339),
		TicketQuantities: items,
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reservations (id, event_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`,
		rec.ID, eventID, now, now.Add(s.hold),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	for _, it := range items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO reservation_items (reservation_id, ticket_definition_id, quantity) VALUES ($1, $2, $3)`,
			rec.ID, it.TicketDefinitionID, it.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create reservation item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return json.Marshal(rec)
}

func (s *Storage) CreateRsvp(ctx context.Context, req upstream.RsvpRequest) (json.RawMessage, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	regType, err := s.registrationType(ctx, tx, opCreateRsvp, req.EventID)
	if err != nil {
		return nil, err
	}
	if regType != models.RegistrationRSVP {
		return nil, badRequest(opCreateRsvp, "event does not accept RSVPs")
	}

	status := req.Status
	if status == "" {
		status = upstream.RsvpStatusYes
	}

	rec := rsvpRecord{
		ID:        uuid.NewString(),
		EventID:   req.EventID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Status:    status,
	}
	created := s.now().UTC()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rsvps (id, event_id, first_name, last_name, email, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.EventID, rec.FirstName, rec.LastName, rec.Email, rec.Status, created,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, &upstream.Error{
				Op:         opCreateRsvp,
				StatusCode: http.StatusConflict,
				Code:       "GUEST_ALREADY_REGISTERED",
				Message:    "guest already registered",
			}
		}
		return nil, fmt.Errorf("failed to create rsvp: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	rec.Created = created.Format(time.RFC3339)

	return json.Marshal(rec)
}
