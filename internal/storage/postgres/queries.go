package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"eventBridge/internal/upstream"
)

const (
	opQueryEvents  = "query_events"
	opQueryTickets = "query_ticket_definitions"

	defaultLimit = 50
)

var _ upstream.Upstream = (*Storage)(nil)

var sortColumns = map[string]string{
	"scheduling.startDate": "start_date",
	"scheduling.endDate":   "end_date",
	"title":                "title",
}

type eventRecord struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	Slug         string              `json:"slug"`
	Status       string              `json:"status"`
	MainImage    string              `json:"mainImage,omitempty"`
	Scheduling   *schedulingRecord   `json:"scheduling,omitempty"`
	Registration *registrationRecord `json:"registration,omitempty"`
	Location     *locationRecord     `json:"location,omitempty"`
}

type schedulingRecord struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

type registrationRecord struct {
	Type string `json:"type"`
}

type locationRecord struct {
	Name string `json:"name"`
}

type price struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type ticketRecord struct {
	ID        string `json:"id"`
	EventID   string `json:"eventId"`
	Name      string `json:"name"`
	Price     price  `json:"price"`
	Capacity  int    `json:"capacity"`
	Available int    `json:"available"`
}

type pagingMetadata struct {
	Count   int  `json:"count"`
	Offset  int  `json:"offset"`
	HasNext bool `json:"hasNext"`
}

func badRequest(op, format string, args ...any) *upstream.Error {
	return &upstream.Error{Op: op, StatusCode: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// checkFilter accepts only equality predicates on the allowed fields.
func checkFilter(op string, f upstream.Filter, allowed ...string) (map[string]string, error) {
	out := make(map[string]string, len(f))

	for field := range f {
		known := false
		for _, a := range allowed {
			if a == field {
				known = true
				break
			}
		}
		if !known {
			return nil, badRequest(op, "filtering on %q is not supported", field)
		}

		v, _, err := f.EqString(field)
		if err != nil {
			return nil, badRequest(op, "%s", err.Error())
		}
		out[field] = v
	}

	return out, nil
}

func orderClause(op string, sorts []upstream.Sort) (string, error) {
	if len(sorts) == 0 {
		return "ORDER BY start_date DESC NULLS LAST, id", nil
	}

	parts := make([]string, 0, len(sorts)+1)
	for _, srt := range sorts {
		col, ok := sortColumns[srt.FieldName]
		if !ok {
			return "", badRequest(op, "sorting on %q is not supported", srt.FieldName)
		}

		switch srt.Order {
		case upstream.OrderDesc:
			parts = append(parts, col+" DESC NULLS LAST")
		case upstream.OrderAsc, "":
			parts = append(parts, col+" ASC NULLS LAST")
		default:
			return "", badRequest(op, "unknown sort order %q", srt.Order)
		}
	}
	parts = append(parts, "id")

	return "ORDER BY " + strings.Join(parts, ", "), nil
}

func paging(p upstream.Paging) (limit, offset int) {
	limit = p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset = p.Offset
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

func buildEventsQuery(q upstream.Query) (string, []any, error) {
	filter, err := checkFilter(opQueryEvents, q.Filter, "status")
	if err != nil {
		return "", nil, err
	}

	order, err := orderClause(opQueryEvents, q.Sort)
	if err != nil {
		return "", nil, err
	}

	limit, offset := paging(q.Paging)

	query := `
		SELECT id, title, description, slug, status, start_date, end_date,
		       location_name, registration_type, main_image
		FROM events`
	args := make([]any, 0, 3)

	if status, ok := filter["status"]; ok {
		args = append(args, status)
		query += fmt.Sprintf("\n\t\tWHERE status = $%d", len(args))
	}

	// one extra row tells whether another page exists
	args = append(args, limit+1, offset)
	query += fmt.Sprintf("\n\t\t%s\n\t\tLIMIT $%d OFFSET $%d", order, len(args)-1, len(args))

	return query, args, nil
}

func (s *Storage) QueryEvents(ctx context.Context, q upstream.Query) (upstream.Envelope, error) {
	query, args, err := buildEventsQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []eventRecord
	for rows.Next() {
		var (
			rec                                       eventRecord
			description, location, regType, mainImage sql.NullString
			start, end                                sql.NullTime
		)

		err := rows.Scan(
			&rec.ID,
			&rec.Title,
			&description,
			&rec.Slug,
			&rec.Status,
			&start,
			&end,
			&location,
			&regType,
			&mainImage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		rec.Description = description.String
		rec.MainImage = mainImage.String
		if start.Valid || end.Valid {
			rec.Scheduling = &schedulingRecord{StartDate: formatTime(start), EndDate: formatTime(end)}
		}
		if regType.Valid {
			rec.Registration = &registrationRecord{Type: regType.String}
		}
		if location.Valid {
			rec.Location = &locationRecord{Name: location.String}
		}

		events = append(events, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	limit, offset := paging(q.Paging)
	hasNext := len(events) > limit
	if hasNext {
		events = events[:limit]
	}

	return envelopeOf("events", events, pagingMetadata{Count: len(events), Offset: offset, HasNext: hasNext})
}

func (s *Storage) QueryTicketDefinitions(ctx context.Context, q upstream.Query) (upstream.Envelope, error) {
	filter, err := checkFilter(opQueryTickets, q.Filter, "eventId")
	if err != nil {
		return nil, err
	}

	limit, offset := paging(q.Paging)

	query := `
		SELECT t.id, t.event_id, t.name, t.price::TEXT, t.currency, t.capacity,
		       t.capacity - COALESCE((
		           SELECT SUM(ri.quantity)
		           FROM reservation_items ri
		           JOIN reservations r ON r.id = ri.reservation_id
		           WHERE ri.ticket_definition_id = t.id AND r.expires_at > $1
		       ), 0)
		FROM ticket_definitions t`
	args := []any{s.now().UTC()}

	if eventID, ok := filter["eventId"]; ok {
		args = append(args, eventID)
		query += fmt.Sprintf("\n\t\tWHERE t.event_id = $%d", len(args))
	}

	args = append(args, limit+1, offset)
	query += fmt.Sprintf("\n\t\tORDER BY t.price, t.id\n\t\tLIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket definitions: %w", err)
	}
	defer rows.Close()

	var tickets []ticketRecord
	for rows.Next() {
		var rec ticketRecord
		err := rows.Scan(
			&rec.ID,
			&rec.EventID,
			&rec.Name,
			&rec.Price.Amount,
			&rec.Price.Currency,
			&rec.Capacity,
			&rec.Available,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket definition: %w", err)
		}
		tickets = append(tickets, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket definitions: %w", err)
	}

	hasNext := len(tickets) > limit
	if hasNext {
		tickets = tickets[:limit]
	}

	return envelopeOf("ticketDefinitions", tickets, pagingMetadata{Count: len(tickets), Offset: offset, HasNext: hasNext})
}

func envelopeOf[T any](field string, items []T, meta pagingMetadata) (upstream.Envelope, error) {
	if items == nil {
		items = []T{}
	}

	list, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	m, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	return upstream.Envelope{field: list, "pagingMetadata": m}, nil
}

func formatTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return t.Time.UTC().Format(time.RFC3339)
}
