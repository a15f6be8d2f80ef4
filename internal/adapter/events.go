package adapter

import (
	"context"
	"log/slog"

	"eventBridge/internal/lib/logger/sl"
	"eventBridge/internal/models"
	"eventBridge/internal/upstream"
)

const eventStartField = "scheduling.startDate"

// ListUpcomingEvents returns scheduled events, latest start first. Only a
// failed query is an error; incomplete records are filled with defaults.
func (a *Adapter) ListUpcomingEvents(ctx context.Context) ([]models.Event, error) {
	const op = "adapter.ListUpcomingEvents"

	log := a.log.With(slog.String("op", op))

	q := upstream.Query{
		Filter: upstream.Eq("status", models.StatusScheduled, a.opts.FilterForm),
		Sort:   []upstream.Sort{{FieldName: eventStartField, Order: upstream.OrderDesc}},
	}

	records, err := a.collect(ctx, a.up.QueryEvents, q, a.events)
	if err != nil {
		log.Error("failed to query events", sl.Err(err))
		return nil, &UnavailableError{Op: op, Message: msgEventsUnavailable, Err: err}
	}

	events := make([]models.Event, 0, len(records))
	for i, raw := range records {
		ev, err := normalizeEvent(raw)
		if err != nil {
			log.Warn("skipping malformed event record", slog.Int("index", i), sl.Err(err))
			continue
		}

		// the status filter is re-checked locally
		if ev.Status != models.StatusScheduled {
			log.Debug("skipping event outside filter", slog.String("event_id", ev.ID), slog.String("status", ev.Status))
			continue
		}

		events = append(events, ev)
	}

	log.Info("events listed", slog.Int("count", len(events)))

	return events, nil
}
