package getTickets

import (
	"context"
	"eventBridge/internal/http-server/handlers/apierr"
	"eventBridge/internal/lib/api/response"
	"eventBridge/internal/lib/logger/sl"
	"eventBridge/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type TicketsResponse struct {
	response.Response
	EventID string                    `json:"eventId"`
	Tickets []models.TicketDefinition `json:"tickets"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketsGetter
type TicketsGetter interface {
	GetEventTickets(ctx context.Context, eventID string) ([]models.TicketDefinition, error)
}

func New(log *slog.Logger, getter TicketsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getTickets.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		tickets, err := getter.GetEventTickets(r.Context(), eventID)
		if err != nil {
			log.Error("failed to get tickets", sl.Err(err))
			render.Status(r, apierr.Status(err))
			render.JSON(w, r, response.Error(apierr.Message(err)))
			return
		}

		log.Info("tickets retrieved successfully", slog.Int("count", len(tickets)))

		responseOK(w, r, eventID, tickets)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, eventID string, tickets []models.TicketDefinition) {
	if tickets == nil {
		tickets = []models.TicketDefinition{}
	}

	render.JSON(w, r, TicketsResponse{
		Response: response.OK(),
		EventID:  eventID,
		Tickets:  tickets,
	})
}
