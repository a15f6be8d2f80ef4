package createReservation

import (
	"context"
	"encoding/json"
	"eventBridge/internal/http-server/handlers/apierr"
	"eventBridge/internal/lib/api/response"
	"eventBridge/internal/lib/logger/sl"
	"eventBridge/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type ReservationRequest struct {
	TicketSelection []models.TicketSelection `json:"ticketSelection"`
}

type ReservationResponse struct {
	response.Response
	Reservation json.RawMessage `json:"reservation"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ReservationCreator
type ReservationCreator interface {
	CreateReservation(ctx context.Context, eventID string, selections []models.TicketSelection) (models.Reservation, error)
}

func New(log *slog.Logger, creator ReservationCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createReservation.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		var req ReservationRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Int("selections", len(req.TicketSelection)))

		reservation, err := creator.CreateReservation(r.Context(), eventID, req.TicketSelection)
		if err != nil {
			log.Error("failed to create reservation", sl.Err(err))
			render.Status(r, apierr.Status(err))
			render.JSON(w, r, response.Error(apierr.Message(err)))
			return
		}

		log.Info("reservation created successfully")

		responseOK(w, r, reservation)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, reservation json.RawMessage) {
	render.JSON(w, r, ReservationResponse{
		Response:    response.OK(),
		Reservation: reservation,
	})
}
