package createRsvp

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

type RsvpResponse struct {
	response.Response
	Rsvp json.RawMessage `json:"rsvp"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RsvpCreator
type RsvpCreator interface {
	CreateRsvp(ctx context.Context, eventID string, guest models.GuestDetails) (models.RsvpRecord, error)
}

func New(log *slog.Logger, creator RsvpCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createRsvp.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		var guest models.GuestDetails

		err := render.DecodeJSON(r.Body, &guest)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		rsvp, err := creator.CreateRsvp(r.Context(), eventID, guest)
		if err != nil {
			log.Error("failed to create rsvp", sl.Err(err))
			render.Status(r, apierr.Status(err))
			render.JSON(w, r, response.Error(apierr.Message(err)))
			return
		}

		log.Info("rsvp created successfully")

		responseOK(w, r, rsvp)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, rsvp json.RawMessage) {
	render.JSON(w, r, RsvpResponse{
		Response: response.OK(),
		Rsvp:     rsvp,
	})
}
