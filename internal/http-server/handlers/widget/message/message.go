package message

import (
	"eventBridge/internal/lib/logger/sl"
	"eventBridge/internal/relay"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"io"
	"log/slog"
	"net/http"
)

const maxMessageSize = 1 << 20

// New relays a single widget message per request. Every request gets a
// fresh page, so READY always reflects the current upstream list.
func New(log *slog.Logger, adapter relay.Adapter, eventPagePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.widget.message.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		data, err := io.ReadAll(io.LimitReader(r.Body, maxMessageSize))
		if err != nil {
			log.Error("failed to read request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, relay.Reply{Type: relay.TypeError, Payload: "failed to read message"})
			return
		}

		page := relay.NewPage(log, adapter, eventPagePath)
		reply := page.HandleRaw(r.Context(), data)

		log.Info("widget message relayed", slog.String("reply", reply.Type))

		render.JSON(w, r, reply)
	}
}
