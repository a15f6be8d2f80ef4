package socket

import (
	"encoding/json"
	"errors"
	"eventBridge/internal/lib/logger/sl"
	"eventBridge/internal/relay"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// New serves one widget page per WebSocket connection. Upcoming events are
// loaded on connect and messages are answered in arrival order.
func New(log *slog.Logger, adapter relay.Adapter, eventPagePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.widget.socket.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			log.Error("failed to upgrade connection", sl.Err(err))
			return
		}
		defer conn.Close()

		// the server's read/write timeouts stay armed on hijacked connections
		if err := conn.SetDeadline(time.Time{}); err != nil {
			log.Error("failed to reset deadline", sl.Err(err))
			return
		}

		ctx := r.Context()

		page := relay.NewPage(log, adapter, eventPagePath)
		page.Load(ctx)

		log.Info("widget connected")

		for {
			data, _, err := wsutil.ReadClientData(conn)
			if err != nil {
				var closed wsutil.ClosedError
				if errors.As(err, &closed) || errors.Is(err, io.EOF) {
					log.Info("widget disconnected")
					return
				}
				log.Error("failed to read message", sl.Err(err))
				return
			}

			reply := page.HandleRaw(ctx, data)

			out, err := json.Marshal(reply)
			if err != nil {
				log.Error("failed to encode reply", sl.Err(err))
				return
			}

			if err := wsutil.WriteServerMessage(conn, ws.OpText, out); err != nil {
				log.Error("failed to write reply", sl.Err(err))
				return
			}
		}
	}
}
