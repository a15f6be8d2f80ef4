package main

import (
	"context"
	"errors"
	"eventBridge/internal/adapter"
	"eventBridge/internal/config"
	"eventBridge/internal/http-server/handlers/event/createReservation"
	"eventBridge/internal/http-server/handlers/event/createRsvp"
	"eventBridge/internal/http-server/handlers/event/getTickets"
	"eventBridge/internal/http-server/handlers/event/listEvents"
	"eventBridge/internal/http-server/handlers/widget/message"
	"eventBridge/internal/http-server/handlers/widget/socket"
	"eventBridge/internal/http-server/middleware/mwcors"
	"eventBridge/internal/http-server/middleware/mwlogger"
	"eventBridge/internal/lib/api/response"
	"eventBridge/internal/lib/logger/handlers/slogpretty"
	"eventBridge/internal/lib/logger/sl"
	"eventBridge/internal/metrics"
	"eventBridge/internal/storage/postgres"
	"eventBridge/internal/upstream"
	"eventBridge/internal/upstream/vendor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting event bridge", slog.String("env", cfg.Env), slog.String("backend", cfg.Upstream.Backend))
	log.Debug("Debug messages are enabled")

	otel.SetTextMapPropagator(propagation.TraceContext{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	defer stop()

	up, storage, err := setupUpstream(ctx, log, cfg)
	if err != nil {
		log.Error("failed to init upstream", sl.Err(err))
		os.Exit(1)
	}

	events := adapter.New(log, up, adapter.Options{
		PageSize:     cfg.Upstream.PageSize,
		MaxPages:     cfg.Upstream.MaxPages,
		FilterForm:   upstream.FilterForm(cfg.Upstream.FilterForm),
		EventFields:  cfg.Upstream.EventFields,
		TicketFields: cfg.Upstream.TicketFields,
	})

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(mwcors.New(cfg.Widget.AllowedOrigins))

	if cfg.Widget.StaticDir != "" {
		fs := http.FileServer(http.Dir(cfg.Widget.StaticDir))
		router.Handle("/static/*", http.StripPrefix("/static/", fs))

		router.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/static/index.html", http.StatusFound)
		})
	}

	router.Route("/api/events", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, "api.events")
		})

		r.Get("/", listEvents.New(log, events))
		r.Get("/{id}/tickets", getTickets.New(log, events))
		r.Post("/{id}/reservations", createReservation.New(log, events))
		r.Post("/{id}/rsvp", createRsvp.New(log, events))
	})

	router.Post("/widget/messages", message.New(log, events, cfg.Widget.EventPagePath))
	router.Get("/widget/ws", socket.New(log, events, cfg.Widget.EventPagePath))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.OK())
	})
	router.Handle("/metrics", promhttp.Handler())

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		log.Info("application stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if storage != nil {
		g.Go(func() error {
			expireReservations(gCtx, log, storage, cfg.Database.ExpireInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", sl.Err(err))
	}

	log.Info("application stopped")

	if storage != nil {
		if err := storage.Close(); err != nil {
			log.Error("failed to close postgres connection", sl.Err(err))
		}

		log.Info("postgres connection closed")
	}
}

func setupUpstream(ctx context.Context, log *slog.Logger, cfg *config.Config) (upstream.Upstream, *postgres.Storage, error) {
	switch cfg.Upstream.Backend {
	case config.BackendPostgres:
		storage, err := postgres.InitDB(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}

		if err := storage.InitSchema(ctx); err != nil {
			_ = storage.Close()
			return nil, nil, err
		}

		return storage, storage, nil
	default:
		client := vendor.New(log, vendor.Options{
			BaseURL:      cfg.Upstream.BaseURL,
			APIKey:       cfg.Upstream.APIKey,
			SiteID:       cfg.Upstream.SiteID,
			SiteIDHeader: cfg.Upstream.SiteIDHeader,
			Timeout:      cfg.Upstream.Timeout,
			MaxRetries:   cfg.Upstream.MaxRetries,
			RetryBackoff: cfg.Upstream.RetryBackoff,
			Paths: vendor.Paths{
				Events:            cfg.Upstream.Paths.Events,
				TicketDefinitions: cfg.Upstream.Paths.TicketDefinitions,
				Reservations:      cfg.Upstream.Paths.Reservations,
				Rsvp:              cfg.Upstream.Paths.Rsvp,
			},
		})

		return client, nil, nil
	}
}

func expireReservations(ctx context.Context, log *slog.Logger, storage *postgres.Storage, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := storage.ExpireReservations(ctx)
			if err != nil {
				log.Error("failed to expire reservations", sl.Err(err))
				continue
			}
			if n > 0 {
				metrics.ExpiredReservations.Add(float64(n))
				log.Info("expired reservations removed", slog.Int64("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
