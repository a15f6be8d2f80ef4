// Package relay answers the messages an embedded calendar widget posts to its
// host page.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"eventBridge/internal/lib/logger/sl"
	"eventBridge/internal/metrics"
	"eventBridge/internal/models"
)

// Inbound message types.
const (
	TypeReady             = "READY"
	TypeGetTickets        = "GET_TICKETS"
	TypeCreateReservation = "CREATE_RESERVATION"
	TypeCreateRsvp        = "CREATE_RSVP"
	TypeRedirectToEvent   = "REDIRECT_TO_EVENT"
)

// Reply types.
const (
	TypeSetRawEvents       = "SET_RAW_EVENTS"
	TypeSetTickets         = "SET_TICKETS"
	TypeReservationCreated = "RESERVATION_CREATED"
	TypeRsvpCreated        = "RSVP_CREATED"

	// TypeNavigate answers REDIRECT_TO_EVENT with the event page url in
	// payload.url. Nothing is navigated server side: the host page is
	// expected to act on this reply and open the url itself.
	TypeNavigate = "NAVIGATE"

	TypeError = "ERROR"
)

var (
	ErrUnsupportedType = errors.New("unsupported message type")
	ErrMissingSlug     = errors.New("event slug is required")
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Adapter
type Adapter interface {
	ListUpcomingEvents(ctx context.Context) ([]models.Event, error)
	GetEventTickets(ctx context.Context, eventID string) ([]models.TicketDefinition, error)
	CreateReservation(ctx context.Context, eventID string, selections []models.TicketSelection) (models.Reservation, error)
	CreateRsvp(ctx context.Context, eventID string, guest models.GuestDetails) (models.RsvpRecord, error)
}

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Reply struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type ticketsPayload struct {
	EventID string                    `json:"eventId"`
	Tickets []models.TicketDefinition `json:"tickets"`
}

type reservationPayload struct {
	EventID         string                   `json:"eventId"`
	TicketSelection []models.TicketSelection `json:"ticketSelection"`
}

type rsvpPayload struct {
	EventID      string              `json:"eventId"`
	GuestDetails models.GuestDetails `json:"guestDetails"`
}

type redirectPayload struct {
	Slug string `json:"slug"`
}

type navigatePayload struct {
	URL string `json:"url"`
}

// Page is the host side of one widget instance. Events are fetched at most
// once and served from memory afterwards.
type Page struct {
	log           *slog.Logger
	adapter       Adapter
	eventPagePath string

	once   sync.Once
	events []models.Event
}

func NewPage(log *slog.Logger, adapter Adapter, eventPagePath string) *Page {
	return &Page{
		log:           log,
		adapter:       adapter,
		eventPagePath: strings.TrimRight(eventPagePath, "/"),
	}
}

// Load fetches the upcoming events once. A failed load leaves the page with
// an empty list.
func (p *Page) Load(ctx context.Context) []models.Event {
	p.once.Do(func() {
		events, err := p.adapter.ListUpcomingEvents(ctx)
		if err != nil {
			p.log.Error("failed to load events", sl.Err(err))
			events = nil
		}
		if events == nil {
			events = []models.Event{}
		}
		p.events = events
	})

	return p.events
}

// HandleRaw decodes one inbound frame and answers it.
func (p *Page) HandleRaw(ctx context.Context, data []byte) Reply {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		p.log.Warn("malformed widget message", sl.Err(err))
		return p.record("", errorReply(fmt.Errorf("malformed message: %w", err)))
	}

	return p.Handle(ctx, msg)
}

// Handle answers exactly once per message; failures become ERROR replies.
func (p *Page) Handle(ctx context.Context, msg Message) Reply {
	log := p.log.With(slog.String("type", msg.Type))

	reply, err := p.dispatch(ctx, msg)
	if err != nil {
		log.Error("widget message failed", sl.Err(err))
		reply = errorReply(err)
	} else {
		log.Debug("widget message handled", slog.String("reply", reply.Type))
	}

	return p.record(msg.Type, reply)
}

func (p *Page) dispatch(ctx context.Context, msg Message) (Reply, error) {
	switch msg.Type {
	case TypeReady:
		return Reply{Type: TypeSetRawEvents, Payload: p.Load(ctx)}, nil

	case TypeGetTickets:
		var in struct {
			EventID string `json:"eventId"`
		}
		if err := decodePayload(msg, &in); err != nil {
			return Reply{}, err
		}

		tickets, err := p.adapter.GetEventTickets(ctx, in.EventID)
		if err != nil {
			return Reply{}, err
		}

		return Reply{Type: TypeSetTickets, Payload: ticketsPayload{EventID: in.EventID, Tickets: tickets}}, nil

	case TypeCreateReservation:
		var in reservationPayload
		if err := decodePayload(msg, &in); err != nil {
			return Reply{}, err
		}

		res, err := p.adapter.CreateReservation(ctx, in.EventID, in.TicketSelection)
		if err != nil {
			return Reply{}, err
		}

		return Reply{Type: TypeReservationCreated, Payload: res}, nil

	case TypeCreateRsvp:
		var in rsvpPayload
		if err := decodePayload(msg, &in); err != nil {
			return Reply{}, err
		}

		rec, err := p.adapter.CreateRsvp(ctx, in.EventID, in.GuestDetails)
		if err != nil {
			return Reply{}, err
		}

		return Reply{Type: TypeRsvpCreated, Payload: rec}, nil

	case TypeRedirectToEvent:
		var in redirectPayload
		if err := decodePayload(msg, &in); err != nil {
			return Reply{}, err
		}
		if strings.TrimSpace(in.Slug) == "" {
			return Reply{}, ErrMissingSlug
		}

		return Reply{Type: TypeNavigate, Payload: navigatePayload{URL: p.eventPagePath + "/" + in.Slug}}, nil

	default:
		return Reply{}, fmt.Errorf("%w: %q", ErrUnsupportedType, msg.Type)
	}
}

func (p *Page) record(in string, reply Reply) Reply {
	switch in {
	case TypeReady, TypeGetTickets, TypeCreateReservation, TypeCreateRsvp, TypeRedirectToEvent:
	case "":
		in = "invalid"
	default:
		in = "unknown"
	}
	metrics.WidgetMessages.WithLabelValues(in, reply.Type).Inc()

	return reply
}

func decodePayload(msg Message, v any) error {
	if len(msg.Payload) == 0 || string(msg.Payload) == "null" {
		return fmt.Errorf("%s: payload is required", msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%s: malformed payload: %w", msg.Type, err)
	}

	return nil
}

func errorReply(err error) Reply {
	return Reply{Type: TypeError, Payload: err.Error()}
}
