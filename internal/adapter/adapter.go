// Package adapter translates between the widget-facing shapes and the
// upstream events service: event listing, ticket lookup, reservations and RSVPs.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"eventBridge/internal/lib/envelope"
	"eventBridge/internal/upstream"
)

type Options struct {
	PageSize     int
	MaxPages     int
	FilterForm   upstream.FilterForm
	EventFields  []string
	TicketFields []string
}

func DefaultOptions() Options {
	return Options{
		PageSize:     50,
		MaxPages:     10,
		FilterForm:   upstream.FilterExpression,
		EventFields:  []string{"events", "items"},
		TicketFields: []string{"ticketDefinitions", "definitions"},
	}
}

// Adapter is safe for concurrent use. It keeps no state between calls.
type Adapter struct {
	log      *slog.Logger
	up       upstream.Upstream
	validate *validator.Validate
	opts     Options
	events   envelope.Resolver
	tickets  envelope.Resolver
}

func New(log *slog.Logger, up upstream.Upstream, opts Options) *Adapter {
	defaults := DefaultOptions()
	if opts.PageSize <= 0 {
		opts.PageSize = defaults.PageSize
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaults.MaxPages
	}
	if opts.FilterForm == "" {
		opts.FilterForm = defaults.FilterForm
	}
	if len(opts.EventFields) == 0 {
		opts.EventFields = defaults.EventFields
	}
	if len(opts.TicketFields) == 0 {
		opts.TicketFields = defaults.TicketFields
	}

	return &Adapter{
		log:      log,
		up:       up,
		validate: newValidator(),
		opts:     opts,
		events:   envelope.NewResolver(opts.EventFields...),
		tickets:  envelope.NewResolver(opts.TicketFields...),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	return v
}

type queryFunc func(ctx context.Context, q upstream.Query) (upstream.Envelope, error)

type recordKey struct {
	ID       string `json:"id"`
	LegacyID string `json:"_id"`
}

// keyOf returns the record id, or "" when the item carries none.
func keyOf(raw json.RawMessage) string {
	var k recordKey
	if err := json.Unmarshal(raw, &k); err != nil {
		return ""
	}
	if k.ID != "" {
		return k.ID
	}

	return k.LegacyID
}

// collect pages through a query and gathers the raw items found under the
// resolver's fields. A page whose size differs from the requested limit ends
// the walk, and records repeated across pages are kept once.
func (a *Adapter) collect(ctx context.Context, query queryFunc, q upstream.Query, r envelope.Resolver) ([]json.RawMessage, error) {
	var all []json.RawMessage
	seen := make(map[string]struct{})

	q.Paging.Limit = a.opts.PageSize

	for page := 0; page < a.opts.MaxPages; page++ {
		q.Paging.Offset = page * a.opts.PageSize

		env, err := query(ctx, q)
		if err != nil {
			return nil, err
		}

		field, items, err := r.Resolve(env)
		if err != nil {
			return nil, fmt.Errorf("malformed response: %w", err)
		}

		if field == "" {
			a.log.Debug("no result field in response", slog.Any("candidates", r.Fields()))
		}

		fresh := 0
		for _, item := range items {
			if id := keyOf(item); id != "" {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
			}
			all = append(all, item)
			fresh++
		}

		if len(items) > a.opts.PageSize {
			a.log.Warn("upstream ignored paging", slog.Int("limit", a.opts.PageSize), slog.Int("got", len(items)))
		}

		if len(items) != a.opts.PageSize || fresh == 0 || !envelope.HasNext(env) {
			break
		}
	}

	return all, nil
}
