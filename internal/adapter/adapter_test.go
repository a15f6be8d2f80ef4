package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventBridge/internal/lib/logger/handlers/slogdiscard"
	"eventBridge/internal/models"
	"eventBridge/internal/upstream"
	"eventBridge/internal/upstream/mocks"
)

func envelopeOf(t *testing.T, body string) upstream.Envelope {
	t.Helper()

	var env upstream.Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))

	return env
}

func newTestAdapter(up upstream.Upstream) *Adapter {
	return New(slogdiscard.NewDiscardLogger(), up, DefaultOptions())
}

func newPagedAdapter(up upstream.Upstream, pageSize, maxPages int) *Adapter {
	opts := DefaultOptions()
	opts.PageSize = pageSize
	opts.MaxPages = maxPages

	return New(slogdiscard.NewDiscardLogger(), up, opts)
}

// captureQueries records every query passed to the mocked method.
func captureQueries(queries *[]upstream.Query) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		*queries = append(*queries, args.Get(1).(upstream.Query))
	}
}

func eventIDs(events []models.Event) []string {
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}

	return ids
}

func ticketIDs(t *testing.T, tickets []models.TicketDefinition) []string {
	t.Helper()

	ids := make([]string, 0, len(tickets))
	for _, def := range tickets {
		var id string
		require.NoError(t, json.Unmarshal(def["id"], &id))
		ids = append(ids, id)
	}

	return ids
}

func TestListUpcomingEvents(t *testing.T) {
	t.Parallel()

	var queries []upstream.Query
	up := mocks.NewUpstream(t)
	up.On("QueryEvents", mock.Anything, mock.Anything).
		Run(captureQueries(&queries)).
		Return(envelopeOf(t, `{
			"events": [
				{
					"_id": "e1",
					"title": "Jazz night",
					"description": "Live band",
					"slug": "jazz-night",
					"status": "SCHEDULED",
					"mainImage": "wix:image://v1/jazz.jpg",
					"scheduling": {"startDate": "2026-11-02T19:00:00Z", "endDate": "2026-11-02T23:00:00Z"},
					"registration": {"type": "ticketing"},
					"location": {"name": "Main hall"}
				},
				{"id": "e2", "title": "Bare event"},
				{"id": "e3", "title": "Ended", "status": "ENDED"},
				"not an object"
			],
			"pagingMetadata": {"hasNext": false}
		}`), nil).
		Once()

	events, err := newTestAdapter(up).ListUpcomingEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	full := events[0]
	assert.Equal(t, "e1", full.ID)
	assert.Equal(t, "Jazz night", full.Title)
	assert.Equal(t, "2026-11-02T19:00:00Z", full.Start)
	assert.Equal(t, "2026-11-02T23:00:00Z", full.End)
	assert.Equal(t, "Main hall", full.Location)
	assert.Equal(t, models.RegistrationTicketing, full.RegistrationType)
	assert.JSONEq(t, `"wix:image://v1/jazz.jpg"`, string(full.MainImage))

	bare := events[1]
	assert.Equal(t, "e2", bare.ID)
	assert.Equal(t, "", bare.Description)
	assert.Equal(t, "Online", bare.Location)
	assert.Equal(t, models.RegistrationRSVP, bare.RegistrationType)
	assert.Equal(t, models.StatusScheduled, bare.Status)
	assert.Empty(t, bare.Start)
	assert.Nil(t, bare.MainImage)

	require.Len(t, queries, 1)
	q := queries[0]
	assert.Equal(t, upstream.Eq("status", "SCHEDULED", upstream.FilterExpression), q.Filter)
	assert.Equal(t, []upstream.Sort{{FieldName: "scheduling.startDate", Order: upstream.OrderDesc}}, q.Sort)
	assert.Equal(t, upstream.Paging{Limit: 50, Offset: 0}, q.Paging)
}

func atOffset(offset int) interface{} {
	return mock.MatchedBy(func(q upstream.Query) bool { return q.Paging.Offset == offset })
}

func TestListUpcomingEventsPaging(t *testing.T) {
	t.Parallel()

	up := mocks.NewUpstream(t)
	up.On("QueryEvents", mock.Anything, atOffset(0)).
		Return(envelopeOf(t, `{"items":[{"id":"e1"},{"id":"e2"}]}`), nil).
		Once()
	up.On("QueryEvents", mock.Anything, atOffset(2)).
		Return(envelopeOf(t, `{"items":[{"id":"e3"}]}`), nil).
		Once()

	events, err := newPagedAdapter(up, 2, 10).ListUpcomingEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2", "e3"}, eventIDs(events))
	up.AssertNumberOfCalls(t, "QueryEvents", 2)
}

func TestListUpcomingEventsStopsAtMaxPages(t *testing.T) {
	t.Parallel()

	up := mocks.NewUpstream(t)
	up.On("QueryEvents", mock.Anything, mock.Anything).
		Return(func(_ context.Context, q upstream.Query) (upstream.Envelope, error) {
			return envelopeOf(t, fmt.Sprintf(`{"events":[{"id":"e%d"}]}`, q.Paging.Offset)), nil
		}).
		Times(3)

	events, err := newPagedAdapter(up, 1, 3).ListUpcomingEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"e0", "e1", "e2"}, eventIDs(events))
}

func TestListUpcomingEventsUpstreamIgnoresPaging(t *testing.T) {
	t.Parallel()

	var queries []upstream.Query
	up := mocks.NewUpstream(t)
	up.On("QueryEvents", mock.Anything, mock.Anything).
		Run(captureQueries(&queries)).
		Return(envelopeOf(t, `{"events":[{"id":"e1"},{"id":"e2"},{"id":"e3"}]}`), nil).
		Once()

	events, err := newPagedAdapter(up, 2, 10).ListUpcomingEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2", "e3"}, eventIDs(events))
	require.Len(t, queries, 1)
	assert.Equal(t, upstream.Paging{Limit: 2, Offset: 0}, queries[0].Paging)
}

func TestListUpcomingEventsRepeatedRecords(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		pages     []string
		wantIDs   []string
		wantCalls int
	}{
		{
			name:      "same full page every time",
			pages:     []string{`{"events":[{"id":"e1"},{"id":"e2"}]}`, `{"events":[{"id":"e1"},{"id":"e2"}]}`},
			wantIDs:   []string{"e1", "e2"},
			wantCalls: 2,
		},
		{
			name: "overlapping pages with legacy ids",
			pages: []string{
				`{"events":[{"_id":"e1"},{"id":"e2"}]}`,
				`{"events":[{"id":"e1"},{"id":"e3"}]}`,
				`{"events":[]}`,
			},
			wantIDs:   []string{"e1", "e2", "e3"},
			wantCalls: 3,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			up := mocks.NewUpstream(t)
			for i, body := range tc.pages {
				up.On("QueryEvents", mock.Anything, atOffset(i*2)).
					Return(envelopeOf(t, body), nil).
					Once()
			}

			events, err := newPagedAdapter(up, 2, 10).ListUpcomingEvents(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.wantIDs, eventIDs(events))
			up.AssertNumberOfCalls(t, "QueryEvents", tc.wantCalls)
		})
	}
}

func TestListUpcomingEventsFailure(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		env  upstream.Envelope
		err  error
	}{
		{
			name: "query error",
			err:  &upstream.Error{Op: "query_events", StatusCode: http.StatusServiceUnavailable},
		},
		{
			name: "malformed list",
			env:  upstream.Envelope{"events": json.RawMessage(`{"id":"e1"}`)},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			up := mocks.NewUpstream(t)
			up.On("QueryEvents", mock.Anything, mock.Anything).Return(tc.env, tc.err).Once()

			events, err := newTestAdapter(up).ListUpcomingEvents(context.Background())
			require.Error(t, err)
			assert.Nil(t, events)

			var unavailable *UnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.Equal(t, "Unable to load events.", err.Error())
			assert.ErrorIs(t, err, upstream.ErrUnavailable)
		})
	}
}

func TestListUpcomingEventsEmpty(t *testing.T) {
	t.Parallel()

	up := mocks.NewUpstream(t)
	up.On("QueryEvents", mock.Anything, mock.Anything).
		Return(envelopeOf(t, `{"events":[]}`), nil).
		Once()

	events, err := newTestAdapter(up).ListUpcomingEvents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestGetEventTickets(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		body    string
		wantIDs []string
	}{
		{
			name:    "primary field",
			body:    `{"ticketDefinitions":[{"id":"t1","eventId":"e1","price":{"amount":"10"}},{"id":"t2","eventId":"e1"}]}`,
			wantIDs: []string{"t1", "t2"},
		},
		{
			name:    "fallback field",
			body:    `{"definitions":[{"id":"t3","eventId":"e1","name":"VIP"}]}`,
			wantIDs: []string{"t3"},
		},
		{
			name:    "no tickets",
			body:    `{"ticketDefinitions":[]}`,
			wantIDs: []string{},
		},
		{
			name:    "no result field",
			body:    `{"pagingMetadata":{"count":0}}`,
			wantIDs: []string{},
		},
		{
			name:    "rows of other events are dropped",
			body:    `{"ticketDefinitions":[{"id":"t1","eventId":"e1"},{"id":"x1","eventId":"e9"},{"id":"t4"}]}`,
			wantIDs: []string{"t1", "t4"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var queries []upstream.Query
			up := mocks.NewUpstream(t)
			up.On("QueryTicketDefinitions", mock.Anything, mock.Anything).
				Run(captureQueries(&queries)).
				Return(envelopeOf(t, tc.body), nil).
				Once()

			tickets, err := newTestAdapter(up).GetEventTickets(context.Background(), "e1")
			require.NoError(t, err)
			require.NotNil(t, tickets)
			assert.Equal(t, tc.wantIDs, ticketIDs(t, tickets))

			require.Len(t, queries, 1)
			assert.Equal(t, upstream.Eq("eventId", "e1", upstream.FilterExpression), queries[0].Filter)
		})
	}
}

func TestGetEventTicketsUpstreamIgnoresPaging(t *testing.T) {
	t.Parallel()

	up := mocks.NewUpstream(t)
	up.On("QueryTicketDefinitions", mock.Anything, mock.Anything).
		Return(envelopeOf(t, `{"ticketDefinitions":[
			{"id":"t1","eventId":"e1"},
			{"id":"t2","eventId":"e1"},
			{"id":"t3","eventId":"e1"}
		]}`), nil).
		Once()

	tickets, err := newPagedAdapter(up, 2, 10).GetEventTickets(context.Background(), "e1")
	require.NoError(t, err)
	assert.Len(t, tickets, 3)
	assert.Equal(t, []string{"t1", "t2", "t3"}, ticketIDs(t, tickets))
}

func TestGetEventTicketsPassesFieldsThrough(t *testing.T) {
	t.Parallel()

	up := mocks.NewUpstream(t)
	up.On("QueryTicketDefinitions", mock.Anything, mock.Anything).
		Return(envelopeOf(t, `{"ticketDefinitions":[{"id":"t1","eventId":"e1","price":{"amount":"10.00","currency":"USD"},"name":"General","limitPerCheckout":4}]}`), nil).
		Once()

	tickets, err := newTestAdapter(up).GetEventTickets(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	b, err := json.Marshal(tickets[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"t1","eventId":"e1","price":{"amount":"10.00","currency":"USD"},"name":"General","limitPerCheckout":4}`, string(b))
}

func TestGetEventTicketsExactFilter(t *testing.T) {
	t.Parallel()

	up := mocks.NewUpstream(t)
	up.On("QueryTicketDefinitions", mock.Anything, mock.MatchedBy(func(q upstream.Query) bool {
		return assert.ObjectsAreEqual(upstream.Filter{"eventId": "e1"}, q.Filter)
	})).Return(envelopeOf(t, `{}`), nil).Once()

	opts := DefaultOptions()
	opts.FilterForm = upstream.FilterExact

	_, err := New(slogdiscard.NewDiscardLogger(), up, opts).GetEventTickets(context.Background(), "e1")
	require.NoError(t, err)
}

func TestGetEventTicketsErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty event id", func(t *testing.T) {
		t.Parallel()

		up := mocks.NewUpstream(t)
		_, err := newTestAdapter(up).GetEventTickets(context.Background(), "  ")

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "eventId", verr.Errors[0].Field)
		up.AssertNotCalled(t, "QueryTicketDefinitions", mock.Anything, mock.Anything)
	})

	t.Run("query failure", func(t *testing.T) {
		t.Parallel()

		up := mocks.NewUpstream(t)
		up.On("QueryTicketDefinitions", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset")).
			Once()

		tickets, err := newTestAdapter(up).GetEventTickets(context.Background(), "e1")
		require.Error(t, err)
		assert.Nil(t, tickets)
		assert.Equal(t, "Unable to load tickets.", err.Error())
		assert.ErrorIs(t, err, upstream.ErrUnavailable)
	})
}

func TestCreateReservation(t *testing.T) {
	t.Parallel()

	want := upstream.ReservationRequest{
		TicketQuantities: []upstream.TicketQuantity{{TicketDefinitionID: "t1", Quantity: 2}},
	}

	up := mocks.NewUpstream(t)
	up.On("CreateReservation", mock.Anything, "e1", want).
		Return(json.RawMessage(`{"id":"r1","expires":"2026-11-01T10:20:00Z"}`), nil).
		Once()

	res, err := newTestAdapter(up).CreateReservation(context.Background(), "e1", []models.TicketSelection{
		{TicketID: "t1", Quantity: 2},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"r1","expires":"2026-11-01T10:20:00Z"}`, string(res))
}

func TestCreateReservationValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		eventID    string
		selections []models.TicketSelection
		wantMsg    string
	}{
		{
			name:       "zero quantity",
			eventID:    "e1",
			selections: []models.TicketSelection{{TicketID: "t1", Quantity: 0}},
			wantMsg:    "field quantity must be greater than 0",
		},
		{
			name:       "negative quantity",
			eventID:    "e1",
			selections: []models.TicketSelection{{TicketID: "t1", Quantity: -3}},
			wantMsg:    "field quantity must be greater than 0",
		},
		{
			name:       "missing ticket id",
			eventID:    "e1",
			selections: []models.TicketSelection{{Quantity: 1}},
			wantMsg:    "field ticketId is a required field",
		},
		{
			name:    "no selections",
			eventID: "e1",
			wantMsg: "field ticketSelection is a required field",
		},
		{
			name:       "empty selections",
			eventID:    "e1",
			selections: []models.TicketSelection{},
			wantMsg:    "field ticketSelection must contain at least 1 item(s)",
		},
		{
			name:       "missing event id",
			selections: []models.TicketSelection{{TicketID: "t1", Quantity: 1}},
			wantMsg:    "field eventId is a required field",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			up := mocks.NewUpstream(t)
			_, err := newTestAdapter(up).CreateReservation(context.Background(), tc.eventID, tc.selections)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantMsg, verr.Error())
			up.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateReservationUpstreamError(t *testing.T) {
	t.Parallel()

	rejection := &upstream.Error{Op: "create_reservation", StatusCode: http.StatusConflict, Message: "tickets sold out"}

	up := mocks.NewUpstream(t)
	up.On("CreateReservation", mock.Anything, "e1", mock.Anything).Return(nil, rejection).Once()

	_, err := newTestAdapter(up).CreateReservation(context.Background(), "e1", []models.TicketSelection{{TicketID: "t1", Quantity: 1}})

	var resErr *ReservationError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "tickets sold out", resErr.Reason)
	assert.Equal(t, "Reservation Error: tickets sold out", err.Error())
	assert.ErrorIs(t, err, rejection)
}

func TestCreateRsvp(t *testing.T) {
	t.Parallel()

	var sent []upstream.RsvpRequest
	up := mocks.NewUpstream(t)
	up.On("CreateRsvp", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = append(sent, args.Get(1).(upstream.RsvpRequest))
		}).
		Return(json.RawMessage(`{"id":"rsvp1","status":"YES"}`), nil).
		Once()

	rec, err := newTestAdapter(up).CreateRsvp(context.Background(), "e1", models.GuestDetails{
		FirstName: " Jane ",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"rsvp1","status":"YES"}`, string(rec))

	require.Len(t, sent, 1)
	assert.Equal(t, upstream.RsvpRequest{
		EventID:   "e1",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Status:    "YES",
	}, sent[0])
}

func TestCreateRsvpValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		guest     models.GuestDetails
		wantField string
		wantMsg   string
	}{
		{
			name:      "empty first name",
			guest:     models.GuestDetails{FirstName: "", LastName: "Doe", Email: "a@b.com"},
			wantField: "guestDetails.firstName",
			wantMsg:   "field firstName is a required field",
		},
		{
			name:      "blank last name",
			guest:     models.GuestDetails{FirstName: "Jane", LastName: "   ", Email: "a@b.com"},
			wantField: "guestDetails.lastName",
			wantMsg:   "field lastName is a required field",
		},
		{
			name:      "missing email",
			guest:     models.GuestDetails{FirstName: "Jane", LastName: "Doe"},
			wantField: "guestDetails.email",
			wantMsg:   "field email is a required field",
		},
		{
			name:      "malformed email",
			guest:     models.GuestDetails{FirstName: "Jane", LastName: "Doe", Email: "not-an-email"},
			wantField: "guestDetails.email",
			wantMsg:   "field email is not a valid email",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			up := mocks.NewUpstream(t)
			_, err := newTestAdapter(up).CreateRsvp(context.Background(), "e1", tc.guest)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, tc.wantField, verr.Errors[0].Field)
			assert.Equal(t, tc.wantMsg, verr.Errors[0].Message)
			up.AssertNotCalled(t, "CreateRsvp", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateRsvpUpstreamError(t *testing.T) {
	t.Parallel()

	up := mocks.NewUpstream(t)
	up.On("CreateRsvp", mock.Anything, mock.Anything).
		Return(nil, &upstream.Error{Op: "create_rsvp", StatusCode: http.StatusBadRequest, Message: "event does not accept RSVPs"}).
		Once()

	_, err := newTestAdapter(up).CreateRsvp(context.Background(), "e1", models.GuestDetails{
		FirstName: "Jane", LastName: "Doe", Email: "a@b.com",
	})

	var rsvpErr *RsvpError
	require.ErrorAs(t, err, &rsvpErr)
	assert.Equal(t, "RSVP Error: event does not accept RSVPs", err.Error())
}

func TestCreateRsvpIsNotDeduplicated(t *testing.T) {
	t.Parallel()

	up := mocks.NewUpstream(t)
	up.On("CreateRsvp", mock.Anything, mock.Anything).
		Return(json.RawMessage(`{"id":"rsvp"}`), nil).
		Times(2)

	a := newTestAdapter(up)
	guest := models.GuestDetails{FirstName: "Jane", LastName: "Doe", Email: "a@b.com"}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = a.CreateRsvp(context.Background(), "e1", guest)
		}(i)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	up.AssertNumberOfCalls(t, "CreateRsvp", 2)
}
