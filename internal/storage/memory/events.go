package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/gatherhub/server/internal/domain/events"
	"github.com/gatherhub/server/internal/metrics"
)

// EventStore holds event records in insertion order. Unlike users, events
// can be deleted, so the id counter is never rewound: a deleted event's id
// is retired rather than reused.
type EventStore struct {
	mu     sync.Mutex
	order  []int64
	byID   map[int64]*events.Event
	nextID int64
}

func NewEventStore() *EventStore {
	return &EventStore{byID: make(map[int64]*events.Event)}
}

func (s *EventStore) Create(_ context.Context, params events.CreateParams) (events.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	event := &events.Event{
		ID:           s.nextID,
		Title:        params.Title,
		Description:  params.Description,
		Date:         params.Date,
		CreatedBy:    params.CreatedBy,
		Participants: []int64{},
	}
	s.byID[event.ID] = event
	s.order = append(s.order, event.ID)

	metrics.EventsTotal.Set(float64(len(s.byID)))
	return cloneEvent(event), nil
}

func (s *EventStore) List(_ context.Context) ([]events.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]events.Event, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, cloneEvent(s.byID[id]))
	}
	return list, nil
}

func (s *EventStore) GetByID(_ context.Context, id int64) (events.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.byID[id]
	if !ok {
		return events.Event{}, events.ErrNotFound
	}
	return cloneEvent(event), nil
}

func (s *EventStore) Update(_ context.Context, id, ownerID int64, params events.UpdateParams) (events.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.byID[id]
	if !ok {
		return events.Event{}, events.ErrNotFound
	}
	if event.CreatedBy != ownerID {
		return events.Event{}, events.ErrForbidden
	}

	// Empty fields leave the stored value untouched.
	if params.Title != "" {
		event.Title = params.Title
	}
	if params.Description != "" {
		event.Description = params.Description
	}
	if params.Date != "" {
		event.Date = params.Date
	}
	return cloneEvent(event), nil
}

func (s *EventStore) Delete(_ context.Context, id, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.byID[id]
	if !ok {
		return events.ErrNotFound
	}
	if event.CreatedBy != ownerID {
		return events.ErrForbidden
	}

	delete(s.byID, id)
	if idx := slices.Index(s.order, id); idx >= 0 {
		s.order = slices.Delete(s.order, idx, idx+1)
	}

	metrics.EventsTotal.Set(float64(len(s.byID)))
	return nil
}

func (s *EventStore) AddParticipant(_ context.Context, id, userID int64) (events.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.byID[id]
	if !ok {
		return events.Event{}, events.ErrNotFound
	}
	if slices.Contains(event.Participants, userID) {
		return events.Event{}, events.ErrAlreadyJoined
	}
	event.Participants = append(event.Participants, userID)
	return cloneEvent(event), nil
}

func (s *EventStore) Count(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// cloneEvent copies the record so callers never share the participants slice
// with the store.
func cloneEvent(event *events.Event) events.Event {
	copied := *event
	copied.Participants = slices.Clone(event.Participants)
	return copied
}
