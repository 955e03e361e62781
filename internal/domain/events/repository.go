package events

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("event not found")
	ErrForbidden     = errors.New("not the event creator")
	ErrAlreadyJoined = errors.New("already joined this event")
)

// Repository owns event records. Mutations that require ownership take the
// caller's user id so the ownership check and the write happen atomically
// under the store's lock: Update and Delete return ErrForbidden when ownerID
// does not match the event's creator, AddParticipant returns
// ErrAlreadyJoined when userID is already a participant.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Event, error)
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id int64) (Event, error)
	Update(ctx context.Context, id, ownerID int64, params UpdateParams) (Event, error)
	Delete(ctx context.Context, id, ownerID int64) error
	AddParticipant(ctx context.Context, id, userID int64) (Event, error)
	Count(ctx context.Context) int
}
