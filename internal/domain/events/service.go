package events

import (
	"context"

	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// Create always succeeds for an authenticated user; the creator becomes the
// event's owner.
func (s *Service) Create(ctx context.Context, creatorID int64, title, description, date string) (Event, error) {
	event, err := s.repo.Create(ctx, CreateParams{
		Title:       title,
		Description: description,
		Date:        date,
		CreatedBy:   creatorID,
	})
	if err != nil {
		return Event{}, err
	}
	s.logger.Info().Int64("event_id", event.ID).Int64("created_by", creatorID).Msg("event created")
	return event, nil
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id, callerID int64, params UpdateParams) (Event, error) {
	return s.repo.Update(ctx, id, callerID, params)
}

func (s *Service) Delete(ctx context.Context, id, callerID int64) error {
	if err := s.repo.Delete(ctx, id, callerID); err != nil {
		return err
	}
	s.logger.Info().Int64("event_id", id).Msg("event deleted")
	return nil
}

func (s *Service) Join(ctx context.Context, id, userID int64) (Event, error) {
	return s.repo.AddParticipant(ctx, id, userID)
}
