package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/third774/dyte-remix/internal/domain"
)

// DirectoryService looks meetings up by title or id and creates them when absent.
type DirectoryService struct {
	api DyteAPI
}

func NewDirectoryService(api DyteAPI) *DirectoryService {
	return &DirectoryService{api: api}
}

// Resolve returns domain.ErrMeetingNotFound when nothing matches titleOrID.
func (s *DirectoryService) Resolve(ctx context.Context, titleOrID string) (*domain.Meeting, error) {
	meeting, err := s.api.SearchMeeting(ctx, titleOrID)
	if err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve meeting: %w", err)
	}
	return meeting, nil
}

func (s *DirectoryService) Create(ctx context.Context, title string) (*domain.Meeting, error) {
	meeting, err := s.api.CreateMeeting(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	return meeting, nil
}

// ResolveOrCreate has get-or-create semantics. Two concurrent calls for an unknown
// title can both miss and create two distinct meetings; the vendor offers no
// atomic primitive to prevent it.
func (s *DirectoryService) ResolveOrCreate(ctx context.Context, titleOrID string) (*domain.Meeting, bool, error) {
	meeting, err := s.Resolve(ctx, titleOrID)
	if err == nil {
		return meeting, false, nil
	}
	if !errors.Is(err, domain.ErrMeetingNotFound) {
		return nil, false, err
	}

	meeting, err = s.Create(ctx, titleOrID)
	if err != nil {
		return nil, false, err
	}
	return meeting, true, nil
}
