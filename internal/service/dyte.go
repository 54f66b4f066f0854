package service

import (
	"context"

	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/dyte"
)

// DyteAPI is the subset of the vendor client the services depend on.
type DyteAPI interface {
	SearchMeeting(ctx context.Context, titleOrID string) (*domain.Meeting, error)
	CreateMeeting(ctx context.Context, title string) (*domain.Meeting, error)
	AddParticipant(ctx context.Context, meetingID string, input dyte.AddParticipantInput) (*domain.ParticipantToken, error)
	BaseURL() string
}
