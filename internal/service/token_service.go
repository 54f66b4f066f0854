package service

import (
	"context"
	"fmt"

	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/dyte"
)

// TokenService mints participant tokens. A new token is requested on every call;
// userID is sent as the custom participant id so one browser maps to one participant.
type TokenService struct {
	api DyteAPI
}

func NewTokenService(api DyteAPI) *TokenService {
	return &TokenService{api: api}
}

func (s *TokenService) Issue(ctx context.Context, meetingID, userID, name, preset string) (*domain.ParticipantToken, error) {
	token, err := s.api.AddParticipant(ctx, meetingID, dyte.AddParticipantInput{
		Name:                name,
		PresetName:          preset,
		CustomParticipantID: userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue participant token: %w", err)
	}
	return token, nil
}
