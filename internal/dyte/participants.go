package dyte

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/third774/dyte-remix/internal/domain"
)

type AddParticipantInput struct {
	Name                string `json:"name"`
	PresetName          string `json:"preset_name"`
	CustomParticipantID string `json:"custom_participant_id"`
}

type participantData struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Picture             string `json:"picture"`
	CustomParticipantID string `json:"custom_participant_id"`
	PresetName          string `json:"preset_name"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
	Token               string `json:"token"`
}

type addParticipantResponse struct {
	Success bool            `json:"success"`
	Data    participantData `json:"data"`
}

// AddParticipant registers a participant on the meeting and returns its freshly minted auth token.
func (c *Client) AddParticipant(ctx context.Context, meetingID string, input AddParticipantInput) (*domain.ParticipantToken, error) {
	endpoint := c.meetingsURL() + "/" + url.PathEscape(meetingID) + "/participants"

	var resp addParticipantResponse
	if err := c.do(ctx, "add_participant", http.MethodPost, endpoint, input, &resp); err != nil {
		return nil, err
	}
	if resp.Data.Token == "" {
		return nil, &APIError{Operation: "add_participant", Err: errors.New("response carried no token")}
	}

	return &domain.ParticipantToken{
		Token:               resp.Data.Token,
		ParticipantID:       resp.Data.ID,
		CustomParticipantID: resp.Data.CustomParticipantID,
		PresetName:          resp.Data.PresetName,
	}, nil
}
