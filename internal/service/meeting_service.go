package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/repository"
	"github.com/third774/dyte-remix/internal/session"
)

// MeetingService backs the create and join actions of the home page.
type MeetingService struct {
	directory    *DirectoryService
	metadataRepo repository.MetadataRepository
}

func NewMeetingService(directory *DirectoryService, metadataRepo repository.MetadataRepository) *MeetingService {
	return &MeetingService{
		directory:    directory,
		metadataRepo: metadataRepo,
	}
}

type CreateMeetingInput struct {
	Title   string
	Type    domain.MeetingType
	Session *session.Session
}

type CreateMeetingResult struct {
	Meeting *domain.Meeting
	// HostToken is set when this call made the caller the meeting's host.
	HostToken string
	// Created reports whether the meeting was created at the vendor by this call.
	Created bool
}

// CreateMeeting gets or creates a meeting by title. The caller becomes host of
// a meeting that has no metadata yet: a new meeting, or one whose metadata
// write failed on an earlier attempt. Metadata with a fresh host token is
// stored and the session is given a user id if it had none.
func (s *MeetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*CreateMeetingResult, error) {
	if input.Session.Name() == "" {
		return nil, domain.ErrNameRequired
	}
	if !domain.IsValidTitle(input.Title) {
		return nil, domain.ErrInvalidTitle
	}

	meetingType := input.Type
	if meetingType == "" {
		meetingType = domain.BaselineMeetingType
	}
	if !domain.IsValidMeetingType(meetingType) {
		return nil, domain.ErrInvalidMeetingType
	}

	meeting, created, err := s.directory.ResolveOrCreate(ctx, input.Title)
	if err != nil {
		return nil, err
	}

	if !created {
		_, err := s.metadataRepo.Get(ctx, meeting.ID)
		if err == nil {
			return &CreateMeetingResult{Meeting: meeting}, nil
		}
		if !errors.Is(err, domain.ErrMetadataNotFound) {
			return nil, fmt.Errorf("failed to read meeting metadata: %w", err)
		}
	}

	hostToken, err := generateHostToken()
	if err != nil {
		return nil, err
	}
	metadata := &domain.MeetingMetadata{
		CreatedBy: input.Session.EnsureUserID(),
		HostToken: hostToken,
		Type:      meetingType,
	}
	if err := s.metadataRepo.Put(ctx, meeting.ID, metadata); err != nil {
		return nil, fmt.Errorf("failed to store meeting metadata: %w", err)
	}

	return &CreateMeetingResult{
		Meeting:   meeting,
		HostToken: hostToken,
		Created:   created,
	}, nil
}

// JoinMeeting looks up an existing meeting by id without creating one.
func (s *MeetingService) JoinMeeting(ctx context.Context, meetingID string) (*domain.Meeting, error) {
	if !domain.IsValidIdentifier(meetingID) {
		return nil, domain.ErrInvalidIdentifier
	}
	return s.directory.Resolve(ctx, meetingID)
}

func generateHostToken() (string, error) {
	bytes := make([]byte, 24)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate host token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
