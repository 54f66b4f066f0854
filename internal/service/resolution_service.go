package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"

	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/metrics"
	"github.com/third774/dyte-remix/internal/repository"
	"github.com/third774/dyte-remix/internal/session"
)

const (
	EntryPath       = "/"
	MeetingPathBase = "/meeting/"

	HostTokenParam  = "hostToken"
	RedirectToParam = "redirectTo"
)

type Outcome string

const (
	// OutcomeInvalidIdentifier redirects to the entry point before any outbound call.
	OutcomeInvalidIdentifier Outcome = "invalid_identifier"
	// OutcomeNeedName redirects to the entry point with a redirectTo hint.
	OutcomeNeedName Outcome = "need_name"
	// OutcomeCanonicalRedirect redirects an alias request to the canonical meeting path.
	OutcomeCanonicalRedirect Outcome = "canonical_redirect"
	OutcomeReady             Outcome = "ready"
)

type ResolveInput struct {
	// Identifier is the meeting id, or a title when AllowAlias is set.
	Identifier string
	AllowAlias bool
	// RequestPath is the path and query of the incoming request, used as redirectTo.
	RequestPath string
	Query       url.Values
	Session     *session.Session
}

type Resolution struct {
	Outcome  Outcome
	Redirect string

	Meeting     *domain.Meeting
	Token       *domain.ParticipantToken
	BaseURL     string
	Role        domain.Role
	MeetingType domain.MeetingType
}

// ResolutionService turns a meeting identifier plus a session into either a
// redirect or a ready-to-join meeting with a participant token.
type ResolutionService struct {
	directory    *DirectoryService
	tokens       *TokenService
	metadataRepo repository.MetadataRepository
	baseURL      string
}

func NewResolutionService(directory *DirectoryService, tokens *TokenService, metadataRepo repository.MetadataRepository, baseURL string) *ResolutionService {
	return &ResolutionService{
		directory:    directory,
		tokens:       tokens,
		metadataRepo: metadataRepo,
		baseURL:      baseURL,
	}
}

// Resolve runs the flow. Outbound calls happen strictly in sequence: resolve
// (and create on a miss), metadata read, token issue. Any failure is returned
// as-is and leaves no partial result; a user id minted into input.Session only
// persists if the caller commits the session after a successful Ready outcome.
func (s *ResolutionService) Resolve(ctx context.Context, input ResolveInput) (res *Resolution, err error) {
	defer func() {
		if err != nil {
			metrics.RecordResolution("error")
			return
		}
		metrics.RecordResolution(string(res.Outcome))
	}()

	if !s.isValid(input) {
		return &Resolution{Outcome: OutcomeInvalidIdentifier, Redirect: EntryPath}, nil
	}

	if input.Session.Name() == "" {
		return &Resolution{
			Outcome:  OutcomeNeedName,
			Redirect: EntryPath + "?" + url.Values{RedirectToParam: {input.RequestPath}}.Encode(),
		}, nil
	}

	meeting, _, err := s.directory.ResolveOrCreate(ctx, input.Identifier)
	if err != nil {
		return nil, err
	}

	if meeting.ID != input.Identifier {
		return &Resolution{
			Outcome:  OutcomeCanonicalRedirect,
			Redirect: MeetingPath(meeting.ID, input.Query),
			Meeting:  meeting,
		}, nil
	}

	role, meetingType, err := s.determineRole(ctx, meeting.ID, input.Query)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(ctx, meeting.ID, input.Session.EnsureUserID(), input.Session.Name(), domain.PresetFor(meetingType, role))
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Outcome:     OutcomeReady,
		Meeting:     meeting,
		Token:       token,
		BaseURL:     s.baseURL,
		Role:        role,
		MeetingType: meetingType,
	}, nil
}

func (s *ResolutionService) isValid(input ResolveInput) bool {
	if domain.IsValidIdentifier(input.Identifier) {
		return true
	}
	return input.AllowAlias && domain.IsValidTitle(input.Identifier)
}

// determineRole grants host only on an exact match of the supplied host token.
// A wrong token is not an error: the caller joins as a participant.
func (s *ResolutionService) determineRole(ctx context.Context, meetingID string, query url.Values) (domain.Role, domain.MeetingType, error) {
	metadata, err := s.metadataRepo.Get(ctx, meetingID)
	if err != nil {
		if errors.Is(err, domain.ErrMetadataNotFound) {
			return domain.RoleParticipant, domain.BaselineMeetingType, nil
		}
		return "", "", fmt.Errorf("failed to read meeting metadata: %w", err)
	}

	meetingType := metadata.Type
	if !domain.IsValidMeetingType(meetingType) {
		meetingType = domain.BaselineMeetingType
	}

	if !query.Has(HostTokenParam) {
		return domain.RoleParticipant, meetingType, nil
	}
	if hostTokenMatches(query.Get(HostTokenParam), metadata.HostToken) {
		return domain.RoleHost, meetingType, nil
	}
	return domain.RoleParticipant, meetingType, nil
}

func hostTokenMatches(supplied, stored string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(stored)) == 1
}

// MeetingPath builds the canonical path of a meeting, keeping any query parameters.
func MeetingPath(meetingID string, query url.Values) string {
	path := MeetingPathBase + url.PathEscape(meetingID)
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return path
}
