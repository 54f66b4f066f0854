package dyte

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/third774/dyte-remix/internal/domain"
)

type meetingData struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	PreferredRegion   string    `json:"preferred_region"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	RecordOnStart     bool      `json:"record_on_start"`
	LiveStreamOnStart bool      `json:"live_stream_on_start"`
	PersistChat       bool      `json:"persist_chat"`
	SummarizeOnEnd    bool      `json:"summarize_on_end"`
	Status            string    `json:"status"`
}

func (m meetingData) toDomain() *domain.Meeting {
	return &domain.Meeting{
		ID:                m.ID,
		Title:             m.Title,
		PreferredRegion:   m.PreferredRegion,
		Status:            domain.MeetingStatus(m.Status),
		RecordOnStart:     m.RecordOnStart,
		LiveStreamOnStart: m.LiveStreamOnStart,
		PersistChat:       m.PersistChat,
		SummarizeOnEnd:    m.SummarizeOnEnd,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

type paging struct {
	TotalCount  int `json:"total_count"`
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`
}

type searchMeetingsResponse struct {
	Success bool          `json:"success"`
	Data    []meetingData `json:"data"`
	Paging  paging        `json:"paging"`
}

type createMeetingResponse struct {
	Success bool        `json:"success"`
	Data    meetingData `json:"data"`
}

// SearchMeeting returns the first meeting whose title or id matches titleOrID.
// No rows is reported as domain.ErrMeetingNotFound.
func (c *Client) SearchMeeting(ctx context.Context, titleOrID string) (*domain.Meeting, error) {
	u, err := url.Parse(c.meetingsURL())
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("search", titleOrID)
	u.RawQuery = q.Encode()

	var resp searchMeetingsResponse
	operation := func() error {
		err := c.do(ctx, "search_meetings", http.MethodGet, u.String(), nil, &resp)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Temporary() {
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, c.searchRetries), ctx)); err != nil {
		// A context ending between attempts surfaces as the bare ctx.Err().
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			err = &APIError{Operation: "search_meetings", Err: err}
		}
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, domain.ErrMeetingNotFound
	}
	return resp.Data[0].toDomain(), nil
}

// CreateMeeting creates a new meeting with the product's default recording and AI policy.
// Every call creates a distinct meeting, even for a title that already exists.
func (c *Client) CreateMeeting(ctx context.Context, title string) (*domain.Meeting, error) {
	var resp createMeetingResponse
	if err := c.do(ctx, "create_meeting", http.MethodPost, c.meetingsURL(), newCreateMeetingRequest(title), &resp); err != nil {
		return nil, err
	}
	if resp.Data.ID == "" {
		return nil, &APIError{Operation: "create_meeting", Err: errors.New("response carried no meeting id")}
	}
	return resp.Data.toDomain(), nil
}
