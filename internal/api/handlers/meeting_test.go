package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/third774/dyte-remix/internal/testutil"
)

type MeetingResponse struct {
	Meeting struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"meeting"`
	Token       string `json:"token"`
	BaseURL     string `json:"baseUrl"`
	Role        string `json:"role"`
	MeetingType string `json:"meetingType"`
}

func TestMeetingHandler_NeedName(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := ts.NewBrowser(t)
	meetingID := uuid.NewString()

	path := "/meeting/" + meetingID + "?hostToken=abc"
	resp := ts.Get(t, browser, path)
	defer resp.Body.Close()

	testutil.AssertRedirect(t, resp, "/?"+url.Values{"redirectTo": {path}}.Encode())
	testutil.AssertNoCookie(t, resp, ts.Config.SessionCookieName)
	assert.Equal(t, 0, ts.Dyte.TotalCalls())
}

func TestMeetingHandler_InvalidIdentifier(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := ts.NewBrowser(t)
	ts.SetName(t, browser, "Ada")

	tests := []struct {
		name string
		path string
	}{
		{name: "plain title", path: "/meeting/not-a-uuid"},
		{name: "uuid with extra characters", path: "/meeting/" + uuid.NewString() + "x"},
		{name: "alias too long", path: "/join/" + strings.Repeat("a", 101)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Get(t, browser, tt.path)
			defer resp.Body.Close()

			testutil.AssertRedirect(t, resp, "/")
			assert.Equal(t, 0, ts.Dyte.TotalCalls())
		})
	}
}

func TestMeetingHandler_AliasRedirect(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := ts.NewBrowser(t)
	ts.SetName(t, browser, "Ada")

	resp := ts.Get(t, browser, "/join/team-standup?hostToken=abc")
	resp.Body.Close()

	meetings := ts.Dyte.Meetings()
	require.Len(t, meetings, 1)
	assert.Equal(t, "team-standup", meetings[0].Title)
	testutil.AssertRedirect(t, resp, "/meeting/"+meetings[0].ID+"?hostToken=abc")
	assert.Equal(t, 0, ts.Dyte.Calls(testutil.OpAddParticipant))

	// The same alias resolves to the same meeting.
	resp = ts.Get(t, browser, "/join/team-standup")
	resp.Body.Close()

	testutil.AssertRedirect(t, resp, "/meeting/"+meetings[0].ID)
	assert.Equal(t, 1, ts.Dyte.Calls(testutil.OpCreateMeeting))
}

func TestMeetingHandler_UppercaseIDRedirectsToCanonical(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := ts.NewBrowser(t)
	ts.SetName(t, browser, "Ada")
	meeting := ts.Dyte.SeedMeeting("daily")

	resp := ts.Get(t, browser, "/meeting/"+strings.ToUpper(meeting.ID))
	resp.Body.Close()

	testutil.AssertRedirect(t, resp, "/meeting/"+meeting.ID)
}

func TestMeetingHandler_Ready(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := ts.NewBrowser(t)
	ts.SetName(t, browser, "Ada")
	meeting := ts.Dyte.SeedMeeting("daily")

	resp := ts.Get(t, browser, "/meeting/"+meeting.ID)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertSetsCookie(t, resp, ts.Config.SessionCookieName)

	var result MeetingResponse
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, meeting.ID, result.Meeting.ID)
	assert.Equal(t, "daily", result.Meeting.Title)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, ts.Dyte.URL(), result.BaseURL)
	assert.Equal(t, "participant", result.Role)
	assert.Equal(t, "meeting", result.MeetingType)

	participants := ts.Dyte.Participants()
	require.Len(t, participants, 1)
	assert.Equal(t, "Ada", participants[0].Name)
	assert.Equal(t, "group_call_participant", participants[0].PresetName)
	assert.NotEmpty(t, participants[0].CustomParticipantID)
}

func TestMeetingHandler_UserIDIsStableAcrossRequests(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := ts.NewBrowser(t)
	ts.SetName(t, browser, "Ada")
	meeting := ts.Dyte.SeedMeeting("daily")

	var tokens []string
	for i := 0; i < 2; i++ {
		resp := ts.Get(t, browser, "/meeting/"+meeting.ID)
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var result MeetingResponse
		testutil.AssertJSONResponse(t, resp, &result)
		resp.Body.Close()
		tokens = append(tokens, result.Token)
	}

	participants := ts.Dyte.Participants()
	require.Len(t, participants, 2)
	assert.Equal(t, participants[0].CustomParticipantID, participants[1].CustomParticipantID)
	assert.NotEqual(t, tokens[0], tokens[1], "tokens are minted fresh")

	// A different browser is a different participant.
	other := ts.NewBrowser(t)
	ts.SetName(t, other, "Grace")
	resp := ts.Get(t, other, "/meeting/"+meeting.ID)
	resp.Body.Close()

	participants = ts.Dyte.Participants()
	require.Len(t, participants, 3)
	assert.NotEqual(t, participants[0].CustomParticipantID, participants[2].CustomParticipantID)
}

func TestMeetingHandler_HostToken(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := ts.NewBrowser(t)
	ts.SetName(t, browser, "Ada")

	resp := ts.PostForm(t, browser, url.Values{"action": {"create-meeting"}, "meetingName": {"board-review"}})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	hostToken := location.Query().Get("hostToken")
	require.NotEmpty(t, hostToken)
	meetingPath := location.Path

	tests := []struct {
		name     string
		query    string
		wantRole string
	}{
		{name: "matching token", query: "?hostToken=" + url.QueryEscape(hostToken), wantRole: "host"},
		{name: "no token", query: "", wantRole: "participant"},
		{name: "empty token", query: "?hostToken=", wantRole: "participant"},
		{name: "wrong token", query: "?hostToken=wrong", wantRole: "participant"},
		{name: "token with different case", query: "?hostToken=" + strings.ToUpper(hostToken), wantRole: "participant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guest := ts.NewBrowser(t)
			ts.SetName(t, guest, "Guest")

			resp := ts.Get(t, guest, meetingPath+tt.query)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, http.StatusOK)
			var result MeetingResponse
			testutil.AssertJSONResponse(t, resp, &result)
			assert.Equal(t, tt.wantRole, result.Role)
		})
	}
}

func TestMeetingHandler_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name   string
		failOp string
		status int
	}{
		{name: "search fails", failOp: testutil.OpSearchMeetings, status: http.StatusInternalServerError},
		{name: "search rate limited", failOp: testutil.OpSearchMeetings, status: http.StatusTooManyRequests},
		{name: "token issue fails", failOp: testutil.OpAddParticipant, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := testutil.NewTestServer(t)
			browser := ts.NewBrowser(t)
			ts.SetName(t, browser, "Ada")
			meeting := ts.Dyte.SeedMeeting("daily")
			ts.Dyte.Fail(tt.failOp, tt.status)

			resp := ts.Get(t, browser, "/meeting/"+meeting.ID)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, http.StatusBadGateway)
			testutil.AssertNoCookie(t, resp, ts.Config.SessionCookieName)
		})
	}
}

func TestMeetingHandler_AliasCreateFailure(t *testing.T) {
	ts := testutil.NewTestServer(t)
	browser := ts.NewBrowser(t)
	ts.SetName(t, browser, "Ada")
	ts.Dyte.Fail(testutil.OpCreateMeeting, http.StatusInternalServerError)

	resp := ts.Get(t, browser, "/join/new-room")
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusBadGateway)
	assert.Equal(t, 1, ts.Dyte.Calls(testutil.OpCreateMeeting), "create is never retried")
}
