package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Operation names used by FakeDyte for call counting and failure injection.
const (
	OpSearchMeetings = "search_meetings"
	OpCreateMeeting  = "create_meeting"
	OpAddParticipant = "add_participant"
)

const FakeDyteAuthHeader = "Basic ZmFrZTpkeXRl"

type FakeMeeting struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FakeParticipant struct {
	MeetingID           string
	Name                string
	PresetName          string
	CustomParticipantID string
	Token               string
}

// FakeDyte is an in-memory stand-in for the Dyte v2 meetings API.
type FakeDyte struct {
	Server *httptest.Server

	mu           sync.Mutex
	meetings     []FakeMeeting
	participants []FakeParticipant
	calls        map[string]int
	failures     map[string]int
}

func NewFakeDyte(t *testing.T) *FakeDyte {
	t.Helper()

	f := &FakeDyte{
		calls:    make(map[string]int),
		failures: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(f.requireAuth)
	r.Get("/v2/meetings", f.handle(OpSearchMeetings, f.search))
	r.Post("/v2/meetings", f.handle(OpCreateMeeting, f.create))
	r.Post("/v2/meetings/{meetingId}/participants", f.handle(OpAddParticipant, f.addParticipant))

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)

	return f
}

// URL returns the API root, as configured in DYTE_BASE_URL.
func (f *FakeDyte) URL() string {
	return f.Server.URL + "/"
}

// SeedMeeting adds an existing meeting without counting a create call.
func (f *FakeDyte) SeedMeeting(title string) FakeMeeting {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addMeeting(title)
}

// Fail makes every following call of op answer with status.
func (f *FakeDyte) Fail(op string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = status
}

func (f *FakeDyte) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FakeDyte) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *FakeDyte) Meetings() []FakeMeeting {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeMeeting(nil), f.meetings...)
}

func (f *FakeDyte) Participants() []FakeParticipant {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeParticipant(nil), f.participants...)
}

func (f *FakeDyte) addMeeting(title string) FakeMeeting {
	now := time.Now().UTC()
	m := FakeMeeting{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    "ACTIVE",
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.meetings = append(f.meetings, m)
	return m
}

func (f *FakeDyte) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != FakeDyteAuthHeader {
			http.Error(w, `{"success":false}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeDyte) handle(op string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[op]++
		status := f.failures[op]
		f.mu.Unlock()

		if status != 0 {
			http.Error(w, `{"success":false}`, status)
			return
		}
		next(w, r)
	}
}

func (f *FakeDyte) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")

	f.mu.Lock()
	matches := []FakeMeeting{}
	for _, m := range f.meetings {
		if strings.EqualFold(m.ID, query) || m.Title == query {
			matches = append(matches, m)
		}
	}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    matches,
		"paging": map[string]int{
			"total_count":  len(matches),
			"start_offset": 0,
			"end_offset":   len(matches),
		},
	})
}

func (f *FakeDyte) create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		http.Error(w, `{"success":false}`, http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	m := f.addMeeting(body.Title)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "data": m})
}

func (f *FakeDyte) addParticipant(w http.ResponseWriter, r *http.Request) {
	meetingID := chi.URLParam(r, "meetingId")

	var body struct {
		Name                string `json:"name"`
		PresetName          string `json:"preset_name"`
		CustomParticipantID string `json:"custom_participant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"success":false}`, http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	found := false
	for _, m := range f.meetings {
		if m.ID == meetingID {
			found = true
			break
		}
	}
	if !found {
		f.mu.Unlock()
		http.Error(w, `{"success":false}`, http.StatusNotFound)
		return
	}
	p := FakeParticipant{
		MeetingID:           meetingID,
		Name:                body.Name,
		PresetName:          body.PresetName,
		CustomParticipantID: body.CustomParticipantID,
		Token:               "token-" + uuid.NewString(),
	}
	f.participants = append(f.participants, p)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data": map[string]string{
			"id":                    uuid.NewString(),
			"name":                  p.Name,
			"preset_name":           p.PresetName,
			"custom_participant_id": p.CustomParticipantID,
			"token":                 p.Token,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
