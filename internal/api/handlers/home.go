package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/third774/dyte-remix/internal/api/middleware"
	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/service"
	"github.com/third774/dyte-remix/internal/session"
	"github.com/third774/dyte-remix/internal/slug"
)

// Form actions accepted by POST /.
const (
	ActionSetName       = "set-name"
	ActionRemoveName    = "remove-name"
	ActionCreateMeeting = "create-meeting"
	ActionJoinMeeting   = "join-meeting"
)

type HomeHandler struct {
	meetingService *service.MeetingService
	sessions       *session.Store
}

func NewHomeHandler(meetingService *service.MeetingService, sessions *session.Store) *HomeHandler {
	return &HomeHandler{
		meetingService: meetingService,
		sessions:       sessions,
	}
}

type HomeResponse struct {
	Name           string `json:"name"`
	NewMeetingName string `json:"newMeetingName"`
	RedirectTo     string `json:"redirectTo,omitempty"`
}

type MeetingNotFoundResponse struct {
	MeetingNotFound bool `json:"meetingNotFound"`
}

func (h *HomeHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	resp := HomeResponse{
		Name:           sess.Name(),
		NewMeetingName: slug.Generate(),
		RedirectTo:     r.URL.Query().Get(service.RedirectToParam),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *HomeHandler) Post(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	switch r.PostForm.Get("action") {
	case ActionSetName:
		h.setName(w, r)
	case ActionRemoveName:
		h.removeName(w, r)
	case ActionCreateMeeting:
		h.createMeeting(w, r)
	case ActionJoinMeeting:
		h.joinMeeting(w, r)
	default:
		http.Error(w, "Invalid action", http.StatusBadRequest)
	}
}

func (h *HomeHandler) setName(w http.ResponseWriter, r *http.Request) {
	name, err := domain.NormalizeName(r.PostForm.Get("name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess := middleware.GetSession(r.Context())
	sess.SetName(name)
	if !h.commit(w, sess, "setName") {
		return
	}

	redirectTo := r.PostForm.Get(service.RedirectToParam)
	if redirectTo == "" {
		redirectTo = r.URL.Query().Get(service.RedirectToParam)
	}
	http.Redirect(w, r, localRedirect(redirectTo), http.StatusFound)
}

func (h *HomeHandler) removeName(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	sess.UnsetName()
	if !h.commit(w, sess, "removeName") {
		return
	}
	http.Redirect(w, r, service.EntryPath, http.StatusFound)
}

func (h *HomeHandler) createMeeting(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess.Name() == "" {
		http.Redirect(w, r, service.EntryPath, http.StatusFound)
		return
	}

	result, err := h.meetingService.CreateMeeting(r.Context(), service.CreateMeetingInput{
		Title:   strings.TrimSpace(r.PostForm.Get("meetingName")),
		Type:    domain.MeetingType(r.PostForm.Get("meetingType")),
		Session: sess,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTitle):
			http.Error(w, "Invalid meeting name", http.StatusBadRequest)
		case errors.Is(err, domain.ErrInvalidMeetingType):
			http.Error(w, "Invalid meeting type", http.StatusBadRequest)
		default:
			writeServiceError(w, "HomeHandler.createMeeting", err)
		}
		return
	}

	if sess.Dirty() && !h.commit(w, sess, "createMeeting") {
		return
	}

	var query url.Values
	if result.HostToken != "" {
		query = url.Values{service.HostTokenParam: {result.HostToken}}
	}
	http.Redirect(w, r, service.MeetingPath(result.Meeting.ID, query), http.StatusFound)
}

func (h *HomeHandler) joinMeeting(w http.ResponseWriter, r *http.Request) {
	meetingID := strings.TrimSpace(r.PostForm.Get("meetingId"))
	if meetingID == "" {
		http.Error(w, "meetingId is required", http.StatusBadRequest)
		return
	}

	meeting, err := h.meetingService.JoinMeeting(r.Context(), meetingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidIdentifier):
			http.Error(w, "meetingId is not a valid uuid", http.StatusBadRequest)
		case errors.Is(err, domain.ErrMeetingNotFound):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(MeetingNotFoundResponse{MeetingNotFound: true})
		default:
			writeServiceError(w, "HomeHandler.joinMeeting", err)
		}
		return
	}

	http.Redirect(w, r, service.MeetingPath(meeting.ID, nil), http.StatusFound)
}

func (h *HomeHandler) commit(w http.ResponseWriter, sess *session.Session, op string) bool {
	if err := h.sessions.Commit(w, sess); err != nil {
		log.Printf("ERROR [handlers.HomeHandler.%s] failed to commit session: %v", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return false
	}
	return true
}

// localRedirect only follows same-origin paths; anything else goes home.
func localRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return service.EntryPath
	}
	return target
}
