package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/third774/dyte-remix/internal/api/middleware"
	"github.com/third774/dyte-remix/internal/domain"
	"github.com/third774/dyte-remix/internal/service"
	"github.com/third774/dyte-remix/internal/session"
)

type MeetingHandler struct {
	resolution *service.ResolutionService
	sessions   *session.Store
}

func NewMeetingHandler(resolution *service.ResolutionService, sessions *session.Store) *MeetingHandler {
	return &MeetingHandler{
		resolution: resolution,
		sessions:   sessions,
	}
}

type MeetingResponse struct {
	Meeting     *domain.Meeting `json:"meeting"`
	Token       string          `json:"token"`
	BaseURL     string          `json:"baseUrl"`
	Role        string          `json:"role"`
	MeetingType string          `json:"meetingType"`
}

// Get serves /meeting/{meetingId}. Only a meeting id is accepted here.
func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, chi.URLParam(r, "meetingId"), false)
}

// Join serves /join/{alias}, which accepts a meeting title and creates the
// meeting on first use before redirecting to its canonical path.
func (h *MeetingHandler) Join(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, chi.URLParam(r, "alias"), true)
}

func (h *MeetingHandler) resolve(w http.ResponseWriter, r *http.Request, identifier string, allowAlias bool) {
	sess := middleware.GetSession(r.Context())

	res, err := h.resolution.Resolve(r.Context(), service.ResolveInput{
		Identifier:  identifier,
		AllowAlias:  allowAlias,
		RequestPath: r.URL.RequestURI(),
		Query:       r.URL.Query(),
		Session:     sess,
	})
	if err != nil {
		writeServiceError(w, "MeetingHandler.resolve", err)
		return
	}

	if res.Outcome != service.OutcomeReady {
		http.Redirect(w, r, res.Redirect, http.StatusFound)
		return
	}

	if err := h.sessions.Commit(w, sess); err != nil {
		log.Printf("ERROR [handlers.MeetingHandler.resolve] failed to commit session: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := MeetingResponse{
		Meeting:     res.Meeting,
		Token:       res.Token.Token,
		BaseURL:     res.BaseURL,
		Role:        string(res.Role),
		MeetingType: string(res.MeetingType),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
