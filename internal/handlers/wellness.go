package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/mentracare-backend/internal/models"
	"github.com/AnshRaj112/mentracare-backend/internal/schema"
	"github.com/AnshRaj112/mentracare-backend/internal/services"
)

const (
	defaultMoodLimit        = 30
	defaultJournalLimit     = 20
	defaultPostLimit        = 50
	defaultSessionLimit     = 30
	defaultGameLimit        = 30
	defaultBadgeLimit       = 50
	defaultAppointmentLimit = 20
)

// Root identifies the service.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"service": services.ServiceName, "status": "ok"})
}

// Test reports backend and database status. It always answers 200.
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Health(r.Context()))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := decodeBody[models.User](h, w, r, schema.KindUser)
	if !ok {
		return
	}
	id, err := h.svc.CreateUser(r.Context(), user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetUser(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) CreateMood(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[models.MoodRequest](h, w, r, schema.KindMoodRequest)
	if !ok {
		return
	}
	res, err := h.svc.CreateMood(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	moods, err := h.svc.ListMoods(r.Context(), chi.URLParam(r, "user_id"), parseLimit(r, defaultMoodLimit))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moods)
}

func (h *Handler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[models.JournalRequest](h, w, r, schema.KindJournalRequest)
	if !ok {
		return
	}
	res, err := h.svc.CreateJournal(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) ListJournals(w http.ResponseWriter, r *http.Request) {
	journals, err := h.svc.ListJournals(r.Context(), chi.URLParam(r, "user_id"), parseLimit(r, defaultJournalLimit))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, journals)
}

func (h *Handler) LogSession(w http.ResponseWriter, r *http.Request) {
	session, ok := decodeBody[models.MindfulnessSession](h, w, r, schema.KindMindfulnessSession)
	if !ok {
		return
	}
	id, err := h.svc.LogSession(r.Context(), session)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.ListSessions(r.Context(), chi.URLParam(r, "user_id"), parseLimit(r, defaultSessionLimit))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	post, ok := decodeBody[models.PeerWallPost](h, w, r, schema.KindPeerWallPost)
	if !ok {
		return
	}
	id, err := h.svc.CreatePost(r.Context(), post)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

// ListPosts returns the peer wall, newest first.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context(), parseLimit(r, defaultPostLimit))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *Handler) SaveGame(w http.ResponseWriter, r *http.Request) {
	record, ok := decodeBody[models.GameRecord](h, w, r, schema.KindGameRecord)
	if !ok {
		return
	}
	id, err := h.svc.SaveGame(r.Context(), record)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.ListGames(r.Context(), chi.URLParam(r, "user_id"), parseLimit(r, defaultGameLimit))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *Handler) AddBadge(w http.ResponseWriter, r *http.Request) {
	badge, ok := decodeBody[models.Badge](h, w, r, schema.KindBadge)
	if !ok {
		return
	}
	id, err := h.svc.AddBadge(r.Context(), badge)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) ListBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.svc.ListBadges(r.Context(), chi.URLParam(r, "user_id"), parseLimit(r, defaultBadgeLimit))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	appt, ok := decodeBody[models.Appointment](h, w, r, schema.KindAppointment)
	if !ok {
		return
	}
	id, err := h.svc.CreateAppointment(r.Context(), appt)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.svc.ListAppointments(r.Context(), chi.URLParam(r, "user_id"), parseLimit(r, defaultAppointmentLimit))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, appts)
}

// MentraBot answers a chatbot message. The exchange is logged before replying.
func (h *Handler) MentraBot(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[models.MentraBotRequest](h, w, r, schema.KindMentraBotRequest)
	if !ok {
		return
	}
	response, err := h.svc.Chat(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}
