package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/mentracare-backend/internal/handlers"
)

func SetupRoutes(r chi.Router, h *handlers.Handler) {
	r.Get("/", h.Root)
	r.Get("/test", h.Test)

	// Users
	r.Post("/users", h.CreateUser)
	r.Get("/users/{user_id}", h.GetUser)

	// Mood check-ins
	r.Post("/moods", h.CreateMood)
	r.Get("/moods/{user_id}", h.ListMoods)

	// Journaling
	r.Post("/journals", h.CreateJournal)
	r.Get("/journals/{user_id}", h.ListJournals)

	// Mindfulness
	r.Post("/mindfulness/sessions", h.LogSession)
	r.Get("/mindfulness/sessions/{user_id}", h.ListSessions)

	// Peer wall
	r.Post("/peer-wall", h.CreatePost)
	r.Get("/peer-wall", h.ListPosts)

	// Games and badges
	r.Post("/games", h.SaveGame)
	r.Get("/games/{user_id}", h.ListGames)
	r.Post("/badges", h.AddBadge)
	r.Get("/badges/{user_id}", h.ListBadges)

	// Appointments
	r.Post("/appointments", h.CreateAppointment)
	r.Get("/appointments/{user_id}", h.ListAppointments)

	// MentraBot
	r.Post("/mentrabot", h.MentraBot)
}
