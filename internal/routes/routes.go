package routes

import (
	"github.com/daybookapp/daybook-backend/internal/handlers"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)
	r.Put("/api/auth/theme", handlers.UpdateTheme)

	// Journal routes
	r.Get("/api/journal", handlers.ListJournal)
	r.Get("/api/journal/calendar", handlers.JournalCalendar)
	r.Get("/api/journal/entry", handlers.GetJournalEntry)
	r.Post("/api/journal/verify-pin", handlers.VerifyJournalPin)
	r.Post("/api/journal", handlers.CreateJournalEntry)
	r.Put("/api/journal/{id}", handlers.UpdateJournalEntry)
	r.Delete("/api/journal/{id}", handlers.DeleteJournalEntry)
	r.Get("/api/journal/export", handlers.ExportJournal)
	r.Get("/api/journal/streak", handlers.GetJournalStreak)

	// Mood routes
	r.Get("/api/mood/calendar", handlers.MoodCalendar)
	r.Get("/api/mood/entry", handlers.GetMoodEntry)
	r.Post("/api/mood", handlers.SaveMoodEntry)
	r.Delete("/api/mood/{id}", handlers.DeleteMoodEntry)
	r.Get("/api/mood/statistics", handlers.MoodStatistics)

	// Dashboard routes
	r.Get("/api/dashboard", handlers.GetDashboard)
	r.Get("/api/dashboard/streak", handlers.GetDashboardStreak)
}
