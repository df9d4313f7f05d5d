package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/remnant-app/remnant-api/internal/api"
	apiMiddleware "github.com/remnant-app/remnant-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	familyHandler := api.NewFamilyHandler(app.familyService)
	memoryHandler := api.NewMemoryHandler(app.memoryService)
	voiceHandler := api.NewVoiceHandler(app.voiceService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)
		r.Get("/families/invite", familyHandler.ResolveInvite)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Family endpoints
			r.Post("/families", familyHandler.CreateFamily)
			r.Get("/families", familyHandler.ListFamilies)
			r.Get("/families/{id}", familyHandler.GetFamily)
			r.Delete("/families/{id}", familyHandler.LeaveFamily)
			r.Post("/families/{id}/join", familyHandler.JoinFamily)
			r.Get("/families/{id}/members", familyHandler.ListMembers)
			r.Delete("/families/{id}/members", familyHandler.RemoveMember)

			// Memory endpoints
			r.Get("/memories", memoryHandler.ListMemories)
			r.Post("/memories", memoryHandler.CreateMemory)

			// Audio library endpoints
			r.Get("/audio", memoryHandler.ListRecordings)
			r.Post("/audio", memoryHandler.CreateRecording)

			// Voice endpoints
			r.Post("/voice/save", voiceHandler.RegisterVoice)
			r.Get("/voice/generate", voiceHandler.GetPresets)
			r.Post("/voice/generate", voiceHandler.GenerateMessage)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
