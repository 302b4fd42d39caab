package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/grk-gaming/tournament-hub/handlers"
	"github.com/grk-gaming/tournament-hub/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tournamentHandler *handlers.TournamentHandler,
	registrationHandler *handlers.RegistrationHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	submissionHandler *handlers.SubmissionHandler,
	contactHandler *handlers.ContactHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Post("/users/register", userHandler.RegisterHandler)
		r.Get("/users/{userID}", userHandler.GetByIDHandler)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListHandler)
			r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
			r.Get("/{tournamentID}/registrations", registrationHandler.ListByTournamentHandler)
			r.Get("/{tournamentID}/leaderboard", leaderboardHandler.TournamentHandler)
		})

		r.Get("/leaderboard/global", leaderboardHandler.GlobalHandler)

		r.Post("/registrations", registrationHandler.CreateHandler)
		r.Post("/registrations/{registrationID}/payment", registrationHandler.SubmitPaymentHandler)

		r.Post("/submissions", submissionHandler.CreateHandler)
		r.Post("/contact", contactHandler.SendHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", authHandler.AdminLoginHandler)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate([]byte(jwtSecret)))
				r.Use(middleware.RequireAdmin)

				r.Post("/tournaments", tournamentHandler.CreateHandler)
				r.Patch("/tournaments/{tournamentID}", tournamentHandler.UpdateHandler)
				r.Get("/tournaments/{tournamentID}/submissions", submissionHandler.ListByTournamentHandler)
				r.Post("/leaderboard", leaderboardHandler.RecordPlacementHandler)
			})
		})
	})
}
