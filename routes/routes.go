package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hoopup/pickup-backend/handlers"
)

type Handlers struct {
	Auth  *handlers.AuthHandler
	User  *handlers.UserHandler
	Court *handlers.CourtHandler
	Team  *handlers.TeamHandler
	Game  *handlers.GameHandler
}

func InitRoutes(h Handlers, allowedOrigins []string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Post("/login", h.Auth.Login)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.User.ListUsers)
			r.Get("/{userID}", h.User.GetUserByID)
		})

		r.Route("/courts", func(r chi.Router) {
			r.Post("/", h.Court.CreateCourt)
			r.Get("/", h.Court.ListCourts)
			r.Get("/{courtID}", h.Court.GetCourtByID)
			r.Put("/{courtID}", h.Court.UpdateCourt)
			r.Delete("/{courtID}", h.Court.DeleteCourt)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", h.Team.CreateTeam)
			r.Get("/", h.Team.ListTeams)
			r.Get("/{teamID}", h.Team.GetTeamByID)
			r.Put("/{teamID}", h.Team.UpdateTeam)
			r.Delete("/{teamID}", h.Team.DeleteTeam)
		})

		r.Route("/games", func(r chi.Router) {
			r.Post("/", h.Game.CreateGame)
			r.Get("/", h.Game.ListGames)
			r.Get("/{gameID}", h.Game.GetGameByID)
			r.Put("/{gameID}", h.Game.UpdateGame)
			r.Delete("/{gameID}", h.Game.DeleteGame)
		})
	})

	return router
}
