package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hoopup/pickup-backend/config"
	"github.com/hoopup/pickup-backend/db"
	"github.com/hoopup/pickup-backend/filestore"
	"github.com/hoopup/pickup-backend/handlers"
	"github.com/hoopup/pickup-backend/repositories"
	"github.com/hoopup/pickup-backend/routes"
	"github.com/hoopup/pickup-backend/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var (
		userRepo  repositories.UserRepository
		courtRepo repositories.CourtRepository
		teamRepo  repositories.TeamRepository
		gameRepo  repositories.GameRepository
	)

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		database, err := db.Connect(cfg.DatabaseURL, 10*time.Second)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}

		userRepo = repositories.NewPostgresUserRepository(database)
		courtRepo = repositories.NewPostgresCourtRepository(database)
		teamRepo = repositories.NewPostgresTeamRepository(database)
		gameRepo = repositories.NewPostgresGameRepository(database)

		logger.Info("using postgres backend")
	case config.BackendFile:
		store, err := filestore.Open(cfg.StoreFile)
		if err != nil {
			return fmt.Errorf("open store file: %w", err)
		}
		defer store.Close()

		userRepo = filestore.NewUserRepository(store)
		courtRepo = filestore.NewCourtRepository(store)
		teamRepo = filestore.NewTeamRepository(store)
		gameRepo = filestore.NewGameRepository(store)

		logger.Info("using file backend", slog.String("path", cfg.StoreFile))
	}

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, teamRepo, gameRepo, courtRepo)
	courtService := services.NewCourtService(courtRepo, gameRepo)
	teamService := services.NewTeamService(teamRepo, userRepo, gameRepo)
	gameService := services.NewGameService(gameRepo, courtRepo, userRepo, teamRepo)

	router := routes.InitRoutes(routes.Handlers{
		Auth:  handlers.NewAuthHandler(authService),
		User:  handlers.NewUserHandler(userService),
		Court: handlers.NewCourtHandler(courtService),
		Team:  handlers.NewTeamHandler(teamService),
		Game:  handlers.NewGameHandler(gameService),
	}, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
