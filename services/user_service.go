package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoopup/pickup-backend/models"
	"github.com/hoopup/pickup-backend/repositories"
)

type UserService interface {
	// GetByID returns the user with hosted games (each carrying its
	// court) and team memberships populated.
	GetByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type userService struct {
	userRepo  repositories.UserRepository
	teamRepo  repositories.TeamRepository
	gameRepo  repositories.GameRepository
	courtRepo repositories.CourtRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
	courtRepo repositories.CourtRepository,
) UserService {
	return &userService{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		gameRepo:  gameRepo,
		courtRepo: courtRepo,
	}
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, &NotFoundError{Kind: "user", ID: id}
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	games, err := s.gameRepo.ListByHostID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list games hosted by user %d: %w", id, err)
	}
	for i := range games {
		court, err := s.courtRepo.GetByID(ctx, games[i].CourtID)
		if err == nil {
			games[i].Court = court
		} else if !errors.Is(err, repositories.ErrCourtNotFound) {
			return nil, fmt.Errorf("failed to load court for game %d: %w", games[i].ID, err)
		}
	}
	user.GamesHosted = games

	teams, err := s.teamRepo.ListByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for user %d: %w", id, err)
	}
	user.Teams = teams

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		return []models.User{}, nil
	}
	scrubPasswordHashes(users)
	return users, nil
}

// scrubPasswordHashes blanks the hash on every user leaving the service
// layer; repositories load it for authentication only.
func scrubPasswordHashes(users []models.User) {
	for i := range users {
		users[i].PasswordHash = ""
	}
}
