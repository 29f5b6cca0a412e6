package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hoopup/pickup-backend/models"
	"github.com/hoopup/pickup-backend/repositories"
)

type GameService interface {
	Create(ctx context.Context, input CreateGameInput) (*models.Game, error)
	// GetByID returns the game with court, host and both teams populated.
	GetByID(ctx context.Context, id int) (*models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
	Update(ctx context.Context, id int, input UpdateGameInput) (*models.Game, error)
	Delete(ctx context.Context, id int) error
}

type CreateGameInput struct {
	DateTime   string `json:"date_time"`
	CourtID    int    `json:"court_id"`
	HostID     int    `json:"host_id"`
	HomeTeamID *int   `json:"home_team_id"`
	AwayTeamID *int   `json:"away_team_id"`
	Status     string `json:"status"`
}

type UpdateGameInput struct {
	DateTime   *string     `json:"date_time"`
	CourtID    *int        `json:"court_id"`
	HostID     *int        `json:"host_id"`
	HomeTeamID OptionalInt `json:"home_team_id"`
	AwayTeamID OptionalInt `json:"away_team_id"`
	Status     *string     `json:"status"`
}

// OptionalInt distinguishes an absent field from an explicit null in a
// partial update body: absent keeps the prior value, null clears it.
type OptionalInt struct {
	Set   bool
	Value *int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type gameService struct {
	gameRepo  repositories.GameRepository
	courtRepo repositories.CourtRepository
	userRepo  repositories.UserRepository
	teamRepo  repositories.TeamRepository
}

func NewGameService(
	gameRepo repositories.GameRepository,
	courtRepo repositories.CourtRepository,
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
) GameService {
	return &gameService{
		gameRepo:  gameRepo,
		courtRepo: courtRepo,
		userRepo:  userRepo,
		teamRepo:  teamRepo,
	}
}

func (s *gameService) Create(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	if input.DateTime == "" || input.CourtID == 0 || input.HostID == 0 {
		return nil, ErrGameFieldsRequired
	}

	dateTime, err := parseDateTime(input.DateTime)
	if err != nil {
		return nil, err
	}

	status := models.GameStatusScheduled
	if input.Status != "" {
		status = models.GameStatus(input.Status)
		if !status.Valid() {
			return nil, ErrInvalidGameStatus
		}
	}

	game := &models.Game{
		DateTime:   dateTime,
		Status:     status,
		CourtID:    input.CourtID,
		HostID:     input.HostID,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
	}
	if err := s.validateReferences(ctx, game); err != nil {
		return nil, err
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err := s.attachRelations(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *gameService) GetByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.getGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachRelations(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *gameService) List(ctx context.Context) ([]models.Game, error) {
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	for i := range games {
		if err := s.attachRelations(ctx, &games[i]); err != nil {
			return nil, err
		}
	}
	if games == nil {
		return []models.Game{}, nil
	}
	return games, nil
}

func (s *gameService) Update(ctx context.Context, id int, input UpdateGameInput) (*models.Game, error) {
	game, err := s.getGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DateTime != nil {
		dateTime, err := parseDateTime(*input.DateTime)
		if err != nil {
			return nil, err
		}
		game.DateTime = dateTime
	}
	if input.Status != nil {
		status := models.GameStatus(*input.Status)
		if !status.Valid() {
			return nil, ErrInvalidGameStatus
		}
		game.Status = status
	}
	if input.CourtID != nil {
		game.CourtID = *input.CourtID
	}
	if input.HostID != nil {
		game.HostID = *input.HostID
	}
	if input.HomeTeamID.Set {
		game.HomeTeamID = input.HomeTeamID.Value
	}
	if input.AwayTeamID.Set {
		game.AwayTeamID = input.AwayTeamID.Value
	}

	if err := s.validateReferences(ctx, game); err != nil {
		return nil, err
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, &NotFoundError{Kind: "game", ID: id}
		}
		return nil, fmt.Errorf("failed to update game %d: %w", id, err)
	}

	if err := s.attachRelations(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *gameService) Delete(ctx context.Context, id int) error {
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return &NotFoundError{Kind: "game", ID: id}
		}
		return fmt.Errorf("failed to delete game %d: %w", id, err)
	}
	return nil
}

func (s *gameService) getGame(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, &NotFoundError{Kind: "game", ID: id}
		}
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return game, nil
}

// validateReferences enforces the game invariants against the final
// field values: distinct teams first (it holds even for ids that do not
// exist), then every reference resolved against the store.
func (s *gameService) validateReferences(ctx context.Context, game *models.Game) error {
	if game.HomeTeamID != nil && game.AwayTeamID != nil && *game.HomeTeamID == *game.AwayTeamID {
		return ErrSameTeams
	}

	if _, err := s.courtRepo.GetByID(ctx, game.CourtID); err != nil {
		if errors.Is(err, repositories.ErrCourtNotFound) {
			return &NotFoundError{Kind: "court", ID: game.CourtID}
		}
		return fmt.Errorf("failed to check court %d: %w", game.CourtID, err)
	}
	if _, err := s.userRepo.GetByID(ctx, game.HostID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return &NotFoundError{Kind: "user", ID: game.HostID}
		}
		return fmt.Errorf("failed to check host %d: %w", game.HostID, err)
	}
	if game.HomeTeamID != nil {
		if _, err := s.teamRepo.GetByID(ctx, *game.HomeTeamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return &NotFoundError{Kind: "home team", ID: *game.HomeTeamID}
			}
			return fmt.Errorf("failed to check home team %d: %w", *game.HomeTeamID, err)
		}
	}
	if game.AwayTeamID != nil {
		if _, err := s.teamRepo.GetByID(ctx, *game.AwayTeamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return &NotFoundError{Kind: "away team", ID: *game.AwayTeamID}
			}
			return fmt.Errorf("failed to check away team %d: %w", *game.AwayTeamID, err)
		}
	}
	return nil
}

func (s *gameService) attachRelations(ctx context.Context, game *models.Game) error {
	court, err := s.courtRepo.GetByID(ctx, game.CourtID)
	if err != nil && !errors.Is(err, repositories.ErrCourtNotFound) {
		return fmt.Errorf("failed to load court for game %d: %w", game.ID, err)
	}
	game.Court = court

	host, err := s.userRepo.GetByID(ctx, game.HostID)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to load host for game %d: %w", game.ID, err)
	}
	if host != nil {
		host.PasswordHash = ""
	}
	game.Host = host

	if game.HomeTeamID != nil {
		home, err := s.teamRepo.GetByID(ctx, *game.HomeTeamID)
		if err != nil && !errors.Is(err, repositories.ErrTeamNotFound) {
			return fmt.Errorf("failed to load home team for game %d: %w", game.ID, err)
		}
		game.HomeTeam = home
	}
	if game.AwayTeamID != nil {
		away, err := s.teamRepo.GetByID(ctx, *game.AwayTeamID)
		if err != nil && !errors.Is(err, repositories.ErrTeamNotFound) {
			return fmt.Errorf("failed to load away team for game %d: %w", game.ID, err)
		}
		game.AwayTeam = away
	}
	return nil
}

// parseDateTime accepts RFC 3339 and the zone-less seconds form the
// legacy clients send ("2024-08-15T18:00:00").
func parseDateTime(value string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}
