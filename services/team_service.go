package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hoopup/pickup-backend/models"
	"github.com/hoopup/pickup-backend/repositories"
)

type TeamService interface {
	Create(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	// GetByID returns the team with members and its home/away games
	// populated.
	GetByID(ctx context.Context, id int) (*models.Team, error)
	// List returns all teams with members populated.
	List(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	Delete(ctx context.Context, id int) error
}

type CreateTeamInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberIDs   []int  `json:"member_ids"`
}

type UpdateTeamInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	MemberIDs   *[]int  `json:"member_ids"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	userRepo repositories.UserRepository
	gameRepo repositories.GameRepository
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	gameRepo repositories.GameRepository,
) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		gameRepo: gameRepo,
	}
}

func (s *teamService) Create(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if err := s.checkMembers(ctx, input.MemberIDs); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:        name,
		Description: input.Description,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameTaken
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if len(input.MemberIDs) > 0 {
		if err := s.teamRepo.SetMembers(ctx, team.ID, input.MemberIDs); err != nil {
			return nil, fmt.Errorf("failed to set members for team %d: %w", team.ID, err)
		}
	}

	members, err := s.userRepo.ListByTeamID(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for team %d: %w", team.ID, err)
	}
	scrubPasswordHashes(members)
	team.Members = members
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachMembers(ctx, team); err != nil {
		return nil, err
	}
	if err := s.attachGames(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for i := range teams {
		if err := s.attachMembers(ctx, &teams[i]); err != nil {
			return nil, err
		}
	}
	if teams == nil {
		return []models.Team{}, nil
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		team.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		team.Description = *input.Description
	}
	if team.Name == "" {
		return nil, ErrTeamNameRequired
	}

	if input.MemberIDs != nil {
		if err := s.checkMembers(ctx, *input.MemberIDs); err != nil {
			return nil, err
		}
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, &NotFoundError{Kind: "team", ID: id}
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameTaken
		default:
			return nil, fmt.Errorf("failed to update team %d: %w", id, err)
		}
	}

	if input.MemberIDs != nil {
		if err := s.teamRepo.SetMembers(ctx, id, *input.MemberIDs); err != nil {
			return nil, fmt.Errorf("failed to set members for team %d: %w", id, err)
		}
	}

	if err := s.attachMembers(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	if _, err := s.getTeam(ctx, id); err != nil {
		return err
	}

	inUse, err := s.gameRepo.ExistsByTeamID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check games for team %d: %w", id, err)
	}
	if inUse {
		return ErrTeamInUse
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return &NotFoundError{Kind: "team", ID: id}
		case errors.Is(err, repositories.ErrTeamInUse):
			return ErrTeamInUse
		default:
			return fmt.Errorf("failed to delete team %d: %w", id, err)
		}
	}
	return nil
}

func (s *teamService) getTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, &NotFoundError{Kind: "team", ID: id}
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return team, nil
}

// checkMembers rejects membership lists naming users that do not exist.
func (s *teamService) checkMembers(ctx context.Context, userIDs []int) error {
	for _, userID := range userIDs {
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return &NotFoundError{Kind: "user", ID: userID}
			}
			return fmt.Errorf("failed to check member %d: %w", userID, err)
		}
	}
	return nil
}

func (s *teamService) attachMembers(ctx context.Context, team *models.Team) error {
	members, err := s.userRepo.ListByTeamID(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("failed to list members for team %d: %w", team.ID, err)
	}
	scrubPasswordHashes(members)
	team.Members = members
	return nil
}

// attachGames loads the team's home and away games, with both teams of
// each game resolved so views can render opponent names.
func (s *teamService) attachGames(ctx context.Context, team *models.Team) error {
	homeGames, err := s.gameRepo.ListByHomeTeamID(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("failed to list home games for team %d: %w", team.ID, err)
	}
	awayGames, err := s.gameRepo.ListByAwayTeamID(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("failed to list away games for team %d: %w", team.ID, err)
	}

	for _, games := range [][]models.Game{homeGames, awayGames} {
		for i := range games {
			if err := s.attachGameTeams(ctx, &games[i]); err != nil {
				return err
			}
		}
	}
	team.HomeGames = homeGames
	team.AwayGames = awayGames
	return nil
}

func (s *teamService) attachGameTeams(ctx context.Context, game *models.Game) error {
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
