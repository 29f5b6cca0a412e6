package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hoopup/pickup-backend/models"
	"github.com/hoopup/pickup-backend/repositories"
)

type CourtService interface {
	Create(ctx context.Context, input CreateCourtInput) (*models.Court, error)
	GetByID(ctx context.Context, id int) (*models.Court, error)
	List(ctx context.Context) ([]models.Court, error)
	Update(ctx context.Context, id int, input UpdateCourtInput) (*models.Court, error)
	Delete(ctx context.Context, id int) error
}

type CreateCourtInput struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type UpdateCourtInput struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

type courtService struct {
	courtRepo repositories.CourtRepository
	gameRepo  repositories.GameRepository
}

func NewCourtService(courtRepo repositories.CourtRepository, gameRepo repositories.GameRepository) CourtService {
	return &courtService{courtRepo: courtRepo, gameRepo: gameRepo}
}

func (s *courtService) Create(ctx context.Context, input CreateCourtInput) (*models.Court, error) {
	name := strings.TrimSpace(input.Name)
	address := strings.TrimSpace(input.Address)
	if name == "" || address == "" {
		return nil, ErrCourtFieldsRequired
	}

	court := &models.Court{
		Name:        name,
		Address:     address,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := s.courtRepo.Create(ctx, court); err != nil {
		return nil, fmt.Errorf("failed to create court: %w", err)
	}
	return court, nil
}

// GetByID returns the court with its games populated; the games are
// rendered without the court to keep the expansion one level deep.
func (s *courtService) GetByID(ctx context.Context, id int) (*models.Court, error) {
	court, err := s.getCourt(ctx, id)
	if err != nil {
		return nil, err
	}

	games, err := s.gameRepo.ListByCourtID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for court %d: %w", id, err)
	}
	court.Games = games
	return court, nil
}

func (s *courtService) List(ctx context.Context) ([]models.Court, error) {
	courts, err := s.courtRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	if courts == nil {
		return []models.Court{}, nil
	}
	return courts, nil
}

func (s *courtService) Update(ctx context.Context, id int, input UpdateCourtInput) (*models.Court, error) {
	court, err := s.getCourt(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		court.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		court.Address = strings.TrimSpace(*input.Address)
	}
	if input.Description != nil {
		court.Description = *input.Description
	}
	if input.ImageURL != nil {
		court.ImageURL = *input.ImageURL
	}

	// Required fields must survive the partial update.
	if court.Name == "" || court.Address == "" {
		return nil, ErrCourtFieldsRequired
	}

	if err := s.courtRepo.Update(ctx, court); err != nil {
		if errors.Is(err, repositories.ErrCourtNotFound) {
			return nil, &NotFoundError{Kind: "court", ID: id}
		}
		return nil, fmt.Errorf("failed to update court %d: %w", id, err)
	}
	return court, nil
}

func (s *courtService) Delete(ctx context.Context, id int) error {
	if _, err := s.getCourt(ctx, id); err != nil {
		return err
	}

	inUse, err := s.gameRepo.ExistsByCourtID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check games for court %d: %w", id, err)
	}
	if inUse {
		return ErrCourtInUse
	}

	if err := s.courtRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrCourtNotFound):
			return &NotFoundError{Kind: "court", ID: id}
		case errors.Is(err, repositories.ErrCourtInUse):
			return ErrCourtInUse
		default:
			return fmt.Errorf("failed to delete court %d: %w", id, err)
		}
	}
	return nil
}

func (s *courtService) getCourt(ctx context.Context, id int) (*models.Court, error) {
	court, err := s.courtRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourtNotFound) {
			return nil, &NotFoundError{Kind: "court", ID: id}
		}
		return nil, fmt.Errorf("failed to get court %d: %w", id, err)
	}
	return court, nil
}
