package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hoopup/pickup-backend/models"
	"github.com/lib/pq"
)

var (
	ErrCourtNotFound = errors.New("court not found")
	ErrCourtInUse    = errors.New("court is referenced by existing games")
)

type CourtRepository interface {
	Create(ctx context.Context, court *models.Court) error
	GetByID(ctx context.Context, id int) (*models.Court, error)
	List(ctx context.Context) ([]models.Court, error)
	Update(ctx context.Context, court *models.Court) error
	Delete(ctx context.Context, id int) error
}

type postgresCourtRepository struct {
	db *sql.DB
}

func NewPostgresCourtRepository(db *sql.DB) CourtRepository {
	return &postgresCourtRepository{db: db}
}

func (r *postgresCourtRepository) Create(ctx context.Context, court *models.Court) error {
	query := `
		INSERT INTO courts (name, address, description, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		court.Name,
		court.Address,
		court.Description,
		court.ImageURL,
	).Scan(&court.ID, &court.CreatedAt, &court.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert court: %w", err)
	}
	return nil
}

func (r *postgresCourtRepository) GetByID(ctx context.Context, id int) (*models.Court, error) {
	query := `
		SELECT id, name, address, description, image_url, created_at, updated_at
		FROM courts
		WHERE id = $1`

	court := &models.Court{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&court.ID,
		&court.Name,
		&court.Address,
		&court.Description,
		&court.ImageURL,
		&court.CreatedAt,
		&court.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return court, nil
}

func (r *postgresCourtRepository) List(ctx context.Context) ([]models.Court, error) {
	query := `
		SELECT id, name, address, description, image_url, created_at, updated_at
		FROM courts
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courts := make([]models.Court, 0)
	for rows.Next() {
		var court models.Court
		scanErr := rows.Scan(
			&court.ID,
			&court.Name,
			&court.Address,
			&court.Description,
			&court.ImageURL,
			&court.CreatedAt,
			&court.UpdatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		courts = append(courts, court)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *postgresCourtRepository) Update(ctx context.Context, court *models.Court) error {
	query := `
		UPDATE courts SET
			name = $1,
			address = $2,
			description = $3,
			image_url = $4,
			updated_at = now()
		WHERE id = $5
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		court.Name,
		court.Address,
		court.Description,
		court.ImageURL,
		court.ID,
	).Scan(&court.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCourtNotFound
		}
		return fmt.Errorf("failed to update court: %w", err)
	}
	return nil
}

func (r *postgresCourtRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM courts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// Games reference courts with ON DELETE RESTRICT; the service layer
		// checks first, this mapping is the backstop.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrCourtInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrCourtNotFound)
}
