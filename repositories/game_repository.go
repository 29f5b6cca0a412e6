package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hoopup/pickup-backend/models"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id int) error
	ListByCourtID(ctx context.Context, courtID int) ([]models.Game, error)
	ListByHostID(ctx context.Context, hostID int) ([]models.Game, error)
	ListByHomeTeamID(ctx context.Context, teamID int) ([]models.Game, error)
	ListByAwayTeamID(ctx context.Context, teamID int) ([]models.Game, error)
	ExistsByCourtID(ctx context.Context, courtID int) (bool, error)
	ExistsByTeamID(ctx context.Context, teamID int) (bool, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (date_time, status, court_id, host_id, home_team_id, away_team_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		game.DateTime,
		game.Status,
		game.CourtID,
		game.HostID,
		nullableID(game.HomeTeamID),
		nullableID(game.AwayTeamID),
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := selectGames + ` WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	game, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (r *postgresGameRepository) List(ctx context.Context) ([]models.Game, error) {
	return r.listGames(ctx, selectGames+` ORDER BY id ASC`)
}

func (r *postgresGameRepository) Update(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games SET
			date_time = $1,
			status = $2,
			court_id = $3,
			host_id = $4,
			home_team_id = $5,
			away_team_id = $6,
			updated_at = now()
		WHERE id = $7
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		game.DateTime,
		game.Status,
		game.CourtID,
		game.HostID,
		nullableID(game.HomeTeamID),
		nullableID(game.AwayTeamID),
		game.ID,
	).Scan(&game.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to update game: %w", err)
	}
	return nil
}

func (r *postgresGameRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) ListByCourtID(ctx context.Context, courtID int) ([]models.Game, error) {
	return r.listGames(ctx, selectGames+` WHERE court_id = $1 ORDER BY id ASC`, courtID)
}

func (r *postgresGameRepository) ListByHostID(ctx context.Context, hostID int) ([]models.Game, error) {
	return r.listGames(ctx, selectGames+` WHERE host_id = $1 ORDER BY id ASC`, hostID)
}

func (r *postgresGameRepository) ListByHomeTeamID(ctx context.Context, teamID int) ([]models.Game, error) {
	return r.listGames(ctx, selectGames+` WHERE home_team_id = $1 ORDER BY id ASC`, teamID)
}

func (r *postgresGameRepository) ListByAwayTeamID(ctx context.Context, teamID int) ([]models.Game, error) {
	return r.listGames(ctx, selectGames+` WHERE away_team_id = $1 ORDER BY id ASC`, teamID)
}

func (r *postgresGameRepository) ExistsByCourtID(ctx context.Context, courtID int) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM games WHERE court_id = $1)`, courtID)
}

func (r *postgresGameRepository) ExistsByTeamID(ctx context.Context, teamID int) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM games WHERE home_team_id = $1 OR away_team_id = $1)`, teamID)
}

const selectGames = `
	SELECT id, date_time, status, court_id, host_id, home_team_id, away_team_id, created_at, updated_at
	FROM games`

func (r *postgresGameRepository) listGames(ctx context.Context, query string, args ...interface{}) ([]models.Game, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		game, scanErr := scanGame(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		games = append(games, *game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresGameRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(row rowScanner) (*models.Game, error) {
	var (
		game       models.Game
		homeTeamID sql.NullInt64
		awayTeamID sql.NullInt64
	)
	err := row.Scan(
		&game.ID,
		&game.DateTime,
		&game.Status,
		&game.CourtID,
		&game.HostID,
		&homeTeamID,
		&awayTeamID,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if homeTeamID.Valid {
		id := int(homeTeamID.Int64)
		game.HomeTeamID = &id
	}
	if awayTeamID.Valid {
		id := int(awayTeamID.Int64)
		game.AwayTeamID = &id
	}
	return &game, nil
}

func nullableID(id *int) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}
