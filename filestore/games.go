package filestore

import (
	"context"
	"time"

	"github.com/hoopup/pickup-backend/models"
	"github.com/hoopup/pickup-backend/repositories"
)

type gameRepository struct {
	store *Store
}

func NewGameRepository(store *Store) repositories.GameRepository {
	return &gameRepository{store: store}
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	rec := gameRecord{
		ID:         s.nextID("games", maxGameID(s.doc.Games)),
		DateTime:   game.DateTime,
		Status:     string(game.Status),
		CourtID:    game.CourtID,
		HostID:     game.HostID,
		HomeTeamID: copyID(game.HomeTeamID),
		AwayTeamID: copyID(game.AwayTeamID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.doc.Games = append(s.doc.Games, rec)
	if err := s.save(); err != nil {
		s.doc.Games = s.doc.Games[:len(s.doc.Games)-1]
		return err
	}
	game.ID = rec.ID
	game.CreatedAt = rec.CreatedAt
	game.UpdatedAt = rec.UpdatedAt
	return nil
}

func (r *gameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.doc.Games {
		if rec.ID == id {
			return gameModel(rec), nil
		}
	}
	return nil, repositories.ErrGameNotFound
}

func (r *gameRepository) List(ctx context.Context) ([]models.Game, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectGames(func(gameRecord) bool { return true }), nil
}

func (r *gameRepository) Update(ctx context.Context, game *models.Game) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.doc.Games {
		if rec.ID != game.ID {
			continue
		}
		updated := rec
		updated.DateTime = game.DateTime
		updated.Status = string(game.Status)
		updated.CourtID = game.CourtID
		updated.HostID = game.HostID
		updated.HomeTeamID = copyID(game.HomeTeamID)
		updated.AwayTeamID = copyID(game.AwayTeamID)
		updated.UpdatedAt = time.Now().UTC()

		s.doc.Games[i] = updated
		if err := s.save(); err != nil {
			s.doc.Games[i] = rec
			return err
		}
		game.CreatedAt = updated.CreatedAt
		game.UpdatedAt = updated.UpdatedAt
		return nil
	}
	return repositories.ErrGameNotFound
}

func (r *gameRepository) Delete(ctx context.Context, id int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.doc.Games {
		if rec.ID != id {
			continue
		}
		prior := s.doc.Games
		games := make([]gameRecord, 0, len(prior)-1)
		games = append(games, prior[:i]...)
		games = append(games, prior[i+1:]...)

		s.doc.Games = games
		if err := s.save(); err != nil {
			s.doc.Games = prior
			return err
		}
		return nil
	}
	return repositories.ErrGameNotFound
}

func (r *gameRepository) ListByCourtID(ctx context.Context, courtID int) ([]models.Game, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectGames(func(rec gameRecord) bool { return rec.CourtID == courtID }), nil
}

func (r *gameRepository) ListByHostID(ctx context.Context, hostID int) ([]models.Game, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectGames(func(rec gameRecord) bool { return rec.HostID == hostID }), nil
}

func (r *gameRepository) ListByHomeTeamID(ctx context.Context, teamID int) ([]models.Game, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectGames(func(rec gameRecord) bool {
		return rec.HomeTeamID != nil && *rec.HomeTeamID == teamID
	}), nil
}

func (r *gameRepository) ListByAwayTeamID(ctx context.Context, teamID int) ([]models.Game, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectGames(func(rec gameRecord) bool {
		return rec.AwayTeamID != nil && *rec.AwayTeamID == teamID
	}), nil
}

func (r *gameRepository) ExistsByCourtID(ctx context.Context, courtID int) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.doc.Games {
		if rec.CourtID == courtID {
			return true, nil
		}
	}
	return false, nil
}

func (r *gameRepository) ExistsByTeamID(ctx context.Context, teamID int) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.doc.Games {
		if (rec.HomeTeamID != nil && *rec.HomeTeamID == teamID) ||
			(rec.AwayTeamID != nil && *rec.AwayTeamID == teamID) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) collectGames(match func(gameRecord) bool) []models.Game {
	games := make([]models.Game, 0)
	for _, rec := range s.doc.Games {
		if match(rec) {
			games = append(games, *gameModel(rec))
		}
	}
	return games
}

func gameModel(rec gameRecord) *models.Game {
	return &models.Game{
		ID:         rec.ID,
		DateTime:   rec.DateTime,
		Status:     models.GameStatus(rec.Status),
		CourtID:    rec.CourtID,
		HostID:     rec.HostID,
		HomeTeamID: copyID(rec.HomeTeamID),
		AwayTeamID: copyID(rec.AwayTeamID),
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

// copyID clones the pointer so callers cannot alias document state.
func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
