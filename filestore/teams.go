package filestore

import (
	"context"
	"time"

	"github.com/hoopup/pickup-backend/models"
	"github.com/hoopup/pickup-backend/repositories"
)

type teamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) repositories.TeamRepository {
	return &teamRepository{store: store}
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.doc.Teams {
		if rec.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}

	now := time.Now().UTC()
	rec := teamRecord{
		ID:          s.nextID("teams", maxTeamID(s.doc.Teams)),
		Name:        team.Name,
		Description: team.Description,
		MemberIDs:   []int{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.doc.Teams = append(s.doc.Teams, rec)
	if err := s.save(); err != nil {
		s.doc.Teams = s.doc.Teams[:len(s.doc.Teams)-1]
		return err
	}
	team.ID = rec.ID
	team.CreatedAt = rec.CreatedAt
	team.UpdatedAt = rec.UpdatedAt
	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.doc.Teams {
		if rec.ID == id {
			return teamModel(rec), nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *teamRepository) List(ctx context.Context) ([]models.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams := make([]models.Team, 0, len(s.doc.Teams))
	for _, rec := range s.doc.Teams {
		teams = append(teams, *teamModel(rec))
	}
	return teams, nil
}

func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.doc.Teams {
		if rec.Name == team.Name && rec.ID != team.ID {
			return repositories.ErrTeamNameConflict
		}
	}

	for i, rec := range s.doc.Teams {
		if rec.ID != team.ID {
			continue
		}
		updated := rec
		updated.Name = team.Name
		updated.Description = team.Description
		updated.UpdatedAt = time.Now().UTC()

		s.doc.Teams[i] = updated
		if err := s.save(); err != nil {
			s.doc.Teams[i] = rec
			return err
		}
		team.CreatedAt = updated.CreatedAt
		team.UpdatedAt = updated.UpdatedAt
		return nil
	}
	return repositories.ErrTeamNotFound
}

func (r *teamRepository) Delete(ctx context.Context, id int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, game := range s.doc.Games {
		if (game.HomeTeamID != nil && *game.HomeTeamID == id) ||
			(game.AwayTeamID != nil && *game.AwayTeamID == id) {
			return repositories.ErrTeamInUse
		}
	}

	for i, rec := range s.doc.Teams {
		if rec.ID != id {
			continue
		}
		prior := s.doc.Teams
		teams := make([]teamRecord, 0, len(prior)-1)
		teams = append(teams, prior[:i]...)
		teams = append(teams, prior[i+1:]...)

		s.doc.Teams = teams
		if err := s.save(); err != nil {
			s.doc.Teams = prior
			return err
		}
		return nil
	}
	return repositories.ErrTeamNotFound
}

func (r *teamRepository) SetMembers(ctx context.Context, teamID int, userIDs []int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.doc.Teams {
		if rec.ID != teamID {
			continue
		}
		updated := rec
		updated.MemberIDs = dedupeIDs(userIDs)
		updated.UpdatedAt = time.Now().UTC()

		s.doc.Teams[i] = updated
		if err := s.save(); err != nil {
			s.doc.Teams[i] = rec
			return err
		}
		return nil
	}
	return repositories.ErrTeamNotFound
}

func (r *teamRepository) ListByUserID(ctx context.Context, userID int) ([]models.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams := make([]models.Team, 0)
	for _, rec := range s.doc.Teams {
		for _, memberID := range rec.MemberIDs {
			if memberID == userID {
				teams = append(teams, *teamModel(rec))
				break
			}
		}
	}
	return teams, nil
}

func teamModel(rec teamRecord) *models.Team {
	return &models.Team{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

// dedupeIDs keeps first occurrences; membership is a set.
func dedupeIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
