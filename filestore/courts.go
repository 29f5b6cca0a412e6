package filestore

import (
	"context"
	"time"

	"github.com/hoopup/pickup-backend/models"
	"github.com/hoopup/pickup-backend/repositories"
)

type courtRepository struct {
	store *Store
}

func NewCourtRepository(store *Store) repositories.CourtRepository {
	return &courtRepository{store: store}
}

func (r *courtRepository) Create(ctx context.Context, court *models.Court) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	rec := courtRecord{
		ID:          s.nextID("courts", maxCourtID(s.doc.Courts)),
		Name:        court.Name,
		Address:     court.Address,
		Description: court.Description,
		ImageURL:    court.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.doc.Courts = append(s.doc.Courts, rec)
	if err := s.save(); err != nil {
		s.doc.Courts = s.doc.Courts[:len(s.doc.Courts)-1]
		return err
	}
	court.ID = rec.ID
	court.CreatedAt = rec.CreatedAt
	court.UpdatedAt = rec.UpdatedAt
	return nil
}

func (r *courtRepository) GetByID(ctx context.Context, id int) (*models.Court, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.doc.Courts {
		if rec.ID == id {
			return courtModel(rec), nil
		}
	}
	return nil, repositories.ErrCourtNotFound
}

func (r *courtRepository) List(ctx context.Context) ([]models.Court, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	courts := make([]models.Court, 0, len(s.doc.Courts))
	for _, rec := range s.doc.Courts {
		courts = append(courts, *courtModel(rec))
	}
	return courts, nil
}

func (r *courtRepository) Update(ctx context.Context, court *models.Court) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.doc.Courts {
		if rec.ID != court.ID {
			continue
		}
		updated := rec
		updated.Name = court.Name
		updated.Address = court.Address
		updated.Description = court.Description
		updated.ImageURL = court.ImageURL
		updated.UpdatedAt = time.Now().UTC()

		s.doc.Courts[i] = updated
		if err := s.save(); err != nil {
			s.doc.Courts[i] = rec
			return err
		}
		court.CreatedAt = updated.CreatedAt
		court.UpdatedAt = updated.UpdatedAt
		return nil
	}
	return repositories.ErrCourtNotFound
}

func (r *courtRepository) Delete(ctx context.Context, id int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, game := range s.doc.Games {
		if game.CourtID == id {
			return repositories.ErrCourtInUse
		}
	}

	for i, rec := range s.doc.Courts {
		if rec.ID != id {
			continue
		}
		prior := s.doc.Courts
		courts := make([]courtRecord, 0, len(prior)-1)
		courts = append(courts, prior[:i]...)
		courts = append(courts, prior[i+1:]...)

		s.doc.Courts = courts
		if err := s.save(); err != nil {
			s.doc.Courts = prior
			return err
		}
		return nil
	}
	return repositories.ErrCourtNotFound
}

func courtModel(rec courtRecord) *models.Court {
	return &models.Court{
		ID:          rec.ID,
		Name:        rec.Name,
		Address:     rec.Address,
		Description: rec.Description,
		ImageURL:    rec.ImageURL,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
