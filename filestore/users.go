package filestore

import (
	"context"

	"github.com/hoopup/pickup-backend/models"
	"github.com/hoopup/pickup-backend/repositories"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repositories.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.doc.Users {
		if rec.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}

	rec := userRecord{
		ID:           s.nextID("users", maxUserID(s.doc.Users)),
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
	}
	s.doc.Users = append(s.doc.Users, rec)
	if err := s.save(); err != nil {
		s.doc.Users = s.doc.Users[:len(s.doc.Users)-1]
		return err
	}
	user.ID = rec.ID
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.doc.Users {
		if rec.ID == id {
			return userModel(rec), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.doc.Users {
		if rec.Email == email {
			return userModel(rec), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.doc.Users))
	for _, rec := range s.doc.Users {
		users = append(users, *userModel(rec))
	}
	return users, nil
}

func (r *userRepository) ListByTeamID(ctx context.Context, teamID int) ([]models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var memberIDs []int
	found := false
	for _, team := range s.doc.Teams {
		if team.ID == teamID {
			memberIDs = team.MemberIDs
			found = true
			break
		}
	}
	if !found {
		return nil, repositories.ErrTeamNotFound
	}

	users := make([]models.User, 0, len(memberIDs))
	for _, id := range memberIDs {
		for _, rec := range s.doc.Users {
			if rec.ID == id {
				users = append(users, *userModel(rec))
				break
			}
		}
	}
	return users, nil
}

func userModel(rec userRecord) *models.User {
	return &models.User{
		ID:           rec.ID,
		Email:        rec.Email,
		Name:         rec.Name,
		PasswordHash: rec.PasswordHash,
	}
}
