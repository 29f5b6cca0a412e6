package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hoopup/pickup-backend/models"
	"github.com/hoopup/pickup-backend/repositories"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store, path
}

func TestOpenCreatesFile(t *testing.T) {
	_, path := openTestStore(t)

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("store file not created: %v", err)
	}
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("expected an error for a corrupt store file")
	}
}

func TestReopenPersistsData(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	user := &models.User{Email: "alice@example.com", Name: "Alice", PasswordHash: "x"}
	if err := NewUserRepository(store).Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	court := &models.Court{Name: "Riverside", Address: "Main St 1"}
	if err := NewCourtRepository(store).Create(ctx, court); err != nil {
		t.Fatalf("create court: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	got, err := NewUserRepository(reopened).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user after reopen: %v", err)
	}
	if got.Email != "alice@example.com" || got.PasswordHash != "x" {
		t.Errorf("user round-trip mismatch: %+v", got)
	}
	if _, err := NewCourtRepository(reopened).GetByID(ctx, court.ID); err != nil {
		t.Errorf("get court after reopen: %v", err)
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()
	repo := NewCourtRepository(store)

	first := &models.Court{Name: "A", Address: "a"}
	second := &models.Court{Name: "B", Address: "b"}
	for _, c := range []*models.Court{first, second} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	// Deleting the row with the highest id must not free its id.
	if err := repo.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	third := &models.Court{Name: "C", Address: "c"}
	if err := repo.Create(ctx, third); err != nil {
		t.Fatalf("create: %v", err)
	}
	if third.ID <= second.ID {
		t.Errorf("id %d reused after deleting %d", third.ID, second.ID)
	}

	// The counter survives a reopen too.
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	repo = NewCourtRepository(reopened)
	if err := repo.Delete(ctx, third.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	fourth := &models.Court{Name: "D", Address: "d"}
	if err := repo.Create(ctx, fourth); err != nil {
		t.Fatalf("create: %v", err)
	}
	if fourth.ID <= third.ID {
		t.Errorf("id %d reused after reopen", fourth.ID)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	repo := NewUserRepository(store)

	if err := repo.Create(ctx, &models.User{Email: "a@example.com", Name: "A"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, &models.User{Email: "a@example.com", Name: "B"})
	if !errors.Is(err, repositories.ErrUserEmailConflict) {
		t.Errorf("got %v, want ErrUserEmailConflict", err)
	}
}

func TestDeleteReferencedRowsRejected(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	court := &models.Court{Name: "Riverside", Address: "Main St 1"}
	if err := NewCourtRepository(store).Create(ctx, court); err != nil {
		t.Fatalf("create court: %v", err)
	}
	team := &models.Team{Name: "Ballers"}
	if err := NewTeamRepository(store).Create(ctx, team); err != nil {
		t.Fatalf("create team: %v", err)
	}
	host := &models.User{Email: "h@example.com", Name: "H"}
	if err := NewUserRepository(store).Create(ctx, host); err != nil {
		t.Fatalf("create host: %v", err)
	}

	game := &models.Game{
		DateTime:   time.Now().UTC(),
		Status:     models.GameStatusScheduled,
		CourtID:    court.ID,
		HostID:     host.ID,
		HomeTeamID: &team.ID,
	}
	if err := NewGameRepository(store).Create(ctx, game); err != nil {
		t.Fatalf("create game: %v", err)
	}

	if err := NewCourtRepository(store).Delete(ctx, court.ID); !errors.Is(err, repositories.ErrCourtInUse) {
		t.Errorf("court delete: got %v, want ErrCourtInUse", err)
	}
	if err := NewTeamRepository(store).Delete(ctx, team.ID); !errors.Is(err, repositories.ErrTeamInUse) {
		t.Errorf("team delete: got %v, want ErrTeamInUse", err)
	}
}

func TestSetMembersDedupes(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	user := &models.User{Email: "a@example.com", Name: "A"}
	if err := NewUserRepository(store).Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	team := &models.Team{Name: "Ballers"}
	teamRepo := NewTeamRepository(store)
	if err := teamRepo.Create(ctx, team); err != nil {
		t.Fatalf("create team: %v", err)
	}

	if err := teamRepo.SetMembers(ctx, team.ID, []int{user.ID, user.ID, user.ID}); err != nil {
		t.Fatalf("set members: %v", err)
	}
	members, err := NewUserRepository(store).ListByTeamID(ctx, team.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("got %d members, want 1", len(members))
	}
}

func TestDeleteRollsBackOnSaveFailure(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()
	repo := NewCourtRepository(store)

	court := &models.Court{Name: "Riverside", Address: "Main St 1"}
	if err := repo.Create(ctx, court); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A directory squatting on the temp file makes every save fail.
	if err := os.Mkdir(path+".tmp", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := repo.Delete(ctx, court.ID); err == nil {
		t.Fatal("expected delete to fail while the store cannot save")
	}
	// The in-memory record survives the failed save.
	if _, err := repo.GetByID(ctx, court.ID); err != nil {
		t.Errorf("record lost after failed save: %v", err)
	}

	if err := os.Remove(path + ".tmp"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.Delete(ctx, court.ID); err != nil {
		t.Errorf("delete once saving works again: %v", err)
	}
}

func TestGameTeamPointersDoNotAlias(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	court := &models.Court{Name: "Riverside", Address: "Main St 1"}
	if err := NewCourtRepository(store).Create(ctx, court); err != nil {
		t.Fatalf("create court: %v", err)
	}
	host := &models.User{Email: "h@example.com", Name: "H"}
	if err := NewUserRepository(store).Create(ctx, host); err != nil {
		t.Fatalf("create host: %v", err)
	}

	teamID := 5
	repo := NewGameRepository(store)
	game := &models.Game{
		DateTime:   time.Now().UTC(),
		Status:     models.GameStatusScheduled,
		CourtID:    court.ID,
		HostID:     host.ID,
		HomeTeamID: &teamID,
	}
	if err := repo.Create(ctx, game); err != nil {
		t.Fatalf("create game: %v", err)
	}

	// Mutating the caller's pointer must not touch the stored record.
	teamID = 99
	got, err := repo.GetByID(ctx, game.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.HomeTeamID == nil || *got.HomeTeamID != 5 {
		t.Errorf("home_team_id = %v, want 5", got.HomeTeamID)
	}
}
