package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/hoopup/pickup-backend/filestore"
	"github.com/hoopup/pickup-backend/models"
)

// testEnv wires every service against a file-backed store in a temp dir.
type testEnv struct {
	auth   AuthService
	users  UserService
	courts CourtService
	teams  TeamService
	games  GameService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := filestore.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})

	userRepo := filestore.NewUserRepository(store)
	courtRepo := filestore.NewCourtRepository(store)
	teamRepo := filestore.NewTeamRepository(store)
	gameRepo := filestore.NewGameRepository(store)

	return &testEnv{
		auth:   NewAuthService(userRepo),
		users:  NewUserService(userRepo, teamRepo, gameRepo, courtRepo),
		courts: NewCourtService(courtRepo, gameRepo),
		teams:  NewTeamService(teamRepo, userRepo, gameRepo),
		games:  NewGameService(gameRepo, courtRepo, userRepo, teamRepo),
	}
}

func (e *testEnv) mustRegister(t *testing.T, email, name string) *models.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "hunter2hunter2",
		Name:     name,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func (e *testEnv) mustCreateCourt(t *testing.T, name string) *models.Court {
	t.Helper()
	court, err := e.courts.Create(context.Background(), CreateCourtInput{
		Name:    name,
		Address: fmt.Sprintf("%s street 1", name),
	})
	if err != nil {
		t.Fatalf("create court %s: %v", name, err)
	}
	return court
}

func (e *testEnv) mustCreateTeam(t *testing.T, name string, memberIDs ...int) *models.Team {
	t.Helper()
	team, err := e.teams.Create(context.Background(), CreateTeamInput{
		Name:      name,
		MemberIDs: memberIDs,
	})
	if err != nil {
		t.Fatalf("create team %s: %v", name, err)
	}
	return team
}

func (e *testEnv) mustCreateGame(t *testing.T, input CreateGameInput) *models.Game {
	t.Helper()
	game, err := e.games.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return game
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// assertNotFound checks err is a NotFoundError for the given kind and id.
func assertNotFound(t *testing.T, err error, kind string, id int) {
	t.Helper()
	nfe, ok := err.(*NotFoundError)
	if !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nfe.Kind != kind || nfe.ID != id {
		t.Fatalf("expected %s with id %d, got %q", kind, id, nfe.Error())
	}
}
