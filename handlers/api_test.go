package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hoopup/pickup-backend/filestore"
	"github.com/hoopup/pickup-backend/handlers"
	"github.com/hoopup/pickup-backend/routes"
	"github.com/hoopup/pickup-backend/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := filestore.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	userRepo := filestore.NewUserRepository(store)
	courtRepo := filestore.NewCourtRepository(store)
	teamRepo := filestore.NewTeamRepository(store)
	gameRepo := filestore.NewGameRepository(store)

	router := routes.InitRoutes(routes.Handlers{
		Auth:  handlers.NewAuthHandler(services.NewAuthService(userRepo)),
		User:  handlers.NewUserHandler(services.NewUserService(userRepo, teamRepo, gameRepo, courtRepo)),
		Court: handlers.NewCourtHandler(services.NewCourtService(courtRepo, gameRepo)),
		Team:  handlers.NewTeamHandler(services.NewTeamService(teamRepo, userRepo, gameRepo)),
		Game:  handlers.NewGameHandler(services.NewGameService(gameRepo, courtRepo, userRepo, teamRepo)),
	}, []string{"*"})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// doJSON sends body (marshalled) and decodes the response into a generic map.
func doJSON(t *testing.T, server *httptest.Server, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response of %s %s: %v", method, path, err)
	}
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, server *httptest.Server, path string) (int, []map[string]interface{}) {
	t.Helper()

	resp, err := server.Client().Get(server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	var decoded []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response of GET %s: %v", path, err)
	}
	return resp.StatusCode, decoded
}

func signupUser(t *testing.T, server *httptest.Server, email, name string) int {
	t.Helper()
	status, body := doJSON(t, server, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    email,
		"password": "swordfish",
		"name":     name,
	})
	if status != http.StatusCreated {
		t.Fatalf("signup %s: status %d, body %v", email, status, body)
	}
	return int(body["id"].(float64))
}

func createCourt(t *testing.T, server *httptest.Server, name string) int {
	t.Helper()
	status, body := doJSON(t, server, http.MethodPost, "/api/courts", map[string]string{
		"name":    name,
		"address": name + " street 1",
	})
	if status != http.StatusCreated {
		t.Fatalf("create court %s: status %d, body %v", name, status, body)
	}
	return int(body["id"].(float64))
}

func createTeam(t *testing.T, server *httptest.Server, name string, memberIDs ...int) int {
	t.Helper()
	status, body := doJSON(t, server, http.MethodPost, "/api/teams", map[string]interface{}{
		"name":       name,
		"member_ids": memberIDs,
	})
	if status != http.StatusCreated {
		t.Fatalf("create team %s: status %d, body %v", name, status, body)
	}
	return int(body["id"].(float64))
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	status, body := doJSON(t, server, http.MethodGet, "/healthz", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestSignupAndLoginFlow(t *testing.T) {
	server := newTestServer(t)

	status, body := doJSON(t, server, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "alice@example.com",
		"password": "swordfish",
		"name":     "Alice",
	})
	if status != http.StatusCreated {
		t.Fatalf("signup status = %d, body %v", status, body)
	}
	if body["email"] != "alice@example.com" || body["name"] != "Alice" {
		t.Errorf("signup body = %v", body)
	}
	for _, key := range []string{"password", "password_hash"} {
		if _, ok := body[key]; ok {
			t.Errorf("signup response contains %q", key)
		}
	}

	// Duplicate email is a validation failure, not a conflict.
	status, body = doJSON(t, server, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "alice@example.com",
		"password": "other",
		"name":     "Other Alice",
	})
	if status != http.StatusBadRequest {
		t.Errorf("duplicate signup status = %d", status)
	}
	if body["error"] != "email is already in use" {
		t.Errorf("duplicate signup body = %v", body)
	}

	status, _ = doJSON(t, server, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "swordfish",
	})
	if status != http.StatusOK {
		t.Errorf("login status = %d", status)
	}

	status, body = doJSON(t, server, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Errorf("bad login status = %d", status)
	}
	if body["error"] != "email or password does not match" {
		t.Errorf("bad login body = %v", body)
	}
}

func TestSignupRejectsUnknownFields(t *testing.T) {
	server := newTestServer(t)

	status, body := doJSON(t, server, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "alice@example.com",
		"password": "swordfish",
		"name":     "Alice",
		"role":     "admin",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "unknown key") {
		t.Errorf("error = %q", msg)
	}
}

func TestCourtCRUD(t *testing.T) {
	server := newTestServer(t)

	courtID := createCourt(t, server, "Riverside")

	status, list := doJSONList(t, server, "/api/courts")
	if status != http.StatusOK || len(list) != 1 {
		t.Fatalf("list status = %d, %d courts", status, len(list))
	}
	// Summary views do not expand games.
	if _, ok := list[0]["games"]; ok {
		t.Error("court list expands games")
	}

	path := fmt.Sprintf("/api/courts/%d", courtID)
	status, body := doJSON(t, server, http.MethodGet, path, nil)
	if status != http.StatusOK {
		t.Fatalf("get status = %d", status)
	}
	if games, ok := body["games"].([]interface{}); !ok || len(games) != 0 {
		t.Errorf("court detail games = %v, want empty array", body["games"])
	}

	status, body = doJSON(t, server, http.MethodPut, path, map[string]string{
		"description": "Outdoor, two hoops",
	})
	if status != http.StatusOK {
		t.Fatalf("update status = %d, body %v", status, body)
	}
	if body["description"] != "Outdoor, two hoops" || body["name"] != "Riverside" {
		t.Errorf("update body = %v", body)
	}

	status, body = doJSON(t, server, http.MethodDelete, path, nil)
	if status != http.StatusOK {
		t.Fatalf("delete status = %d", status)
	}
	if body["message"] != "court deleted successfully" {
		t.Errorf("delete body = %v", body)
	}

	status, body = doJSON(t, server, http.MethodGet, path, nil)
	if status != http.StatusNotFound {
		t.Errorf("get after delete status = %d", status)
	}
	if body["error"] != fmt.Sprintf("court with id %d not found", courtID) {
		t.Errorf("404 body = %v", body)
	}
}

func TestGameLifecycle(t *testing.T) {
	server := newTestServer(t)

	hostID := signupUser(t, server, "host@example.com", "Host")
	courtID := createCourt(t, server, "Riverside")
	homeID := createTeam(t, server, "Ballers")
	awayID := createTeam(t, server, "Dunkers")

	status, body := doJSON(t, server, http.MethodPost, "/api/games", map[string]interface{}{
		"date_time":    "2026-09-01T18:00:00Z",
		"court_id":     courtID,
		"host_id":      hostID,
		"home_team_id": homeID,
		"away_team_id": awayID,
	})
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, body %v", status, body)
	}
	gameID := int(body["id"].(float64))
	if body["status"] != "SCHEDULED" {
		t.Errorf("default status = %v", body["status"])
	}
	court, _ := body["court"].(map[string]interface{})
	if court == nil || court["name"] != "Riverside" {
		t.Errorf("court not embedded: %v", body["court"])
	}
	host, _ := body["host"].(map[string]interface{})
	if host == nil || host["name"] != "Host" {
		t.Errorf("host not embedded: %v", body["host"])
	}
	home, _ := body["home_team"].(map[string]interface{})
	if home == nil || home["name"] != "Ballers" {
		t.Errorf("home team not embedded: %v", body["home_team"])
	}

	// Referenced court and team cannot be deleted.
	status, body = doJSON(t, server, http.MethodDelete, fmt.Sprintf("/api/courts/%d", courtID), nil)
	if status != http.StatusBadRequest {
		t.Errorf("delete referenced court status = %d, body %v", status, body)
	}
	status, _ = doJSON(t, server, http.MethodDelete, fmt.Sprintf("/api/teams/%d", homeID), nil)
	if status != http.StatusBadRequest {
		t.Errorf("delete referenced team status = %d", status)
	}

	// Clearing home_team_id with an explicit null frees the team.
	status, body = doJSON(t, server, http.MethodPut, fmt.Sprintf("/api/games/%d", gameID), map[string]interface{}{
		"home_team_id": nil,
		"status":       "CANCELLED",
	})
	if status != http.StatusOK {
		t.Fatalf("update status = %d, body %v", status, body)
	}
	if body["home_team_id"] != nil || body["status"] != "CANCELLED" {
		t.Errorf("update body = %v", body)
	}
	status, _ = doJSON(t, server, http.MethodDelete, fmt.Sprintf("/api/teams/%d", homeID), nil)
	if status != http.StatusOK {
		t.Errorf("delete freed team status = %d", status)
	}

	status, _ = doJSON(t, server, http.MethodDelete, fmt.Sprintf("/api/games/%d", gameID), nil)
	if status != http.StatusOK {
		t.Errorf("delete game status = %d", status)
	}
	status, _ = doJSON(t, server, http.MethodDelete, fmt.Sprintf("/api/courts/%d", courtID), nil)
	if status != http.StatusOK {
		t.Errorf("delete court after game status = %d", status)
	}
}

func TestGameReferenceErrorsNameTheID(t *testing.T) {
	server := newTestServer(t)

	hostID := signupUser(t, server, "host@example.com", "Host")

	status, body := doJSON(t, server, http.MethodPost, "/api/games", map[string]interface{}{
		"date_time": "2026-09-01T18:00:00Z",
		"court_id":  999,
		"host_id":   hostID,
	})
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["error"] != "court with id 999 not found" {
		t.Errorf("body = %v", body)
	}

	// Equal teams fail validation even when neither team exists.
	status, body = doJSON(t, server, http.MethodPost, "/api/games", map[string]interface{}{
		"date_time":    "2026-09-01T18:00:00Z",
		"court_id":     999,
		"host_id":      hostID,
		"home_team_id": 5,
		"away_team_id": 5,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("same teams status = %d, body %v", status, body)
	}
	if body["error"] != "home team and away team must be different" {
		t.Errorf("same teams body = %v", body)
	}
}

func TestUserDetailEndpoint(t *testing.T) {
	server := newTestServer(t)

	userID := signupUser(t, server, "alice@example.com", "Alice")
	createTeam(t, server, "Ballers", userID)

	status, body := doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/users/%d", userID), nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	teams, ok := body["teams"].([]interface{})
	if !ok || len(teams) != 1 {
		t.Errorf("teams = %v, want one entry", body["teams"])
	}
	if games, ok := body["games_hosted"].([]interface{}); !ok || len(games) != 0 {
		t.Errorf("games_hosted = %v, want empty array", body["games_hosted"])
	}

	status, body = doJSON(t, server, http.MethodGet, "/api/users/12345", nil)
	if status != http.StatusNotFound {
		t.Errorf("unknown user status = %d", status)
	}
	if body["error"] != "user with id 12345 not found" {
		t.Errorf("unknown user body = %v", body)
	}
}

func TestPutIsIdempotent(t *testing.T) {
	server := newTestServer(t)

	courtID := createCourt(t, server, "Riverside")
	path := fmt.Sprintf("/api/courts/%d", courtID)
	update := map[string]string{"name": "Lakeside", "description": "Renamed"}

	status, first := doJSON(t, server, http.MethodPut, path, update)
	if status != http.StatusOK {
		t.Fatalf("first put status = %d", status)
	}
	status, second := doJSON(t, server, http.MethodPut, path, update)
	if status != http.StatusOK {
		t.Fatalf("second put status = %d", status)
	}

	for _, key := range []string{"id", "name", "address", "description", "imageUrl"} {
		if first[key] != second[key] {
			t.Errorf("%s differs between puts: %v vs %v", key, first[key], second[key])
		}
	}
}

func TestInvalidIDParam(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/api/courts/abc", "/api/courts/0", "/api/courts/-3"} {
		status, _ := doJSON(t, server, http.MethodGet, path, nil)
		if status != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, status)
		}
	}
}

func TestMalformedBody(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.Client().Post(server.URL+"/api/courts", "application/json",
		strings.NewReader(`{"name": "Riverside",`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
