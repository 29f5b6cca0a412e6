// Package views shapes entities into their JSON representations. Each
// entity kind has a declarative expansion shape bound once per route;
// nested entities are always rendered with the zero shape, which bounds
// the expansion at one level and makes reference cycles between users,
// teams, games and courts structurally impossible.
package views

import (
	"time"

	"github.com/hoopup/pickup-backend/models"
)

type UserShape struct {
	GamesHosted bool
	Teams       bool
}

type TeamShape struct {
	Members bool
	Games   bool
}

type CourtShape struct {
	Games bool
}

type GameShape struct {
	Court bool
	Host  bool
	// TeamNames renders home_team_name/away_team_name instead of the
	// embedded team objects; used inside team views.
	TeamNames bool
	FullTeams bool
}

// Shapes used by the HTTP surface.
var (
	UserDetail  = UserShape{GamesHosted: true, Teams: true}
	TeamSummary = TeamShape{Members: true}
	TeamDetail  = TeamShape{Members: true, Games: true}
	CourtDetail = CourtShape{Games: true}
	GameDetail  = GameShape{Court: true, Host: true, FullTeams: true}
	// Hosted games carry their court but not the host again.
	hostedGame = GameShape{Court: true}
	teamGame   = GameShape{TeamNames: true}
)

type User struct {
	ID          int     `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	GamesHosted *[]Game `json:"games_hosted,omitempty"`
	Teams       *[]Team `json:"teams,omitempty"`
}

type Team struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	Members     *[]User `json:"members,omitempty"`
	HomeGames   *[]Game `json:"home_games,omitempty"`
	AwayGames   *[]Game `json:"away_games,omitempty"`
}

type Court struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	Games       *[]Game `json:"games,omitempty"`
}

type Game struct {
	ID           int     `json:"id"`
	DateTime     string  `json:"date_time"`
	Status       string  `json:"status"`
	CourtID      int     `json:"court_id"`
	HostID       int     `json:"host_id"`
	HomeTeamID   *int    `json:"home_team_id"`
	AwayTeamID   *int    `json:"away_team_id"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	Court        *Court  `json:"court,omitempty"`
	Host         *User   `json:"host,omitempty"`
	HomeTeam     *Team   `json:"home_team,omitempty"`
	AwayTeam     *Team   `json:"away_team,omitempty"`
	HomeTeamName *string `json:"home_team_name,omitempty"`
	AwayTeamName *string `json:"away_team_name,omitempty"`
}

func NewUser(u *models.User, shape UserShape) User {
	view := User{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
	if shape.GamesHosted {
		games := NewGames(u.GamesHosted, hostedGame)
		view.GamesHosted = &games
	}
	if shape.Teams {
		teams := NewTeams(u.Teams, TeamShape{})
		view.Teams = &teams
	}
	return view
}

func NewUsers(users []models.User, shape UserShape) []User {
	out := make([]User, 0, len(users))
	for i := range users {
		out = append(out, NewUser(&users[i], shape))
	}
	return out
}

func NewTeam(t *models.Team, shape TeamShape) Team {
	view := Team{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	}
	if shape.Members {
		members := NewUsers(t.Members, UserShape{})
		view.Members = &members
	}
	if shape.Games {
		homeGames := NewGames(t.HomeGames, teamGame)
		awayGames := NewGames(t.AwayGames, teamGame)
		view.HomeGames = &homeGames
		view.AwayGames = &awayGames
	}
	return view
}

func NewTeams(teams []models.Team, shape TeamShape) []Team {
	out := make([]Team, 0, len(teams))
	for i := range teams {
		out = append(out, NewTeam(&teams[i], shape))
	}
	return out
}

func NewCourt(c *models.Court, shape CourtShape) Court {
	view := Court{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
	if shape.Games {
		games := NewGames(c.Games, GameShape{})
		view.Games = &games
	}
	return view
}

func NewCourts(courts []models.Court, shape CourtShape) []Court {
	out := make([]Court, 0, len(courts))
	for i := range courts {
		out = append(out, NewCourt(&courts[i], shape))
	}
	return out
}

func NewGame(g *models.Game, shape GameShape) Game {
	view := Game{
		ID:         g.ID,
		DateTime:   formatTime(g.DateTime),
		Status:     string(g.Status),
		CourtID:    g.CourtID,
		HostID:     g.HostID,
		HomeTeamID: g.HomeTeamID,
		AwayTeamID: g.AwayTeamID,
		CreatedAt:  formatTime(g.CreatedAt),
		UpdatedAt:  formatTime(g.UpdatedAt),
	}
	if shape.Court && g.Court != nil {
		court := NewCourt(g.Court, CourtShape{})
		view.Court = &court
	}
	if shape.Host && g.Host != nil {
		host := NewUser(g.Host, UserShape{})
		view.Host = &host
	}
	switch {
	case shape.FullTeams:
		if g.HomeTeam != nil {
			home := NewTeam(g.HomeTeam, TeamShape{})
			view.HomeTeam = &home
		}
		if g.AwayTeam != nil {
			away := NewTeam(g.AwayTeam, TeamShape{})
			view.AwayTeam = &away
		}
	case shape.TeamNames:
		if g.HomeTeam != nil {
			view.HomeTeamName = &g.HomeTeam.Name
		}
		if g.AwayTeam != nil {
			view.AwayTeamName = &g.AwayTeam.Name
		}
	}
	return view
}

func NewGames(games []models.Game, shape GameShape) []Game {
	out := make([]Game, 0, len(games))
	for i := range games {
		out = append(out, NewGame(&games[i], shape))
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
