package models

import "time"

type GameStatus string

const (
	GameStatusScheduled  GameStatus = "SCHEDULED"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
	GameStatusCompleted  GameStatus = "COMPLETED"
	GameStatusCancelled  GameStatus = "CANCELLED"
)

// Valid reports whether s is one of the four known lifecycle states.
func (s GameStatus) Valid() bool {
	switch s {
	case GameStatusScheduled, GameStatusInProgress, GameStatusCompleted, GameStatusCancelled:
		return true
	}
	return false
}

type Game struct {
	ID         int        `json:"id"`
	DateTime   time.Time  `json:"date_time"`
	Status     GameStatus `json:"status"`
	CourtID    int        `json:"court_id"`
	HostID     int        `json:"host_id"`
	HomeTeamID *int       `json:"home_team_id"`
	AwayTeamID *int       `json:"away_team_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Court    *Court `json:"court,omitempty"`
	Host     *User  `json:"host,omitempty"`
	HomeTeam *Team  `json:"home_team,omitempty"`
	AwayTeam *Team  `json:"away_team,omitempty"`
}
