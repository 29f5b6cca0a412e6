package models

import "time"

type Team struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Members   []User `json:"members,omitempty"`
	HomeGames []Game `json:"home_games,omitempty"`
	AwayGames []Game `json:"away_games,omitempty"`
}
