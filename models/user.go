package models

type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`

	GamesHosted []Game `json:"games_hosted,omitempty"`
	Teams       []Team `json:"teams,omitempty"`
}
