package services

import (
	"errors"
	"fmt"
)

// Shared errors used across services and the HTTP mapping.
var (
	// Auth
	ErrSignupFieldsRequired = errors.New("email, password and name are required")
	ErrLoginFieldsRequired  = errors.New("email and password are required")
	ErrEmailTaken           = errors.New("email is already in use")
	// Deliberately generic: never reveals whether the email or the
	// password was wrong.
	ErrInvalidCredentials = errors.New("email or password does not match")

	// Courts
	ErrCourtFieldsRequired = errors.New("court name and address are required")
	ErrCourtInUse          = errors.New("court cannot be deleted while games reference it")

	// Teams
	ErrTeamNameRequired = errors.New("team name is required")
	ErrTeamNameTaken    = errors.New("team name is already in use")
	ErrTeamInUse        = errors.New("team cannot be deleted while games reference it")

	// Games
	ErrGameFieldsRequired = errors.New("date_time, court_id and host_id are required")
	ErrInvalidDateTime    = errors.New("invalid date_time, expected an ISO-8601 timestamp")
	ErrInvalidGameStatus  = errors.New("invalid game status")
	ErrSameTeams          = errors.New("home team and away team must be different")
)

// NotFoundError names the entity kind and id that a lookup or reference
// check failed on, so 404 responses can point at the offending id.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}
