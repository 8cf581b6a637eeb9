package session

import (
	"strings"

	"github.com/puntotecno/terminal/pkg/enums"
)

// Session is the authenticated identity held for the lifetime of the
// terminal session. It is persisted by a Store so it survives restarts.
type Session struct {
	UserID       int64      `json:"user_id"`
	Username     string     `json:"username"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Role         enums.Role `json:"role"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
}

// DisplayName returns the full name, falling back to the username.
func (s *Session) DisplayName() string {
	if s == nil {
		return ""
	}
	full := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if full != "" {
		return full
	}
	return s.Username
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == enums.RoleAdmin
}

// Decision is the outcome of an authorization check.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionRedirectLogin
	DecisionRedirectHome
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectHome:
		return "redirect_home"
	}
	return "unknown"
}
