package domain

import "time"

// User is the identity returned by the backend on login.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	MemberID int64  `json:"memberId,omitempty"`
	Token    string `json:"token,omitempty"`
}

// Session is the console's record of an authenticated user. It is created at
// login and destroyed at logout.
type Session struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	Role         Role      `json:"role"`
	MemberID     int64     `json:"member_id,omitempty"`
	BackendToken string    `json:"backend_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DisplayName prefers the full name over the username.
func (s *Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Username
}
