package domain

import "fmt"

// Member mirrors the backend's member record.
type Member struct {
	ID               int64  `json:"id,omitempty"`
	Name             string `json:"name"`
	Contact          string `json:"contact"`
	Email            string `json:"email"`
	MembershipStatus string `json:"membershipStatus"`
}

func (m Member) EditURL() string   { return fmt.Sprintf("/members/%d/edit", m.ID) }
func (m Member) DeleteURL() string { return fmt.Sprintf("/members/%d/delete", m.ID) }

// Admin mirrors the backend's admin account record.
type Admin struct {
	ID          int64    `json:"id,omitempty"`
	Username    string   `json:"username"`
	Password    string   `json:"password,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Active      bool     `json:"active"`
}

func (a Admin) EditURL() string   { return fmt.Sprintf("/admin/admins/%d/edit", a.ID) }
func (a Admin) DeleteURL() string { return fmt.Sprintf("/admin/admins/%d/delete", a.ID) }
