package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

// AdminsPage is the view model of the admin accounts screen.
type AdminsPage struct {
	Admins      []domain.Admin
	ActiveCount int
	Flash       *Flash
}

// AdminService backs admin account management.
type AdminService struct {
	admins  ports.AdminAPI
	journal ports.ActivityRecorder
	log     zerolog.Logger
}

func NewAdminService(admins ports.AdminAPI, journal ports.ActivityRecorder, log zerolog.Logger) *AdminService {
	return &AdminService{admins: admins, journal: recorderOrNop(journal), log: log}
}

func (s *AdminService) Admins(ctx context.Context) (*AdminsPage, error) {
	all, err := s.admins.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("load admins")
		return &AdminsPage{Admins: []domain.Admin{}}, fmt.Errorf("load admins: %w", err)
	}
	active := 0
	for _, a := range all {
		if a.Active {
			active++
		}
	}
	return &AdminsPage{Admins: all, ActiveCount: active}, nil
}

func (s *AdminService) Admin(ctx context.Context, id int64) (*domain.Admin, error) {
	return s.admins.Get(ctx, id)
}

// CreateAdmin requires a password; the role is normalized before it is sent.
func (s *AdminService) CreateAdmin(ctx context.Context, actor *domain.Session, a domain.Admin) (*AdminsPage, error) {
	if a.Password == "" {
		return nil, domain.Invalid("password is required")
	}
	if err := normalizeAdmin(&a); err != nil {
		return nil, err
	}
	created, err := s.admins.Create(ctx, a)
	if err != nil {
		record(s.journal, actor, "admin.create", a.Username, err)
		return nil, err
	}
	record(s.journal, actor, "admin.create", target("admin", created.ID), nil)
	return s.reload(ctx, fmt.Sprintf("Account %s created.", a.Username))
}

func (s *AdminService) UpdateAdmin(ctx context.Context, actor *domain.Session, id int64, a domain.Admin) (*AdminsPage, error) {
	if err := normalizeAdmin(&a); err != nil {
		return nil, err
	}
	a.ID = id
	_, err := s.admins.Update(ctx, id, a)
	record(s.journal, actor, "admin.update", target("admin", id), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, fmt.Sprintf("Account %s updated.", a.Username))
}

// SetActive enables or disables an account. An admin cannot disable their own account.
func (s *AdminService) SetActive(ctx context.Context, actor *domain.Session, id int64, username string, active bool) (*AdminsPage, error) {
	if !active && actor != nil && strings.EqualFold(actor.Username, username) {
		return nil, domain.Invalid("you cannot deactivate your own account")
	}
	_, err := s.admins.SetActive(ctx, id, active)
	action := "admin.deactivate"
	if active {
		action = "admin.activate"
	}
	record(s.journal, actor, action, target("admin", id), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, "Account status updated.")
}

// DeleteAdmin removes an account. An admin cannot delete their own account.
func (s *AdminService) DeleteAdmin(ctx context.Context, actor *domain.Session, id int64, username string) (*AdminsPage, error) {
	if actor != nil && strings.EqualFold(actor.Username, username) {
		return nil, domain.Invalid("you cannot delete your own account")
	}
	err := s.admins.Delete(ctx, id)
	record(s.journal, actor, "admin.delete", target("admin", id), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, "Account deleted.")
}

func (s *AdminService) reload(ctx context.Context, msg string) (*AdminsPage, error) {
	page, err := s.Admins(ctx)
	if err != nil {
		page.Flash = Failure(err)
		return page, nil
	}
	page.Flash = Success(msg)
	return page, nil
}

func normalizeAdmin(a *domain.Admin) error {
	a.Username = strings.TrimSpace(a.Username)
	if a.Username == "" {
		return domain.Invalid("username is required")
	}
	role, err := domain.ParseRole(a.Role)
	if err != nil || role == domain.RoleMember {
		return domain.Invalid("role must be admin or librarian")
	}
	a.Role = strings.ToUpper(role.String())
	return nil
}
