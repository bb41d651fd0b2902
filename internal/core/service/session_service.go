package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
	"github.com/librarydesk/console/internal/pkg/metrics"
)

// Portal identifies which login screen a request came from.
type Portal string

const (
	PortalGeneral Portal = "general"
	// PortalAdmin only admits administrators.
	PortalAdmin Portal = "admin"
)

// LoginInput carries the credentials submitted to a login screen.
type LoginInput struct {
	Username string
	Password string
	Portal   Portal
}

// SessionService owns the session lifecycle: Login creates it, Logout destroys it.
type SessionService struct {
	auth  ports.AuthAPI
	store ports.SessionStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewSessionService(auth ports.AuthAPI, store ports.SessionStore, log zerolog.Logger) *SessionService {
	return &SessionService{auth: auth, store: store, log: log, now: time.Now}
}

// Login authenticates against the backend and persists a session. A role that
// the portal does not admit yields domain.ErrAccessDenied and nothing is stored.
func (s *SessionService) Login(ctx context.Context, in LoginInput) (*domain.Session, error) {
	portal := in.Portal
	if portal == "" {
		portal = PortalGeneral
	}
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		metrics.LoginsTotal.WithLabelValues(string(portal), "invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.auth.Login(ctx, username, in.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(string(portal), "error").Inc()
		return nil, err
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(string(portal), "denied").Inc()
		s.log.Warn().Str("username", username).Str("role", user.Role).Msg("login with unknown role")
		return nil, err
	}
	if portal == PortalAdmin && role != domain.RoleAdmin {
		metrics.LoginsTotal.WithLabelValues(string(portal), "denied").Inc()
		s.log.Warn().Str("username", username).Str("role", role.String()).Msg("non-admin login on admin portal")
		return nil, domain.ErrAccessDenied
	}

	if user.Username == "" {
		user.Username = username
	}
	sess := &domain.Session{
		ID:           uuid.NewString(),
		Username:     user.Username,
		Name:         user.Name,
		Role:         role,
		MemberID:     user.MemberID,
		BackendToken: user.Token,
		CreatedAt:    s.now().UTC(),
	}
	if role == domain.RoleMember && sess.MemberID == 0 {
		sess.MemberID = user.ID
	}
	// Member screens are scoped by MemberID; zero would mean "everyone".
	if role == domain.RoleMember && sess.MemberID <= 0 {
		metrics.LoginsTotal.WithLabelValues(string(portal), "denied").Inc()
		s.log.Warn().Str("username", sess.Username).Msg("member login without a member id")
		return nil, domain.ErrNoMemberAccount
	}

	if err := s.store.Save(ctx, sess); err != nil {
		metrics.LoginsTotal.WithLabelValues(string(portal), "error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues(string(portal), "ok").Inc()
	s.log.Info().Str("username", sess.Username).Str("role", role.String()).Msg("session started")
	return sess, nil
}

// Current resolves a session id to its session.
func (s *SessionService) Current(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}
	return s.store.Get(ctx, id)
}

// Logout tells the backend (best effort) and removes the session.
func (s *SessionService) Logout(ctx context.Context, sess *domain.Session) error {
	if sess == nil {
		return nil
	}
	if err := s.auth.Logout(ctx, sess.BackendToken); err != nil {
		s.log.Warn().Err(err).Str("username", sess.Username).Msg("backend logout failed")
	}
	if err := s.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	s.log.Info().Str("username", sess.Username).Msg("session ended")
	return nil
}

// Register creates a member account on the backend. The caller logs in afterwards.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := s.auth.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", in.Username).Msg("member registered")
	return user, nil
}
