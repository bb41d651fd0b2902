package backend

import (
	"context"
	"net/http"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

const authPath = "/api/auth"

// AuthService wraps /api/auth.
type AuthService struct {
	c *Client
}

func NewAuthService(c *Client) *AuthService { return &AuthService{c: c} }

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	return one[domain.User](ctx, s.c, "auth", http.MethodPost, authPath+"/login", loginRequest{Username: username, Password: password})
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.c.do(ports.WithBackendToken(ctx, token), "auth", http.MethodPost, authPath+"/logout", nil, nil, nil)
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return one[domain.User](ctx, s.c, "auth", http.MethodPost, authPath+"/register", in)
}
