package backend

import (
	"context"
	"net/http"

	"github.com/librarydesk/console/internal/core/domain"
)

const adminsPath = "/api/admins"

// AdminService wraps /api/admins.
type AdminService struct {
	c *Client
}

func NewAdminService(c *Client) *AdminService { return &AdminService{c: c} }

type activeRequest struct {
	Active bool `json:"active"`
}

func (s *AdminService) List(ctx context.Context) ([]domain.Admin, error) {
	return list[domain.Admin](ctx, s.c, "admins", adminsPath, nil)
}

func (s *AdminService) Get(ctx context.Context, id int64) (*domain.Admin, error) {
	return one[domain.Admin](ctx, s.c, "admins", http.MethodGet, idPath(adminsPath, id), nil)
}

func (s *AdminService) Create(ctx context.Context, a domain.Admin) (*domain.Admin, error) {
	return one[domain.Admin](ctx, s.c, "admins", http.MethodPost, adminsPath, a)
}

func (s *AdminService) Update(ctx context.Context, id int64, a domain.Admin) (*domain.Admin, error) {
	return one[domain.Admin](ctx, s.c, "admins", http.MethodPut, idPath(adminsPath, id), a)
}

func (s *AdminService) SetActive(ctx context.Context, id int64, active bool) (*domain.Admin, error) {
	return one[domain.Admin](ctx, s.c, "admins", http.MethodPut, idPath(adminsPath, id, "status"), activeRequest{Active: active})
}

func (s *AdminService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, "admins", http.MethodDelete, idPath(adminsPath, id), nil, nil, nil)
}
