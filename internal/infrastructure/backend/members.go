package backend

import (
	"context"
	"net/http"

	"github.com/librarydesk/console/internal/core/domain"
)

const membersPath = "/api/members"

// MemberService wraps /api/members.
type MemberService struct {
	c *Client
}

func NewMemberService(c *Client) *MemberService { return &MemberService{c: c} }

func (s *MemberService) List(ctx context.Context) ([]domain.Member, error) {
	return list[domain.Member](ctx, s.c, "members", membersPath, nil)
}

func (s *MemberService) Get(ctx context.Context, id int64) (*domain.Member, error) {
	return one[domain.Member](ctx, s.c, "members", http.MethodGet, idPath(membersPath, id), nil)
}

func (s *MemberService) Create(ctx context.Context, m domain.Member) (*domain.Member, error) {
	return one[domain.Member](ctx, s.c, "members", http.MethodPost, membersPath, m)
}

func (s *MemberService) Update(ctx context.Context, id int64, m domain.Member) (*domain.Member, error) {
	return one[domain.Member](ctx, s.c, "members", http.MethodPut, idPath(membersPath, id), m)
}

func (s *MemberService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, "members", http.MethodDelete, idPath(membersPath, id), nil, nil, nil)
}
