package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

// MembersPage is the view model of the member management screen.
type MembersPage struct {
	Members []domain.Member
	Total   int
	Search  string
	Flash   *Flash
}

// MemberService backs member management.
type MemberService struct {
	members ports.MemberAPI
	journal ports.ActivityRecorder
	log     zerolog.Logger
}

func NewMemberService(members ports.MemberAPI, journal ports.ActivityRecorder, log zerolog.Logger) *MemberService {
	return &MemberService{members: members, journal: recorderOrNop(journal), log: log}
}

func (s *MemberService) Members(ctx context.Context, search string) (*MembersPage, error) {
	all, err := s.members.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("load members")
		return &MembersPage{Members: []domain.Member{}, Search: search}, fmt.Errorf("load members: %w", err)
	}
	return &MembersPage{Members: FilterMembers(all, search), Total: len(all), Search: search}, nil
}

func (s *MemberService) Member(ctx context.Context, id int64) (*domain.Member, error) {
	return s.members.Get(ctx, id)
}

func (s *MemberService) CreateMember(ctx context.Context, actor *domain.Session, m domain.Member) (*MembersPage, error) {
	if err := validateMember(m); err != nil {
		return nil, err
	}
	created, err := s.members.Create(ctx, m)
	if err != nil {
		record(s.journal, actor, "member.create", m.Email, err)
		return nil, err
	}
	record(s.journal, actor, "member.create", target("member", created.ID), nil)
	return s.reload(ctx, fmt.Sprintf("Member %s added.", m.Name))
}

func (s *MemberService) UpdateMember(ctx context.Context, actor *domain.Session, id int64, m domain.Member) (*MembersPage, error) {
	if err := validateMember(m); err != nil {
		return nil, err
	}
	m.ID = id
	_, err := s.members.Update(ctx, id, m)
	record(s.journal, actor, "member.update", target("member", id), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, fmt.Sprintf("Member %s updated.", m.Name))
}

func (s *MemberService) DeleteMember(ctx context.Context, actor *domain.Session, id int64) (*MembersPage, error) {
	err := s.members.Delete(ctx, id)
	record(s.journal, actor, "member.delete", target("member", id), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, "Member removed.")
}

func (s *MemberService) reload(ctx context.Context, msg string) (*MembersPage, error) {
	page, err := s.Members(ctx, "")
	if err != nil {
		page.Flash = Failure(err)
		return page, nil
	}
	page.Flash = Success(msg)
	return page, nil
}

func validateMember(m domain.Member) error {
	if strings.TrimSpace(m.Name) == "" {
		return domain.Invalid("name is required")
	}
	if strings.TrimSpace(m.Email) == "" {
		return domain.Invalid("email is required")
	}
	return nil
}
