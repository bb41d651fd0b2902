package ports

import (
	"context"

	"github.com/librarydesk/console/internal/core/domain"
)

// SessionStore persists console sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrSessionNotFound when the id is unknown or expired.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
