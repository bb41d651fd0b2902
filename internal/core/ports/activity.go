package ports

import (
	"context"

	"github.com/librarydesk/console/internal/core/domain"
)

// ActivityRepository persists the console's mutation journal.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)
}

// ActivityRecorder accepts journal entries without blocking the caller on storage.
type ActivityRecorder interface {
	Record(a domain.Activity)
}
