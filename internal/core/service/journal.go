package service

import (
	"fmt"
	"time"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

// nopRecorder drops journal entries.
type nopRecorder struct{}

func (nopRecorder) Record(domain.Activity) {}

func recorderOrNop(r ports.ActivityRecorder) ports.ActivityRecorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

func record(r ports.ActivityRecorder, actor *domain.Session, action, target string, err error) {
	a := domain.Activity{
		Action:     action,
		Target:     target,
		Succeeded:  err == nil,
		OccurredAt: time.Now().UTC(),
	}
	if actor != nil {
		a.Username = actor.Username
		a.Role = actor.Role
	}
	if err != nil {
		a.Error = err.Error()
	}
	r.Record(a)
}

func target(kind string, id int64) string { return fmt.Sprintf("%s/%d", kind, id) }
