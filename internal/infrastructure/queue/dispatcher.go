package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
	"github.com/librarydesk/console/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher writes activity entries to the journal on a fixed set of
// workers. Entries are sharded by username so one user's actions are stored
// in the order they happened.
type Dispatcher struct {
	workers []chan domain.Activity
	repo    ports.ActivityRepository
	log     zerolog.Logger

	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ ports.ActivityRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Close has drained their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry without blocking. When the worker's buffer is
// full the entry is dropped and logged; the journal never slows a page down.
func (d *Dispatcher) Record(a domain.Activity) {
	idx := d.shardIndex(a.Username)
	select {
	case d.workers[idx] <- a:
		metrics.JournalQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.JournalWritesTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("username", a.Username).
			Str("action", a.Action).
			Int("worker_id", idx).
			Msg("journal queue full, entry dropped")
	}
}

// Close stops accepting entries and waits for queued ones to be written.
// Record must not be called after Close.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		for _, ch := range d.workers {
			close(ch)
		}
	})
	d.wg.Wait()
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	depth := metrics.JournalQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			// The request that produced the entry may already be gone.
			if err := d.repo.Insert(context.WithoutCancel(ctx), &a); err != nil {
				metrics.JournalWritesTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("username", a.Username).
					Str("action", a.Action).
					Int("worker_id", id).
					Msg("journal write failed")
				continue
			}
			metrics.JournalWritesTotal.WithLabelValues("ok").Inc()
		}
	}
}
