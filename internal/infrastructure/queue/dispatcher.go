package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/stayflow/rental-marketplace/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// ReconcileJob asks for one principal's anonymous submissions to be linked.
type ReconcileJob struct {
	PrincipalID string
	Email       string
}

// Reconciler is the service-side entry point jobs are delivered to.
type Reconciler interface {
	Reconcile(ctx context.Context, principalID, email string) error
}

// Dispatcher routes reconciliation jobs to a fixed set of workers, sharded by
// a hash of the email so jobs for the same principal always run in order.
type Dispatcher struct {
	workers []chan ReconcileJob
	service Reconciler
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service Reconciler, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ReconcileJob, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ReconcileJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// EnqueueReconcile queues a job for the worker responsible for the email.
// Non-blocking: when the worker's channel is full the job is dropped and the
// lazy reconciliation on fetch paths will pick the principal up instead.
func (d *Dispatcher) EnqueueReconcile(principalID, email string) {
	idx := d.shardIndex(email)
	select {
	case d.workers[idx] <- ReconcileJob{PrincipalID: principalID, Email: email}:
		metrics.ReconcileQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Str("user", principalID).Msg("reconcile queue full, job dropped")
	}
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ReconcileJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.ReconcileQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.Reconcile(ctx, job.PrincipalID, job.Email); err != nil {
				d.log.Error().Err(err).
					Str("user", job.PrincipalID).
					Int("worker_id", id).
					Msg("reconciliation failed")
			}
		}
	}
}
