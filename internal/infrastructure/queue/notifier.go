package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/mindline/booking-api/internal/api/metrics"
	"github.com/mindline/booking-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Notifier delivers notifications off the request path. Recipients are
// consistently hashed onto a fixed set of workers, so one recipient's
// notifications arrive in the order they were enqueued.
type Notifier struct {
	workers []chan ports.NotificationInput
	repo    ports.NotificationRepository
	log     zerolog.Logger
}

// NewNotifier creates a Notifier with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewNotifier(numWorkers int, repo ports.NotificationRepository, log zerolog.Logger) *Notifier {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	n := &Notifier{
		workers: make([]chan ports.NotificationInput, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range n.workers {
		n.workers[i] = make(chan ports.NotificationInput, channelBuffer)
	}
	return n
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	for i, ch := range n.workers {
		go n.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its
// recipient. When the worker's channel is full the notification is
// dropped with a log line — delivery is fire-and-forget and must never
// block a booking.
func (n *Notifier) Enqueue(in ports.NotificationInput) {
	i := n.shardIndex(in.RecipientID)
	select {
	case n.workers[i] <- in:
		metrics.NotificationsEnqueuedTotal.Inc()
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(i)).Inc()
	default:
		n.log.Warn().Str("recipient_id", in.RecipientID).Msg("notification queue full, dropping")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (n *Notifier) shardIndex(recipientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientID))
	return int(h.Sum32()) % len(n.workers)
}

func (n *Notifier) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(workerID).Dec()
			if _, err := n.repo.Create(ctx, in); err != nil {
				n.log.Error().Err(err).
					Str("recipient_id", in.RecipientID).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
