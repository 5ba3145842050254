package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/slot-booking/internal/api/metrics"
	"github.com/99minutos/slot-booking/internal/core/domain"
	"github.com/99minutos/slot-booking/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher writes booking events to the activity log off the request path.
// Events are sharded by slot id, so the history of one slot keeps its order.
type Dispatcher struct {
	workers []chan domain.BookingEvent
	repo    ports.ActivityRepository
	log     zerolog.Logger
	wg      sync.WaitGroup

	// mu guards stopped; Enqueue holds it shared so Stop never closes a
	// channel mid-send.
	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.BookingEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.BookingEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Writes inherit ctx's values but not
// its cancellation: workers run until Stop and drain their buffers first.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop closes the worker queues. Events already queued are still written;
// later Enqueue calls are dropped. Safe to call more than once.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
}

// Wait blocks until every worker has drained its queue and returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands the event to the worker owning its slot. It never blocks: when
// that worker's buffer is full the event is dropped and counted.
func (d *Dispatcher) Enqueue(event domain.BookingEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().Str("slot_id", event.SlotID).Msg("activity dispatcher stopped, event dropped")
		return
	}

	idx := d.shardIndex(event.SlotID)
	select {
	case d.workers[idx] <- event:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().
			Str("slot_id", event.SlotID).
			Str("action", string(event.Action)).
			Int("worker_id", idx).
			Msg("activity queue full, event dropped")
	}
}

// shardIndex maps a slot id deterministically to a worker index.
func (d *Dispatcher) shardIndex(slotID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(slotID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.BookingEvent) {
	defer d.wg.Done()
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))

	for event := range ch {
		depth.Dec()
		d.write(ctx, id, event)
	}
}

func (d *Dispatcher) write(ctx context.Context, id int, event domain.BookingEvent) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := d.repo.Insert(ctx, &event); err != nil {
		metrics.ActivityWriteErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("slot_id", event.SlotID).
			Int("worker_id", id).
			Msg("activity write failed")
	}
}
