package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ashokpds15/Myself/pkg/metrics"
)

const (
	defaultQueueSize    = 1024
	defaultWriteTimeout = 5 * time.Second
)

// Recorder fans events out to its sinks from a background worker, so
// recording never blocks or fails the caller. A sink error is logged and
// counted; the other sinks still receive the event.
type Recorder struct {
	sinks  []Sink
	queue  chan *Event
	logger *zap.Logger
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewRecorder(logger *zap.Logger, sinks ...Sink) *Recorder {
	r := &Recorder{
		sinks:  sinks,
		queue:  make(chan *Event, defaultQueueSize),
		logger: logger.Named("audit-recorder"),
	}
	r.wg.Add(1)
	go r.process()
	return r
}

// Record queues event for delivery. ID and Timestamp are filled when unset.
// When the queue is full the event is dropped.
func (r *Recorder) Record(_ context.Context, event *Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}

	select {
	case r.queue <- event:
		metrics.AuditEvents.WithLabelValues(string(event.Type)).Inc()
	default:
		r.logger.Warn("audit queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
	}
}

func (r *Recorder) Subscribed(ctx context.Context, email, sourceIP string) {
	r.Record(ctx, &Event{
		Type:   EventSubscriberSubscribed,
		Actor:  Actor{SourceIP: sourceIP},
		Target: Target{Kind: "subscriber", Name: email},
	})
}

func (r *Recorder) Unsubscribed(ctx context.Context, email, sourceIP string) {
	r.Record(ctx, &Event{
		Type:   EventSubscriberUnsubscribed,
		Actor:  Actor{SourceIP: sourceIP},
		Target: Target{Kind: "subscriber", Name: email},
	})
}

// NotificationCompleted records the outcome of a notification run.
// trigger is "manual" or "latest".
func (r *Recorder) NotificationCompleted(ctx context.Context, trigger, subject, sourceIP string, sent, failed, total int) {
	r.Record(ctx, &Event{
		Type:   EventNotificationCompleted,
		Actor:  Actor{SourceIP: sourceIP},
		Target: Target{Kind: "notification", Name: subject},
		Details: map[string]interface{}{
			"trigger": trigger,
			"sent":    sent,
			"failed":  failed,
			"total":   total,
		},
	})
}

func (r *Recorder) process() {
	defer r.wg.Done()
	for event := range r.queue {
		for _, sink := range r.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), defaultWriteTimeout)
			if err := sink.Write(ctx, event); err != nil {
				r.logger.Error("failed to write audit event",
					zap.String("sink", sink.Name()),
					zap.String("event_id", event.ID),
					zap.String("event_type", string(event.Type)),
					zap.Error(err))
				metrics.AuditSinkErrors.WithLabelValues(sink.Name()).Inc()
			}
			cancel()
		}
	}
}

// Close drains queued events and closes every sink.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()

	var lastErr error
	for _, sink := range r.sinks {
		if err := sink.Close(); err != nil {
			lastErr = err
		}
	}
	r.logger.Info("audit recorder stopped")
	return lastErr
}
