package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"pin_share_backend/config"
	"pin_share_backend/logger"
	"pin_share_backend/models"
)

// InterestLedger turns interaction events into per-user keyword scores.
// RecordInteraction is fire-and-forget: events go through a buffered queue
// consumed by worker goroutines, and neither queue overflow nor store
// failures ever reach the caller — they are only logged.
type InterestLedger struct {
	store   InterestStore
	sink    InteractionSink
	weights map[models.ActionKind]float64

	events chan *models.InteractionEvent
	wg     sync.WaitGroup
	once   sync.Once
}

// NewInterestLedger builds the ledger and starts its workers.
func NewInterestLedger(cfg *config.Config, store InterestStore, sink InteractionSink) *InterestLedger {
	l := &InterestLedger{
		store: store,
		sink:  sink,
		weights: map[models.ActionKind]float64{
			models.ActionLike:    cfg.Interact.LikeWeight,
			models.ActionComment: cfg.Interact.CommentWeight,
			models.ActionSearch:  cfg.Interact.SearchWeight,
		},
		events: make(chan *models.InteractionEvent, cfg.Interact.QueueSize),
	}

	workers := cfg.Interact.Workers
	for i := 0; i < workers; i++ {
		l.wg.Add(1)
		go l.worker()
	}
	return l
}

// RecordInteraction enqueues one event. It never blocks the caller: when the
// queue is full the event is dropped with a warning, scores are best-effort.
func (l *InterestLedger) RecordInteraction(userID string, action models.ActionKind, keys []string, pinID string) {
	if userID == "" || len(keys) == 0 {
		return
	}

	ev := &models.InteractionEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		PinID:     pinID,
		Action:    action,
		Keywords:  keys,
		CreatedAt: time.Now(),
	}

	select {
	case l.events <- ev:
	default:
		logger.Warn("interaction queue full, dropping event", "user_id", userID, "action", string(action))
	}
}

// TopInterests is a pure read of the k highest-scoring keywords.
func (l *InterestLedger) TopInterests(userID string, k int) ([]models.InterestRecord, error) {
	return l.store.TopInterests(userID, k)
}

// Close stops accepting events and waits for the workers to drain the queue.
func (l *InterestLedger) Close() {
	l.once.Do(func() {
		close(l.events)
	})
	l.wg.Wait()
}

func (l *InterestLedger) worker() {
	defer l.wg.Done()
	for ev := range l.events {
		l.apply(ev)
	}
}

// apply logs the event and bumps every keyword's score by the action weight.
// Failures are logged and swallowed; the triggering request finished long ago.
func (l *InterestLedger) apply(ev *models.InteractionEvent) {
	if err := l.sink.InsertInteraction(ev); err != nil {
		logger.Error("failed to record interaction event", "user_id", ev.UserID, "action", string(ev.Action), "error", err)
	}

	inc, ok := l.weights[ev.Action]
	if !ok || inc <= 0 {
		logger.Warn("unknown action kind, skipping score update", "action", string(ev.Action))
		return
	}

	for _, key := range ev.Keywords {
		if key == "" {
			continue
		}
		if err := l.store.UpsertInterest(ev.UserID, key, inc, ev.CreatedAt); err != nil {
			logger.Error("failed to update interest score", "user_id", ev.UserID, "keyword", key, "error", err)
		}
	}
}
