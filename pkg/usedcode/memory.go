package usedcode

import (
	"container/list"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/otpkit/pkg/logger"
)

type memoryEntry struct {
	key    record
	usedAt time.Time
}

// MemoryStore keeps used codes in process memory.
//
// Records live in insertion order next to a lookup index; both are guarded
// by one mutex. A background sweeper evicts records from the oldest end
// once they exceed the retention age. Call Close to stop it.
type MemoryStore struct {
	mu    sync.Mutex
	order *list.List
	index map[record]*list.Element

	retention   time.Duration
	sweepPeriod time.Duration
	now         func() time.Time
	logger      *slog.Logger

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

var _ StoreCloser = (*MemoryStore)(nil)

// NewMemoryStore creates the store and starts its sweeper.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &MemoryStore{
		order:       list.New(),
		index:       make(map[record]*list.Element),
		retention:   o.retention,
		sweepPeriod: o.sweepPeriod,
		now:         o.now,
		logger:      o.logger.With(logger.Component("usedcode.memory"), logger.Backend(string(BackendMemory))),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	go s.sweepLoop()

	return s
}

func (s *MemoryStore) Add(_ context.Context, counter int64, code, userID string) error {
	key, err := newRecord(counter, code, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[key]; ok {
		return ErrCodeAlreadyUsed
	}
	s.index[key] = s.order.PushBack(&memoryEntry{key: key, usedAt: s.now()})
	return nil
}

func (s *MemoryStore) IsUsed(_ context.Context, counter int64, code, userID string) (bool, error) {
	key, err := newRecord(counter, code, userID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.index[key]
	return ok, nil
}

// Len returns the number of records currently held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Close stops the sweeper and waits for it to exit. Safe to call multiple times.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
	return nil
}

func (s *MemoryStore) sweepLoop() {
	defer close(s.done)

	ticker := time.NewTicker(s.sweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				s.logger.Debug("evicted used codes", slog.Int("count", n))
			}
		case <-s.stop:
			return
		}
	}
}

// sweep pops records from the front while they are older than retention.
// Insertion order is age order because entries are never moved.
func (s *MemoryStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.retention)
	evicted := 0
	for front := s.order.Front(); front != nil; front = s.order.Front() {
		entry := front.Value.(*memoryEntry)
		if !entry.usedAt.Before(cutoff) {
			break
		}
		s.order.Remove(front)
		delete(s.index, entry.key)
		evicted++
	}
	return evicted
}
