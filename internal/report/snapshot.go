package report

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/gastos-app/gastos-backend/internal/domain"
)

// Fetcher loads the complete expense list from the record store
type Fetcher interface {
	ListAll() ([]*domain.Expense, error)
}

// Snapshot holds the latest full expense list for the report engine. The
// engine never sees partial updates: mutations signal Invalidate, a single
// loop re-fetches the whole list, and bursts of signals collapse into one
// fetch. A generation counter discards the result of any fetch that was
// superseded while in flight, and a failed fetch leaves the previous
// snapshot in place.
type Snapshot struct {
	fetcher Fetcher

	mu       sync.RWMutex
	expenses []*domain.Expense
	loaded   bool

	generation atomic.Uint64
	invalidate chan struct{}
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewSnapshot creates a Snapshot backed by the given fetcher
func NewSnapshot(fetcher Fetcher) *Snapshot {
	return &Snapshot{
		fetcher:    fetcher,
		invalidate: make(chan struct{}, 1),
		stop:       make(chan struct{}),
	}
}

// Start launches the refresh loop. Call Stop to terminate it.
func (s *Snapshot) Start() {
	go s.run()
}

// Stop terminates the refresh loop. Safe to call multiple times.
func (s *Snapshot) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Invalidate signals that the underlying record list changed. Non-blocking:
// a signal arriving while one is already pending is coalesced into it.
func (s *Snapshot) Invalidate() {
	select {
	case s.invalidate <- struct{}{}:
	default:
	}
}

// Current returns the latest snapshot, fetching synchronously if nothing has
// been loaded yet. Callers must not mutate the returned slice.
func (s *Snapshot) Current() ([]*domain.Expense, error) {
	s.mu.RLock()
	if s.loaded {
		expenses := s.expenses
		s.mu.RUnlock()
		return expenses, nil
	}
	s.mu.RUnlock()

	if err := s.Refresh(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expenses, nil
}

// Refresh fetches the full expense list now. The result is dropped if a
// newer refresh started while this one was in flight.
func (s *Snapshot) Refresh() error {
	gen := s.generation.Add(1)

	expenses, err := s.fetcher.ListAll()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation.Load() != gen {
		// Superseded by a newer fetch; keep whatever that stored.
		return nil
	}
	s.expenses = expenses
	s.loaded = true
	return nil
}

func (s *Snapshot) run() {
	for {
		select {
		case <-s.stop:
			return
		case <-s.invalidate:
			if err := s.Refresh(); err != nil {
				log.Error().Err(err).Msg("Failed to refresh expense snapshot")
			}
		}
	}
}
