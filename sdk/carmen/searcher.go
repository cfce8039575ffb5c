package carmen

import (
	"context"
	"sync"
	"time"
)

// DefaultSearchDebounce is how long a Searcher waits after the last keystroke
// before firing the query.
const DefaultSearchDebounce = 400 * time.Millisecond

// SearchFunc runs one search round trip for the given term.
type SearchFunc func(ctx context.Context, term string) error

// Searcher debounces rapid Search calls and drops results from superseded
// rounds. Each call bumps a generation counter; only the round holding the
// newest generation gets to run, earlier pending rounds are cancelled.
type Searcher struct {
	mu       sync.Mutex
	debounce time.Duration
	fn       SearchFunc
	gen      uint64
	cancel   context.CancelFunc
}

// NewSearcher wraps fn with debouncing. A non-positive debounce uses
// DefaultSearchDebounce.
func NewSearcher(fn SearchFunc, debounce time.Duration) *Searcher {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	return &Searcher{debounce: debounce, fn: fn}
}

// Search schedules a round for term, cancelling any round still waiting out
// its debounce window. The call returns immediately.
func (s *Searcher) Search(ctx context.Context, term string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
	}
	roundCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(roundCtx, gen, term)
}

func (s *Searcher) run(ctx context.Context, gen uint64, term string) {
	timer := time.NewTimer(s.debounce)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	if !s.current(gen) {
		return
	}
	_ = s.fn(ctx, term)
}

// Cancel aborts any pending round.
func (s *Searcher) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Searcher) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.gen
}
