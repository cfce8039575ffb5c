package carmen

import (
	"context"
	"sync"
	"testing"
	"time"
)

type searchRecorder struct {
	mu    sync.Mutex
	terms []string
}

func (r *searchRecorder) record(_ context.Context, term string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terms = append(r.terms, term)
	return nil
}

func (r *searchRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.terms...)
}

func TestSearcher_DebouncesRapidInput(t *testing.T) {
	rec := &searchRecorder{}
	s := NewSearcher(rec.record, 30*time.Millisecond)

	ctx := context.Background()
	for _, term := range []string{"b", "ba", "ban", "bang", "bangkok"} {
		s.Search(ctx, term)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	terms := rec.snapshot()
	if len(terms) != 1 {
		t.Fatalf("terms = %v, want one round", terms)
	}
	if terms[0] != "bangkok" {
		t.Errorf("term = %q, want bangkok", terms[0])
	}
}

func TestSearcher_SeparatedRoundsBothRun(t *testing.T) {
	rec := &searchRecorder{}
	s := NewSearcher(rec.record, 10*time.Millisecond)

	ctx := context.Background()
	s.Search(ctx, "apac")
	time.Sleep(50 * time.Millisecond)
	s.Search(ctx, "emea")
	time.Sleep(50 * time.Millisecond)

	terms := rec.snapshot()
	if len(terms) != 2 || terms[0] != "apac" || terms[1] != "emea" {
		t.Errorf("terms = %v", terms)
	}
}

func TestSearcher_CancelDropsPendingRound(t *testing.T) {
	rec := &searchRecorder{}
	s := NewSearcher(rec.record, 20*time.Millisecond)

	s.Search(context.Background(), "apac")
	s.Cancel()

	time.Sleep(60 * time.Millisecond)
	if terms := rec.snapshot(); len(terms) != 0 {
		t.Errorf("terms = %v, want none", terms)
	}
}

func TestSearcher_DefaultDebounce(t *testing.T) {
	s := NewSearcher(func(context.Context, string) error { return nil }, 0)
	if s.debounce != DefaultSearchDebounce {
		t.Errorf("debounce = %v", s.debounce)
	}
}
