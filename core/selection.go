package core

import (
	"context"
	"sync"

	"github.com/huangsam/satscout/schema"
)

// LookupFunc fetches the score result for a school.
type LookupFunc func(ctx context.Context, school schema.School) schema.ScoreResult

// ResultHandler receives the score result for the current selection.
type ResultHandler func(school schema.School, result schema.ScoreResult)

// Selector tracks the currently selected school and keys in-flight score fetches by
// selection. A result is delivered only if its school is still the current selection
// and no newer selection was made, regardless of the order in which fetches complete.
type Selector struct {
	mu       sync.Mutex
	lookup   LookupFunc
	onResult ResultHandler
	seq      uint64
	current  string
	cancel   context.CancelFunc
	closed   bool
	dropped  int
	wg       sync.WaitGroup
}

// NewSelector creates a selector. onResult runs while the selector is locked, so it
// must not call back into the selector.
func NewSelector(lookup LookupFunc, onResult ResultHandler) *Selector {
	return &Selector{lookup: lookup, onResult: onResult}
}

// Select makes school the current selection and starts fetching its score.
// The fetch for any earlier selection is canceled and its result will be dropped.
// It returns the selection ID, or 0 once the selector is closed.
func (s *Selector) Select(ctx context.Context, school schema.School) uint64 {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	id := s.seq
	s.current = school.DBN
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer cancel()
		result := s.lookup(fetchCtx, school)
		s.deliver(id, school, result)
	}()
	return id
}

// deliver hands result to the handler if id is still the current selection.
func (s *Selector) deliver(id uint64, school schema.School, result schema.ScoreResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || id != s.seq || school.DBN != s.current {
		s.dropped++
		return false
	}
	s.onResult(school, result)
	return true
}

// Current returns the DBN of the current selection.
func (s *Selector) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Dropped returns how many stale results were discarded.
func (s *Selector) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Wait blocks until every started fetch has finished.
func (s *Selector) Wait() {
	s.wg.Wait()
}

// Close cancels the in-flight fetch and waits for all fetches to finish.
// Results arriving after Close are dropped.
func (s *Selector) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}
