package capture

import (
	"fmt"
	"sync"
)

// OpenFunc acquires a source bound to a facing mode.
type OpenFunc func(Facing) (Source, error)

// Switcher owns the current camera source and flips between facing
// modes. A toggle is destructive: the old source is fully torn down
// before the new one is acquired, and the new source goes through the
// same readiness gating as the initial acquisition.
type Switcher struct {
	mu     sync.Mutex
	open   OpenFunc
	facing Facing
	src    Source
}

// NewSwitcher creates a switcher that acquires sources through open.
// No device is opened until Acquire is called.
func NewSwitcher(open OpenFunc, facing Facing) *Switcher {
	return &Switcher{open: open, facing: facing}
}

// Acquire opens the source for the current facing mode. Any existing
// source is closed first.
func (s *Switcher) Acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquireLocked()
}

// Source returns the current source, or nil when no acquisition has
// succeeded yet.
func (s *Switcher) Source() Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src
}

// Facing returns the currently selected facing mode.
func (s *Switcher) Facing() Facing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facing
}

// Toggle flips the facing mode and re-acquires the source under the
// new mode. On failure the switcher is left without a source; a later
// Toggle or Acquire is the retry path.
func (s *Switcher) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facing = s.facing.Other()
	return s.acquireLocked()
}

// Close tears down the current source, if any.
func (s *Switcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.src != nil {
		s.src.Close()
		s.src = nil
	}
}

func (s *Switcher) acquireLocked() error {
	if s.src != nil {
		s.src.Close()
		s.src = nil
	}
	src, err := s.open(s.facing)
	if err != nil {
		return fmt.Errorf("switch to %s camera: %w", s.facing, err)
	}
	s.src = src
	return nil
}
