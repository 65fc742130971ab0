// Package halftone renders video frames as a grid of brightness-mapped
// disks: the brighter the source pixel under a grid point, the larger
// the white disk drawn there.
package halftone

import "sync"

// Params are the externally owned render parameters. The UI keeps
// both inside [5,30]; the renderer itself only requires them to be
// positive.
type Params struct {
	// CircleSize is the disk diameter at full brightness, in pixels.
	CircleSize float64
	// Spacing is the grid step between sample points, in pixels.
	Spacing int
}

// ParamStore is the live parameter cell shared between UI
// collaborators and the render tick. Updates take effect on the next
// tick; there is no transition.
type ParamStore struct {
	mu sync.Mutex
	p  Params
}

func NewParamStore(p Params) *ParamStore {
	return &ParamStore{p: p}
}

func (s *ParamStore) Get() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p
}

func (s *ParamStore) Set(p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
}
