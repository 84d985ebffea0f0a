package backend

import (
	"context"
	"sync"
	"time"

	"snnd/internal/algoconfig"
)

// Simulated stands in for the native library. Apply waits for Delay and
// records the snapshot; failures can be queued with FailNext.
type Simulated struct {
	Delay time.Duration

	mu       sync.Mutex
	applied  []algoconfig.Snapshot
	failNext []error
	index    int
}

// NewSimulated returns a Simulated backend with the given reconfiguration latency.
func NewSimulated(delay time.Duration) *Simulated { return &Simulated{Delay: delay} }

func (s *Simulated) Name() string { return "simulated" }

func (s *Simulated) Apply(ctx context.Context, snap algoconfig.Snapshot) error {
	s.mu.Lock()
	var err error
	if len(s.failNext) > 0 {
		err, s.failNext = s.failNext[0], s.failNext[1:]
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	s.applied = append(s.applied, snap)
	s.index = 0
	s.mu.Unlock()
	return nil
}

// FailNext queues an error for the next Apply call.
func (s *Simulated) FailNext(err error) {
	s.mu.Lock()
	s.failNext = append(s.failNext, err)
	s.mu.Unlock()
}

// Applied returns the snapshots applied so far.
func (s *Simulated) Applied() []algoconfig.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]algoconfig.Snapshot(nil), s.applied...)
}

// SetClassifierIndex fakes the next classifier output.
func (s *Simulated) SetClassifierIndex(i int) {
	s.mu.Lock()
	s.index = i
	s.mu.Unlock()
}

func (s *Simulated) ClassifierIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}
