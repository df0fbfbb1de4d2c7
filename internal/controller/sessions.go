package controller

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/skillgap/internal/analysis"
)

// Sessions keeps one Controller per browser session in memory.
// Idle sessions are evicted after the TTL; nothing is persisted.
type Sessions struct {
	analyzer analysis.Analyzer
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	sweepStop chan struct{}
	sweepOnce sync.Once
}

type session struct {
	controller *Controller
	lastSeen   time.Time
}

// NewSessions creates a session store. A positive sweepInterval starts a
// background sweep that must be stopped with Stop.
func NewSessions(analyzer analysis.Analyzer, ttl, sweepInterval time.Duration) *Sessions {
	s := &Sessions{
		analyzer:  analyzer,
		ttl:       ttl,
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*session),
		sweepStop: make(chan struct{}),
	}
	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}
	return s
}

// Get returns the controller for id, creating one if needed.
func (s *Sessions) Get(id uuid.UUID) *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{controller: New(s.analyzer)}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess.controller
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle longer than the TTL. Sessions with an analysis
// in flight are kept until it settles.
func (s *Sessions) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) && !sess.controller.inFlight.Load() {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Stop ends the background sweep.
func (s *Sessions) Stop() {
	s.sweepOnce.Do(func() {
		close(s.sweepStop)
	})
}

func (s *Sessions) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("[sessions] evicted %d idle sessions", n)
			}
		case <-s.sweepStop:
			return
		}
	}
}
