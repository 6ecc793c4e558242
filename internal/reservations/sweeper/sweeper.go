// Package sweeper transitions bookings whose end time has passed from
// active to completed on a fixed interval.
package sweeper

import (
	"sync"
	"time"

	"roomly/internal/reservations/store"
	"roomly/pkg/clock"
	"roomly/pkg/logger"
)

type Sweeper struct {
	store    *store.Store
	clock    clock.Clock
	interval time.Duration
	log      *logger.Logger

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func New(s *store.Store, clk clock.Clock, interval time.Duration, log *logger.Logger) *Sweeper {
	return &Sweeper{
		store:    s,
		clock:    clk,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go s.run()
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs a single pass and returns how many bookings it completed.
func (s *Sweeper) Sweep() int {
	n := s.store.CompleteElapsed(s.clock.Now())
	if n > 0 {
		s.log.Info("completed elapsed bookings", "count", n)
	}
	return n
}

// Stop halts the background loop and waits for it to exit.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}
