package service

import (
	"context"
	"sync"
	"time"
)

const pollRequestTimeout = 30 * time.Second

// poller drives the fixed-interval status loop for one job. Stopping only
// closes a channel; the loop goroutine drains on its own, so Stop is safe to
// call while holding the session lock.
type poller struct {
	stop chan struct{}
	once sync.Once
}

func newPoller() *poller {
	return &poller{stop: make(chan struct{})}
}

func (p *poller) Stop() {
	p.once.Do(func() { close(p.stop) })
}

// startPollerLocked launches the status loop for the current job. Caller
// holds the session lock.
func (s *Session) startPollerLocked() {
	s.stopPollerLocked()
	p := newPoller()
	s.poller = p
	go s.pollLoop(p, s.job.ID)
}

func (s *Session) stopPollerLocked() {
	if s.poller != nil {
		s.poller.Stop()
		s.poller = nil
	}
}

// pollLoop issues one status request per tick until ApplyStatus reports a
// terminal transition or the poller is stopped. Requests are sequential:
// a slow backend delays the next tick instead of stacking requests.
func (s *Session) pollLoop(p *poller, jobID string) {
	ticker := time.NewTicker(s.config.GetPollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), pollRequestTimeout)
		resp, err := s.backend.JobStatus(ctx, jobID)
		cancel()

		if s.ApplyStatus(jobID, resp, err) {
			return
		}
	}
}
