// Package notify schedules local reminders. Delivered reminders arrive on a
// channel; the TUI turns them into status-line banners and the CLI prints them.
package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotPermitted = errors.New("notifications not permitted")
	ErrInvalidDelay = errors.New("notification delay must be positive")
	ErrClosed       = errors.New("scheduler closed")
)

// Request describes one reminder. An empty ID is filled in by Schedule.
type Request struct {
	ID       string
	Title    string
	Subtitle string
	Sound    bool
	Delay    time.Duration
}

// Notification is a delivered request.
type Notification struct {
	Request
	DeliveredAt time.Time
}

// Scheduler holds pending reminders until their delay elapses.
type Scheduler struct {
	granted bool
	log     logrus.FieldLogger

	mu      sync.Mutex
	pending map[string]*entry
	out     chan Notification
	closed  bool
}

type entry struct {
	timer *time.Timer
}

// NewScheduler returns a scheduler; granted is the user's permission to notify.
func NewScheduler(granted bool, log logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		granted: granted,
		log:     log,
		pending: make(map[string]*entry),
		out:     make(chan Notification, 16),
	}
}

// Delivered yields notifications as they fire. It is closed by Close.
func (s *Scheduler) Delivered() <-chan Notification { return s.out }

// Schedule queues req and returns the id it was stored under. Scheduling an
// id that is already pending replaces it.
func (s *Scheduler) Schedule(req Request) (string, error) {
	if !s.granted {
		s.log.WithField("title", req.Title).Info("notification dropped: permission not granted")
		return "", ErrNotPermitted
	}
	if req.Delay <= 0 {
		return "", ErrInvalidDelay
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	if old, ok := s.pending[req.ID]; ok {
		old.timer.Stop()
	}
	e := &entry{}
	e.timer = time.AfterFunc(req.Delay, func() { s.fire(req, e) })
	s.pending[req.ID] = e
	s.log.WithFields(logrus.Fields{"id": req.ID, "title": req.Title, "delay": req.Delay}).Debug("notification scheduled")
	return req.ID, nil
}

// Cancel removes a pending request and reports whether it was pending.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.pending[id]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.pending, id)
	return true
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close stops all pending timers and closes the delivery channel.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, e := range s.pending {
		e.timer.Stop()
		delete(s.pending, id)
	}
	close(s.out)
}

func (s *Scheduler) fire(req Request, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// a replaced or cancelled timer may still fire once
	if s.closed || s.pending[req.ID] != e {
		return
	}
	delete(s.pending, req.ID)
	select {
	case s.out <- Notification{Request: req, DeliveredAt: time.Now()}:
	default:
		s.log.WithField("id", req.ID).Warn("notification dropped: delivery queue full")
	}
}
