package enact

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorhill/cronexpr"
	"golang.org/x/time/rate"
)

// Scheduler plays enactables at scheduled times: one shot via PlayAt,
// recurring via PlayCron. Due plays run on their own goroutine,
// optionally gated by a rate limiter.
type Scheduler struct {
	lim *rate.Limiter
	l   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	entries []*schedulerEntry

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

type schedulerEntry struct {
	en   *Enactable
	at   time.Time
	expr *cronexpr.Expression
}

const schedulerTickInterval = 100 * time.Millisecond

// NewScheduler starts the scheduling loop. A nil lim means plays are
// dispatched unlimited.
func NewScheduler(lim *rate.Limiter, l *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		lim: lim,
		l:   l,

		ctx:    ctx,
		cancel: cancel,

		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}

	go func() {
		defer close(s.stoppedCh)

		t := time.NewTicker(schedulerTickInterval)
		defer t.Stop()

		for {
			select {
			case now := <-t.C:
				for _, en := range s.collectDue(now) {
					go s.play(en)
				}
			case <-s.stopCh:
				return
			}
		}
	}()

	return s
}

// PlayAt schedules a single play of en at the given time. Times in the
// past fire on the next tick.
func (s *Scheduler) PlayAt(en *Enactable, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, &schedulerEntry{en: en, at: at})
}

// PlayCron schedules recurring plays of en at the times of the cron
// expression. The entry is dropped once the enactable reaches a
// terminal state; a paused enactable resumes on the next fire.
func (s *Scheduler) PlayCron(en *Enactable, expr string) error {
	e, err := cronexpr.Parse(expr)
	if err != nil {
		return fmt.Errorf("parse cron expression: %w", err)
	}

	next := e.Next(time.Now())
	if next.IsZero() {
		return fmt.Errorf("cron expression %q has no next time", expr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, &schedulerEntry{en: en, at: next, expr: e})
	return nil
}

func (s *Scheduler) collectDue(now time.Time) []*Enactable {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*Enactable
	keep := s.entries[:0]
	for _, entry := range s.entries {
		if entry.expr != nil && entry.en.State().Terminal() {
			continue
		}
		if entry.at.After(now) {
			keep = append(keep, entry)
			continue
		}

		due = append(due, entry.en)

		if entry.expr != nil {
			if next := entry.expr.Next(now); !next.IsZero() {
				entry.at = next
				keep = append(keep, entry)
			}
		}
	}
	s.entries = keep

	return due
}

func (s *Scheduler) play(en *Enactable) {
	if s.lim != nil {
		if err := s.lim.Wait(s.ctx); err != nil {
			return
		}
	}

	if _, err := en.Play(s.ctx); IsErrStopped(err) {
		s.l.Info("scheduled play stopped", "id", en.ID(), "error", err)
	} else if err != nil {
		s.l.Error("scheduled play failed", "id", en.ID(), "error", err)
	}
}

// Shutdown stops the scheduling loop and cancels the context handed to
// in flight plays; the plays themselves are not awaited.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	select {
	case <-s.stopCh:
		return fmt.Errorf(`already shutdown`)
	default:
		close(s.stopCh)
		s.cancel()

		select {
		case <-s.stoppedCh:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
