package enact

import (
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

// Watcher streams journal records matching a query in revision order.
// It polls the journal head until new records show up, so it works
// against any Journal implementation, remote ones included.
type Watcher struct {
	j Journal
	q Query
	l *slog.Logger

	watchCh  chan Record
	closeCh  chan struct{}
	closedCh chan struct{}
	closed   atomic.Bool
}

const watchPollInterval = 100 * time.Millisecond

// NewWatcher starts watching j for records matching q. The query is
// copied; advancing revisions stays internal to the watcher.
func NewWatcher(j Journal, q Query) *Watcher {
	q.Prepare()

	w := &Watcher{
		j: j,
		q: q,
		l: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{})),

		watchCh:  make(chan Record, 1),
		closeCh:  make(chan struct{}),
		closedCh: make(chan struct{}),
	}

	go w.doWatch()

	return w
}

// Next returns the channel records arrive on. The channel is never
// closed; select on it together with application shutdown signals.
func (w *Watcher) Next() <-chan Record {
	return w.watchCh
}

// Close stops the watcher and waits for its goroutine to exit. Safe to
// call more than once.
func (w *Watcher) Close() {
	if w.closed.CompareAndSwap(false, true) {
		close(w.closeCh)
	}

	<-w.closedCh
}

func (w *Watcher) doWatch() {
	defer close(w.closedCh)

	t := time.NewTicker(watchPollInterval)
	defer t.Stop()

	for {
		select {
		case <-w.closeCh:
			return
		default:
		}

		if !w.stream() {
			return
		}

		select {
		case <-t.C:
		case <-w.closeCh:
			return
		}
	}
}

// stream sends all currently available records; false means the
// watcher is done for good.
func (w *Watcher) stream() bool {
	for {
		res, err := w.j.Records(w.q)
		if err != nil {
			w.l.Error("watcher: get records", "error", err)
			if w.closed.CompareAndSwap(false, true) {
				close(w.closeCh)
			}
			return false
		}

		// no matching records yet; stream everything from here on
		if w.q.SinceRev == -1 && len(res.Records) == 0 {
			w.q.SinceRev = 0
		}

		for i := range res.Records {
			select {
			case w.watchCh <- res.Records[i]:
				w.q.SinceRev = res.Records[i].Rev
			case <-w.closeCh:
				return false
			}
		}

		if res.More {
			continue
		}

		return true
	}
}
