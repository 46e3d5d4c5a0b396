package enact_test

import (
	"testing"
	"time"

	"github.com/FedorSmirnov89/enact"
	"github.com/FedorSmirnov89/enact/memjournal"
	"github.com/stretchr/testify/require"
)

func TestWatcherDeliversInOrder(t *testing.T) {
	j := memjournal.New()

	states := []enact.State{enact.Ready, enact.Running, enact.Paused, enact.Running, enact.Finished}
	from := enact.Waiting
	for _, to := range states {
		require.NoError(t, j.Append(&enact.Record{
			EnactableID: "aEID",
			From:        from,
			To:          to,
		}))
		from = to
	}

	w := enact.NewWatcher(j, enact.Query{})
	defer w.Close()

	var actRecs []enact.Record
	timeoutT := time.NewTimer(time.Second * 3)
	defer timeoutT.Stop()

loop:
	for {
		select {
		case rec := <-w.Next():
			actRecs = append(actRecs, rec)

			if len(actRecs) >= len(states) {
				break loop
			}
		case <-timeoutT.C:
			break loop
		}
	}

	require.Len(t, actRecs, len(states))
	for i, rec := range actRecs {
		require.Equal(t, int64(i+1), rec.Rev)
		require.Equal(t, states[i], rec.To)
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	w := enact.NewWatcher(memjournal.New(), enact.Query{})

	w.Close()
	w.Close()
}

// A journal that fails on every read must not wedge the watcher; Close
// still returns.
func TestWatcherJournalFailure(t *testing.T) {
	w := enact.NewWatcher(failingJournal{}, enact.Query{})

	time.Sleep(time.Millisecond * 10)
	w.Close()
}
