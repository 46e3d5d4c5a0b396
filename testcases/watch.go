package testcases

import (
	"testing"
	"time"

	"github.com/FedorSmirnov89/enact"
)

func watchCollectRecords(t *testing.T, w *enact.Watcher, limit int) []enact.Record {
	t.Helper()

	var recs []enact.Record
	timeoutT := time.NewTimer(time.Second * 3)
	defer timeoutT.Stop()

loop:
	for {
		select {
		case rec := <-w.Next():
			recs = append(recs, rec)

			if len(recs) >= limit {
				break loop
			}
		case <-timeoutT.C:
			break loop
		}
	}

	return recs
}
