package testcases

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func WatchSinceLatest(t *testing.T, j enact.Journal) {
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Waiting,
		To:          enact.Ready,
	}))
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Ready,
		To:          enact.Running,
	}))

	w := enact.NewWatcher(j, enact.Query{}.WithSinceLatest())
	defer w.Close()

	actRecs := watchCollectRecords(t, w, 1)
	require.Len(t, actRecs, 1)
	require.Equal(t, int64(2), actRecs[0].Rev)
	require.Equal(t, enact.Running, actRecs[0].To)

	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Running,
		To:          enact.Finished,
	}))

	actRecs = watchCollectRecords(t, w, 1)
	require.Len(t, actRecs, 1)
	require.Equal(t, int64(3), actRecs[0].Rev)
	require.Equal(t, enact.Finished, actRecs[0].To)
}
