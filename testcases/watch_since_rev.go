package testcases

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func WatchSinceRev(t *testing.T, j enact.Journal) {
	rec := &enact.Record{
		EnactableID: "aEID",
		From:        enact.Waiting,
		To:          enact.Ready,
	}
	require.NoError(t, j.Append(rec))
	sinceRev := rec.Rev

	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Ready,
		To:          enact.Running,
	}))
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Running,
		To:          enact.Paused,
	}))

	w := enact.NewWatcher(j, enact.Query{}.WithSinceRev(sinceRev).WithEnactableID("aEID"))
	defer w.Close()

	actRecs := watchCollectRecords(t, w, 2)
	require.Len(t, actRecs, 2)

	require.Equal(t, enact.EnactableID(`aEID`), actRecs[0].EnactableID)
	require.Greater(t, actRecs[0].Rev, sinceRev)
	require.Equal(t, enact.Running, actRecs[0].To)

	require.Equal(t, enact.EnactableID(`aEID`), actRecs[1].EnactableID)
	require.Greater(t, actRecs[1].Rev, actRecs[0].Rev)
	require.Equal(t, enact.Paused, actRecs[1].To)

	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Paused,
		To:          enact.Running,
	}))

	actRecs = watchCollectRecords(t, w, 1)
	require.Len(t, actRecs, 1)
	require.Equal(t, enact.Running, actRecs[0].To)
	require.Equal(t, enact.Paused, actRecs[0].From)
}
