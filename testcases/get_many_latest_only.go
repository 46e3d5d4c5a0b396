package testcases

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func GetManyLatestOnly(t *testing.T, j enact.Journal) {
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Waiting,
		To:          enact.Ready,
	}))
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "bEID",
		From:        enact.Waiting,
		To:          enact.Ready,
	}))
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Ready,
		To:          enact.Running,
	}))
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "bEID",
		From:        enact.Ready,
		To:          enact.Paused,
	}))
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Running,
		To:          enact.Finished,
	}))

	res, err := j.Records(enact.Query{}.WithLatestOnly())
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 2)
	require.Equal(t, enact.EnactableID(`bEID`), res.Records[0].EnactableID)
	require.Equal(t, int64(4), res.Records[0].Rev)
	require.Equal(t, enact.Paused, res.Records[0].To)
	require.Equal(t, enact.EnactableID(`aEID`), res.Records[1].EnactableID)
	require.Equal(t, int64(5), res.Records[1].Rev)
	require.Equal(t, enact.Finished, res.Records[1].To)

	res, err = j.Records(enact.Query{}.WithLatestOnly().WithEnactableID("aEID"))
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 1)
	require.Equal(t, enact.EnactableID(`aEID`), res.Records[0].EnactableID)
	require.Equal(t, int64(5), res.Records[0].Rev)
}
