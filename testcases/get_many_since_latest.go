package testcases

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func GetManySinceLatest(t *testing.T, j enact.Journal) {
	res, err := j.Records(enact.Query{}.WithSinceLatest())
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 0)

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
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "bEID",
		From:        enact.Waiting,
		To:          enact.Ready,
	}))

	res, err = j.Records(enact.Query{}.WithSinceLatest())
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 1)
	require.Equal(t, enact.EnactableID(`bEID`), res.Records[0].EnactableID)
	require.Equal(t, int64(3), res.Records[0].Rev)

	res, err = j.Records(enact.Query{}.WithSinceLatest().WithEnactableID("aEID"))
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 1)
	require.Equal(t, enact.EnactableID(`aEID`), res.Records[0].EnactableID)
	require.Equal(t, int64(2), res.Records[0].Rev)
	require.Equal(t, enact.Running, res.Records[0].To)
}
