package testcases

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func GetManyEnactable(t *testing.T, j enact.Journal) {
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

	res, err := j.Records(enact.Query{}.WithEnactableID("aEID"))
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 2)
	require.Equal(t, enact.EnactableID(`aEID`), res.Records[0].EnactableID)
	require.Equal(t, enact.Ready, res.Records[0].To)
	require.Equal(t, enact.EnactableID(`aEID`), res.Records[1].EnactableID)
	require.Equal(t, enact.Running, res.Records[1].To)

	res, err = j.Records(enact.Query{}.WithEnactableID("cEID"))
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 0)
}
