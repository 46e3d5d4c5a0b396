package testcases

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func GetManySinceRev(t *testing.T, j enact.Journal) {
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
		To:          enact.Finished,
	}))

	res, err := j.Records(enact.Query{}.WithSinceRev(sinceRev))
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 2)

	require.Equal(t, enact.EnactableID(`aEID`), res.Records[0].EnactableID)
	require.Greater(t, res.Records[0].Rev, sinceRev)
	require.Equal(t, enact.Running, res.Records[0].To)

	require.Equal(t, enact.EnactableID(`aEID`), res.Records[1].EnactableID)
	require.Greater(t, res.Records[1].Rev, res.Records[0].Rev)
	require.Equal(t, enact.Finished, res.Records[1].To)

	res, err = j.Records(enact.Query{}.WithSinceRev(res.Records[1].Rev))
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 0)
}
