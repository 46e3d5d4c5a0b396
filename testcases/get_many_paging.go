package testcases

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func GetManyPaging(t *testing.T, j enact.Journal) {
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

	res, err := j.Records(enact.Query{}.WithLimit(2))
	require.NoError(t, err)
	require.True(t, res.More)
	require.Len(t, res.Records, 2)
	require.Equal(t, int64(1), res.Records[0].Rev)
	require.Equal(t, int64(2), res.Records[1].Rev)

	res, err = j.Records(enact.Query{}.WithLimit(2).WithSinceRev(res.Records[1].Rev))
	require.NoError(t, err)
	require.True(t, res.More)
	require.Len(t, res.Records, 2)
	require.Equal(t, int64(3), res.Records[0].Rev)
	require.Equal(t, int64(4), res.Records[1].Rev)

	res, err = j.Records(enact.Query{}.WithLimit(2).WithSinceRev(res.Records[1].Rev))
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 1)
	require.Equal(t, int64(5), res.Records[0].Rev)
	require.Equal(t, enact.Finished, res.Records[0].To)
}
