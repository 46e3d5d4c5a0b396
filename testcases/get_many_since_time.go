package testcases

import (
	"testing"
	"time"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func GetManySinceTime(t *testing.T, j enact.Journal) {
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Waiting,
		To:          enact.Ready,
		AtUnixMilli: 100,
	}))
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Ready,
		To:          enact.Running,
		AtUnixMilli: 200,
	}))
	require.NoError(t, j.Append(&enact.Record{
		EnactableID: "aEID",
		From:        enact.Running,
		To:          enact.Finished,
		AtUnixMilli: 300,
	}))

	res, err := j.Records(enact.Query{}.WithSinceTime(time.UnixMilli(200)))
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 2)
	require.Equal(t, int64(200), res.Records[0].AtUnixMilli)
	require.Equal(t, enact.Running, res.Records[0].To)
	require.Equal(t, int64(300), res.Records[1].AtUnixMilli)
	require.Equal(t, enact.Finished, res.Records[1].To)

	res, err = j.Records(enact.Query{}.WithSinceTime(time.UnixMilli(301)))
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 0)
}
