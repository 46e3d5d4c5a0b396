package testcases

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func AppendRevs(t *testing.T, j enact.Journal) {
	rec := &enact.Record{
		EnactableID: "aEID",
		From:        enact.Waiting,
		To:          enact.Ready,
	}
	require.NoError(t, j.Append(rec))
	require.Equal(t, int64(1), rec.Rev)
	require.NotZero(t, rec.AtUnixMilli)

	rec1 := &enact.Record{
		EnactableID: "aEID",
		From:        enact.Ready,
		To:          enact.Running,
	}
	require.NoError(t, j.Append(rec1))
	require.Equal(t, int64(2), rec1.Rev)

	require.Error(t, j.Append(&enact.Record{}))

	rec2 := &enact.Record{
		EnactableID: "bEID",
		From:        enact.Waiting,
		To:          enact.Ready,
		Annotations: map[string]string{`fooAnnot`: `fooVal`},
	}
	require.NoError(t, j.Append(rec2))
	rec2.Annotations[`fooAnnot`] = `changed`

	res, err := j.Records(enact.Query{})
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 3)

	require.Equal(t, int64(1), res.Records[0].Rev)
	require.Equal(t, enact.EnactableID(`aEID`), res.Records[0].EnactableID)
	require.Equal(t, enact.Waiting, res.Records[0].From)
	require.Equal(t, enact.Ready, res.Records[0].To)
	require.NotZero(t, res.Records[0].AtUnixMilli)

	require.Equal(t, int64(2), res.Records[1].Rev)
	require.Equal(t, enact.Running, res.Records[1].To)

	require.Equal(t, int64(3), res.Records[2].Rev)
	require.Equal(t, enact.EnactableID(`bEID`), res.Records[2].EnactableID)
	require.Equal(t, `fooVal`, res.Records[2].Annotations[`fooAnnot`])
}
