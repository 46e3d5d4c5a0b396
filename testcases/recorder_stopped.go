package testcases

import (
	"context"
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func RecorderStopped(t *testing.T, j enact.Journal) {
	l, _ := NewTestLogger(t)

	en := enact.New(enact.EnactmentFuncs{
		PlayFunc: func(_ context.Context) (enact.Document, error) {
			return nil, enact.Stop(`operator request`)
		},
	},
		enact.WithID("aEID"),
		enact.WithLogger(l),
		enact.WithStateListeners(enact.NewRecorder(j, l)),
	)

	require.NoError(t, en.Init(nil))

	_, err := en.Play(context.Background())
	require.True(t, enact.IsErrStopped(err))
	require.Equal(t, enact.Stopped, en.State())

	res, err := j.Records(enact.Query{}.WithEnactableID("aEID").WithSinceLatest())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	require.Equal(t, enact.Running, res.Records[0].From)
	require.Equal(t, enact.Stopped, res.Records[0].To)
	require.Equal(t, `operator request`, res.Records[0].Annotations[enact.StopReasonAnnotation])
	require.NotEmpty(t, res.Records[0].Annotations[enact.RunAnnotation])
}
