package testcases

import (
	"context"
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

// Recorder drives a full play through an enactable wired with a
// journal recorder and checks the journaled transitions.
func Recorder(t *testing.T, j enact.Journal) {
	l, _ := NewTestLogger(t)

	en := enact.New(enact.EnactmentFuncs{
		PlayFunc: func(_ context.Context) (enact.Document, error) {
			return enact.Document{"x": 1}, nil
		},
	},
		enact.WithID("aEID"),
		enact.WithLogger(l),
		enact.WithStateListeners(enact.NewRecorder(j, l)),
	)

	require.NoError(t, en.Init(enact.Document{"a": 1}))

	output, err := en.Play(context.Background())
	require.NoError(t, err)
	require.Equal(t, enact.Document{"x": 1}, output)

	res, err := j.Records(enact.Query{}.WithEnactableID("aEID"))
	require.NoError(t, err)
	require.False(t, res.More)
	require.Len(t, res.Records, 3)

	require.Equal(t, enact.Waiting, res.Records[0].From)
	require.Equal(t, enact.Ready, res.Records[0].To)

	require.Equal(t, enact.Ready, res.Records[1].From)
	require.Equal(t, enact.Running, res.Records[1].To)
	require.NotEmpty(t, res.Records[1].Annotations[enact.RunAnnotation])

	require.Equal(t, enact.Running, res.Records[2].From)
	require.Equal(t, enact.Finished, res.Records[2].To)

	require.Greater(t, res.Records[1].Rev, res.Records[0].Rev)
	require.Greater(t, res.Records[2].Rev, res.Records[1].Rev)
}
