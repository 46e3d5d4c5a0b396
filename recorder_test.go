package enact_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/FedorSmirnov89/enact/testcases"
	"github.com/stretchr/testify/require"
)

type failingJournal struct{}

func (failingJournal) Append(_ *enact.Record) error {
	return fmt.Errorf("journal down")
}

func (failingJournal) Records(_ enact.Query) (*enact.QueryResult, error) {
	return nil, fmt.Errorf("journal down")
}

func (failingJournal) Shutdown(_ context.Context) error {
	return nil
}

// A failing journal must not block transitions; the recorder logs the
// append error and moves on.
func TestRecorderJournalFailure(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	en := enact.New(enact.EnactmentFuncs{},
		enact.WithLogger(l),
		enact.WithStateListeners(enact.NewRecorder(failingJournal{}, l)),
	)

	require.NoError(t, en.Init(nil))
	require.Equal(t, enact.Ready, en.State())

	_, err := en.Play(context.Background())
	require.NoError(t, err)
	require.Equal(t, enact.Finished, en.State())
}

func TestRecorderDefaultLogger(t *testing.T) {
	r := enact.NewRecorder(failingJournal{}, nil)
	require.NotNil(t, r)
}
