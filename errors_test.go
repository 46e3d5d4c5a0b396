package enact_test

import (
	"fmt"
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func TestErrStopped(t *testing.T) {
	err := enact.Stop("operator request")
	require.EqualError(t, err, "stopped: operator request")
	require.True(t, enact.IsErrStopped(err))

	require.EqualError(t, enact.Stop(""), "stopped")

	wrapped := fmt.Errorf("play: %w", err)
	require.True(t, enact.IsErrStopped(wrapped))

	stopErr := &enact.ErrStopped{}
	require.ErrorAs(t, wrapped, stopErr)
	require.Equal(t, "operator request", stopErr.Reason)

	require.False(t, enact.IsErrStopped(fmt.Errorf("boom")))
	require.False(t, enact.IsErrStopped(nil))
}
