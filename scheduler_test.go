package enact_test

import (
	"context"
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/FedorSmirnov89/enact/testcases"
	"github.com/stretchr/testify/require"
)

func TestSchedulerShutdown(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	s := enact.NewScheduler(nil, l)

	require.NoError(t, s.Shutdown(context.Background()))
	require.EqualError(t, s.Shutdown(context.Background()), `already shutdown`)
}

func TestSchedulerPlayCronInvalid(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	s := enact.NewScheduler(nil, l)
	t.Cleanup(func() {
		require.NoError(t, s.Shutdown(context.Background()))
	})

	en := enact.New(enact.EnactmentFuncs{}, enact.WithLogger(l))
	require.Error(t, s.PlayCron(en, `not a cron expression`))
}
