package enact_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/FedorSmirnov89/enact/testcases"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	en := enact.New(enact.EnactmentFuncs{}, enact.WithLogger(l))
	require.Equal(t, enact.Waiting, en.State())

	_, err := ulid.Parse(string(en.ID()))
	require.NoError(t, err)

	en1 := enact.New(
		enact.EnactmentFuncs{},
		enact.WithLogger(l),
		enact.WithID(`theEID`),
		enact.WithAnnotation(`theAnnot`, `aVal`),
	)
	require.Equal(t, enact.EnactableID(`theEID`), en1.ID())
	require.Equal(t, map[string]string{`theAnnot`: `aVal`}, en1.Annotations())

	require.Equal(t, enact.Snapshot{
		ID:          `theEID`,
		State:       enact.Waiting,
		Annotations: map[string]string{`theAnnot`: `aVal`},
	}, en1.Snapshot())
}

func TestInitTransitionsToReady(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	var input enact.Document
	e := enact.EnactmentFuncs{
		InitFunc: func(doc enact.Document) error {
			input = doc
			return nil
		},
	}

	rl := &recListener{}
	en := enact.New(e, enact.WithLogger(l), enact.WithStateListeners(rl))

	require.NoError(t, en.Init(enact.Document{"a": 1}))
	require.Equal(t, enact.Ready, en.State())
	require.Equal(t, enact.Document{"a": 1}, input)
	require.Equal(t, []stateChange{
		{enact.Waiting, enact.Ready},
	}, rl.Changes())
}

func TestInitErrorKeepsState(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	cause := errors.New("malformed input")
	e := enact.EnactmentFuncs{
		InitFunc: func(_ enact.Document) error {
			return cause
		},
	}

	rl := &recListener{}
	en := enact.New(e, enact.WithLogger(l), enact.WithStateListeners(rl))

	err := en.Init(enact.Document{})
	require.ErrorIs(t, err, cause)
	require.Equal(t, enact.Waiting, en.State())
	require.Empty(t, rl.Changes())
}

func TestPlayFinishes(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	e := enact.EnactmentFuncs{
		PlayFunc: func(_ context.Context) (enact.Document, error) {
			return enact.Document{"x": 1}, nil
		},
	}

	rl := &recListener{}
	en := enact.New(e, enact.WithLogger(l), enact.WithStateListeners(rl))

	require.NoError(t, en.Init(nil))

	output, err := en.Play(context.Background())
	require.NoError(t, err)
	require.Equal(t, enact.Document{"x": 1}, output)
	require.Equal(t, enact.Finished, en.State())

	require.Equal(t, []stateChange{
		{enact.Waiting, enact.Ready},
		{enact.Ready, enact.Running},
		{enact.Running, enact.Finished},
	}, rl.Changes())

	require.NotEmpty(t, en.Annotations()[enact.RunAnnotation])
}

func TestPlayStopped(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	e := enact.EnactmentFuncs{
		PlayFunc: func(_ context.Context) (enact.Document, error) {
			return nil, enact.Stop(`user abort`)
		},
	}

	rl := &recListener{}
	en := enact.New(e, enact.WithLogger(l), enact.WithStateListeners(rl))

	require.NoError(t, en.Init(nil))

	output, err := en.Play(context.Background())
	require.Nil(t, output)
	require.True(t, enact.IsErrStopped(err))
	require.EqualError(t, err, `stopped: user abort`)
	require.Equal(t, enact.Stopped, en.State())

	stopErr := &enact.ErrStopped{}
	require.ErrorAs(t, err, stopErr)
	require.Equal(t, `user abort`, stopErr.Reason)

	require.Equal(t, `user abort`, en.Annotations()[enact.StopReasonAnnotation])
	require.Equal(t, []stateChange{
		{enact.Waiting, enact.Ready},
		{enact.Ready, enact.Running},
		{enact.Running, enact.Stopped},
	}, rl.Changes())
}

func TestPlayErrorStaysRunning(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	cause := errors.New("worker crashed")
	e := enact.EnactmentFuncs{
		PlayFunc: func(_ context.Context) (enact.Document, error) {
			return nil, cause
		},
	}

	en := enact.New(e, enact.WithLogger(l))
	require.NoError(t, en.Init(nil))

	output, err := en.Play(context.Background())
	require.Nil(t, output)
	require.ErrorIs(t, err, cause)
	require.False(t, enact.IsErrStopped(err))
	require.Equal(t, enact.Running, en.State())
}

func TestPauseTransitionsToPaused(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	paused := false
	e := enact.EnactmentFuncs{
		PauseFunc: func() error {
			paused = true
			return nil
		},
	}

	rl := &recListener{}
	en := enact.New(e, enact.WithLogger(l), enact.WithStateListeners(rl))

	require.NoError(t, en.Init(nil))
	require.NoError(t, en.Pause())
	require.True(t, paused)
	require.Equal(t, enact.Paused, en.State())
	require.Equal(t, []stateChange{
		{enact.Waiting, enact.Ready},
		{enact.Ready, enact.Paused},
	}, rl.Changes())
}

func TestPauseErrorKeepsState(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	cause := errors.New("not interruptible here")
	e := enact.EnactmentFuncs{
		PauseFunc: func() error {
			return cause
		},
	}

	en := enact.New(e, enact.WithLogger(l))
	require.NoError(t, en.Init(nil))

	err := en.Pause()
	require.ErrorIs(t, err, cause)
	require.Equal(t, enact.Ready, en.State())
}

// A cooperating enactment parks its play work when told to pause and
// picks it up on the next play. The paused play returns a plain error
// so the enactable keeps the state the pause transition set.
func TestPauseResumesNextPlay(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	errWorkParked := errors.New("work parked")

	workCh := make(chan int)
	doneCh := make(chan struct{})
	pauseCh := make(chan struct{}, 1)

	sum := 0
	e := enact.EnactmentFuncs{
		PlayFunc: func(_ context.Context) (enact.Document, error) {
			for {
				select {
				case n := <-workCh:
					sum += n
				case <-pauseCh:
					return nil, errWorkParked
				case <-doneCh:
					return enact.Document{"sum": sum}, nil
				}
			}
		},
		PauseFunc: func() error {
			pauseCh <- struct{}{}
			return nil
		},
	}

	rl := &recListener{}
	en := enact.New(e, enact.WithLogger(l), enact.WithStateListeners(rl))
	require.NoError(t, en.Init(nil))

	playResCh := make(chan error, 1)
	go func() {
		_, err := en.Play(context.Background())
		playResCh <- err
	}()

	workCh <- 1
	require.NoError(t, en.Pause())

	require.ErrorIs(t, <-playResCh, errWorkParked)
	require.Equal(t, enact.Paused, en.State())

	outputCh := make(chan enact.Document, 1)
	go func() {
		output, err := en.Play(context.Background())
		outputCh <- output
		playResCh <- err
	}()

	workCh <- 2
	close(doneCh)

	require.NoError(t, <-playResCh)
	require.Equal(t, enact.Document{"sum": 3}, <-outputCh)
	require.Equal(t, enact.Finished, en.State())

	changes := rl.Changes()
	require.Equal(t, []stateChange{
		{enact.Waiting, enact.Ready},
		{enact.Ready, enact.Running},
		{enact.Running, enact.Paused},
		{enact.Paused, enact.Running},
		{enact.Running, enact.Finished},
	}, changes)
}

func TestInitResets(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	e := enact.EnactmentFuncs{
		PlayFunc: func(_ context.Context) (enact.Document, error) {
			return enact.Document{}, nil
		},
	}

	rl := &recListener{}
	en := enact.New(e, enact.WithLogger(l), enact.WithStateListeners(rl))

	require.NoError(t, en.Init(nil))
	_, err := en.Play(context.Background())
	require.NoError(t, err)
	require.Equal(t, enact.Finished, en.State())

	require.NoError(t, en.Init(nil))
	require.Equal(t, enact.Ready, en.State())
	require.Equal(t, []stateChange{
		{enact.Waiting, enact.Ready},
		{enact.Ready, enact.Running},
		{enact.Running, enact.Finished},
		{enact.Finished, enact.Ready},
	}, rl.Changes())
}

func TestSetStateNotifies(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	rl := &recListener{}
	en := enact.New(enact.EnactmentFuncs{}, enact.WithLogger(l), enact.WithStateListeners(rl))

	en.SetState(enact.Stopped)
	require.Equal(t, enact.Stopped, en.State())
	require.Equal(t, []stateChange{
		{enact.Waiting, enact.Stopped},
	}, rl.Changes())
}

// A listener asking the enactable for its state mid notification still
// sees the state being left.
func TestListenerSeesOldState(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	var en *enact.Enactable
	var observed []enact.State
	en = enact.New(enact.EnactmentFuncs{}, enact.WithLogger(l), enact.WithStateListeners(
		enact.StateListenerFunc(func(_ *enact.Enactable, from, to enact.State) {
			require.Equal(t, from, en.State())
			observed = append(observed, to)
		}),
	))

	require.NoError(t, en.Init(nil))
	_, err := en.Play(context.Background())
	require.NoError(t, err)

	require.Equal(t, []enact.State{enact.Ready, enact.Running, enact.Finished}, observed)
}

func TestListenerOrderAndDedup(t *testing.T) {
	l, _ := testcases.NewTestLogger(t)

	var got []string
	first := &taggingListener{tag: `first`, to: &got}
	second := &taggingListener{tag: `second`, to: &got}

	en := enact.New(enact.EnactmentFuncs{}, enact.WithLogger(l))
	en.AddStateListener(first)
	en.AddStateListener(second)
	en.AddStateListener(first)
	require.Equal(t, []enact.StateListener{first, second}, en.StateListeners())

	en.SetState(enact.Ready)
	require.Equal(t, []string{`first`, `second`}, got)

	en.RemoveStateListener(first)
	require.Equal(t, []enact.StateListener{second}, en.StateListeners())

	got = got[:0]
	en.SetState(enact.Running)
	require.Equal(t, []string{`second`}, got)

	en.RemoveStateListener(&taggingListener{tag: `unknown`, to: &got})
	require.Equal(t, []enact.StateListener{second}, en.StateListeners())
}

type stateChange struct {
	From, To enact.State
}

type recListener struct {
	mu      sync.Mutex
	changes []stateChange
}

func (rl *recListener) StateChanged(_ *enact.Enactable, from, to enact.State) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.changes = append(rl.changes, stateChange{From: from, To: to})
}

func (rl *recListener) Changes() []stateChange {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return append([]stateChange(nil), rl.changes...)
}

type taggingListener struct {
	tag string
	to  *[]string
}

func (tl *taggingListener) StateChanged(_ *enact.Enactable, _, _ enact.State) {
	*tl.to = append(*tl.to, tl.tag)
}
