package netenact_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/FedorSmirnov89/enact"
	"github.com/FedorSmirnov89/enact/memjournal"
	"github.com/FedorSmirnov89/enact/netenact"
	"github.com/thejerf/slogassert"
)

func TestControlInitPlay(t *testing.T) {
	lh := slogassert.New(t, slog.LevelDebug, nil)
	l := slog.New(slogassert.New(t, slog.LevelDebug, lh))

	gotInputCh := make(chan enact.Document, 1)
	en := enact.New(enact.EnactmentFuncs{
		InitFunc: func(input enact.Document) error {
			gotInputCh <- input
			return nil
		},
		PlayFunc: func(_ context.Context) (enact.Document, error) {
			return enact.Document{"x": 1}, nil
		},
	}, enact.WithID("appEID"), enact.WithLogger(l))

	srv := startSrv(t, enact.WorkflowProviderFunc(func() *enact.Enactable {
		return en
	}))

	c := netenact.NewClient(srv.URL)

	s, err := c.Init(enact.Document{"in": "data"})
	if err != nil {
		t.Fatalf("failed to init: %v", err)
	}
	if s.ID != `appEID` {
		t.Fatalf("expected id 'appEID', got '%s'", s.ID)
	}
	if s.State != enact.Ready {
		t.Fatalf("expected state %s, got %s", enact.Ready, s.State)
	}

	select {
	case gotInput := <-gotInputCh:
		if !reflect.DeepEqual(enact.Document{"in": "data"}, gotInput) {
			t.Fatalf("expected input %+v, got %+v", enact.Document{"in": "data"}, gotInput)
		}
	case <-time.After(time.Second * 3):
		t.Fatal("remote init was not executed")
	}

	output, playS, err := c.Play(context.Background())
	if err != nil {
		t.Fatalf("failed to play: %v", err)
	}
	if !reflect.DeepEqual(enact.Document{"x": float64(1)}, output) {
		t.Fatalf("expected output %+v, got %+v", enact.Document{"x": float64(1)}, output)
	}
	if playS.State != enact.Finished {
		t.Fatalf("expected state %s, got %s", enact.Finished, playS.State)
	}
	if playS.Annotations[enact.RunAnnotation] == `` {
		t.Fatal("expected run annotation to be set")
	}

	getS, err := c.GetState()
	if err != nil {
		t.Fatalf("failed to get state: %v", err)
	}
	if getS.State != enact.Finished {
		t.Fatalf("expected state %s, got %s", enact.Finished, getS.State)
	}
}

func TestControlPlayStopped(t *testing.T) {
	lh := slogassert.New(t, slog.LevelDebug, nil)
	l := slog.New(slogassert.New(t, slog.LevelDebug, lh))

	en := enact.New(enact.EnactmentFuncs{
		PlayFunc: func(_ context.Context) (enact.Document, error) {
			return nil, enact.Stop(`user abort`)
		},
	}, enact.WithLogger(l))

	srv := startSrv(t, enact.WorkflowProviderFunc(func() *enact.Enactable {
		return en
	}))

	c := netenact.NewClient(srv.URL)

	if _, err := c.Init(nil); err != nil {
		t.Fatalf("failed to init: %v", err)
	}

	_, _, err := c.Play(context.Background())
	if !enact.IsErrStopped(err) {
		t.Fatalf("expected stopped error, got: %v", err)
	}
	stopErr := enact.ErrStopped{}
	if !errors.As(err, &stopErr) {
		t.Fatalf("expected ErrStopped, got: %T", err)
	}
	if stopErr.Reason != `user abort` {
		t.Fatalf("expected reason 'user abort', got '%s'", stopErr.Reason)
	}

	s, err := c.GetState()
	if err != nil {
		t.Fatalf("failed to get state: %v", err)
	}
	if s.State != enact.Stopped {
		t.Fatalf("expected state %s, got %s", enact.Stopped, s.State)
	}
	if s.Annotations[enact.StopReasonAnnotation] != `user abort` {
		t.Fatalf("expected stop reason annotation 'user abort', got '%s'", s.Annotations[enact.StopReasonAnnotation])
	}
}

func TestControlPause(t *testing.T) {
	lh := slogassert.New(t, slog.LevelDebug, nil)
	l := slog.New(slogassert.New(t, slog.LevelDebug, lh))

	en := enact.New(enact.EnactmentFuncs{}, enact.WithLogger(l))

	srv := startSrv(t, enact.WorkflowProviderFunc(func() *enact.Enactable {
		return en
	}))

	c := netenact.NewClient(srv.URL)

	if _, err := c.Init(nil); err != nil {
		t.Fatalf("failed to init: %v", err)
	}

	s, err := c.Pause()
	if err != nil {
		t.Fatalf("failed to pause: %v", err)
	}
	if s.State != enact.Paused {
		t.Fatalf("expected state %s, got %s", enact.Paused, s.State)
	}
}

func startSrv(t *testing.T, p enact.WorkflowProvider) *httptest.Server {
	j := memjournal.New()

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Path == `/health` {
			rw.WriteHeader(http.StatusOK)
			return
		}
		if netenact.HandleAll(rw, r, j, p) {
			return
		}

		http.Error(rw, fmt.Sprintf("path %s not supported", r.URL.Path), http.StatusNotFound)
	}))

	t.Cleanup(srv.Close)

	timeoutT := time.NewTimer(time.Second)
	defer timeoutT.Stop()
	readyT := time.NewTicker(time.Millisecond * 50)
	defer readyT.Stop()

loop:
	for {
		select {
		case <-timeoutT.C:
			t.Fatalf("app not ready within %s", time.Second)
		case <-readyT.C:

			resp, err := http.Get(srv.URL + `/health`)
			if err != nil {
				continue loop
			}
			resp.Body.Close()

			return srv
		}
	}
}
