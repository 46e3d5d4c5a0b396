package testcases

import (
	"context"
	"testing"
	"time"

	"github.com/FedorSmirnov89/enact"
	"go.uber.org/goleak"
)

type Suite struct {
	SetUp func(t *testing.T) enact.Journal

	disableGoleak bool
	cases         map[string]func(t *testing.T, j enact.Journal)
}

func (s *Suite) Test(main *testing.T) {
	for name := range s.cases {
		s.run(main, name)
	}
}

func (s *Suite) run(main *testing.T, name string) {
	if !s.disableGoleak {
		defer goleak.VerifyNone(main, goleak.IgnoreCurrent())
	}

	main.Run(name, func(t *testing.T) {
		t.Helper()

		fn := s.cases[name]
		if fn == nil {
			t.SkipNow()
		}

		j := s.SetUp(t)
		t.Cleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()

			if err := j.Shutdown(ctx); err != nil {
				t.Fatalf("failed to shutdown journal: %v", err)
			}
		})

		fn(t, j)
	})
}

func (s *Suite) DisableGoleak() {
	s.disableGoleak = true
}

func (s *Suite) Skip(t *testing.T, name string) {
	if _, ok := s.cases[name]; !ok {
		t.Fatal("unknown test case: ", name)
	}

	s.cases[name] = nil
}

func Get(setUp func(t *testing.T) enact.Journal) *Suite {
	return &Suite{
		SetUp: setUp,

		cases: map[string]func(t *testing.T, j enact.Journal){
			"AppendRevs": AppendRevs,

			"GetManyEnactable":   GetManyEnactable,
			"GetManyLatestOnly":  GetManyLatestOnly,
			"GetManyPaging":      GetManyPaging,
			"GetManySinceLatest": GetManySinceLatest,
			"GetManySinceRev":    GetManySinceRev,
			"GetManySinceTime":   GetManySinceTime,

			"Recorder":        Recorder,
			"RecorderStopped": RecorderStopped,

			"WatchSinceLatest": WatchSinceLatest,
			"WatchSinceRev":    WatchSinceRev,
		},
	}
}
