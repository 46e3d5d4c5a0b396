package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FedorSmirnov89/enact"
	"github.com/FedorSmirnov89/enact/badgerjournal"
	"github.com/FedorSmirnov89/enact/memjournal"
	"github.com/FedorSmirnov89/enact/netenact"
	"github.com/FedorSmirnov89/enact/pgjournal"
	"github.com/dgraph-io/badger/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/xo/dburl"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	go handleSignals(cancel)

	cfg := config{
		Addr:       `0:8080`,
		JournalURL: `mem:`,
	}
	if os.Getenv("ENACT_ADDR") != "" {
		cfg.Addr = os.Getenv("ENACT_ADDR")
	}
	if os.Getenv("ENACT_JOURNAL_URL") != "" {
		cfg.JournalURL = os.Getenv("ENACT_JOURNAL_URL")
	}
	if os.Getenv("ENACT_DEMO_APP") != "" {
		cfg.DemoApp = os.Getenv("ENACT_DEMO_APP") == `true`
	}

	if err := newApp(cfg).Run(ctx); err != nil {
		log.Printf("ERROR: %v", err)
		os.Exit(1)
	}
}

func handleSignals(cancel context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)

	<-signals
	log.Printf("INFO: got signal; canceling context")
	cancel()

	<-signals
	log.Printf("WARN: got second signal; force exiting")
	os.Exit(1)
}

type config struct {
	Addr       string
	JournalURL string
	DemoApp    bool
}

type app struct {
	cfg config
	l   *slog.Logger
}

func newApp(cfg config) *app {
	return &app{
		cfg: cfg,
		l:   slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (a *app) Run(ctx context.Context) error {
	ju, err := url.Parse(a.cfg.JournalURL)
	if err != nil {
		return fmt.Errorf("parse journal url: %w", err)
	}

	var j enact.Journal
	switch ju.Scheme {
	case "mem":
		a.l.Info("init memjournal")
		j = memjournal.New()
	case "badger":
		path := ju.Opaque
		if path == `` {
			path = ju.Path
		}
		a.l.Info("init badgerjournal", "path", path)

		badgerCfg := badger.DefaultOptions(path).
			WithInMemory(ju.Query().Get(`in_memory`) == `true`).
			WithLoggingLevel(2)
		db, err := badger.Open(badgerCfg)
		if err != nil {
			return fmt.Errorf("badger: open: %w", err)
		}
		defer db.Close()

		j0, err := badgerjournal.New(db)
		if err != nil {
			return fmt.Errorf("badgerjournal: new: %w", err)
		}
		defer j0.Shutdown(context.Background())

		j = j0
	case "postgres":
		a.l.Info("init pgjournal")

		dsn, err := dburl.Parse(a.cfg.JournalURL)
		if err != nil {
			return fmt.Errorf("parse postgres url: %w", err)
		}

		conn, err := pgxpool.New(context.Background(), dsn.String())
		if err != nil {
			return fmt.Errorf("pgxpool: new: %w", err)
		}
		defer conn.Close()

		for i, m := range pgjournal.Migrations {
			if _, err := conn.Exec(context.Background(), m.SQL); err != nil {
				return fmt.Errorf("migration #%d (%s): %w", i, m.Desc, err)
			}
		}

		j = pgjournal.New(conn)
	default:
		return fmt.Errorf("unknown journal url scheme: %s; support: mem, badger, postgres", ju.Scheme)
	}

	var p enact.WorkflowProvider
	if a.cfg.DemoApp {
		p = demoProvider(j, a.l)
	}

	a.l.Info("http server starting", "addr", a.cfg.Addr)
	srv := &http.Server{
		Addr: a.cfg.Addr,
		Handler: h2c.NewHandler(handleCORS(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			if r.URL.Path == `/health` {
				rw.WriteHeader(http.StatusOK)
				return
			}
			if netenact.HandleAppend(rw, r, j) {
				return
			}
			if netenact.HandleGetRecords(rw, r, j) {
				return
			}
			if p != nil {
				if netenact.HandleInit(rw, r, p) {
					return
				}
				if netenact.HandlePlay(rw, r, p) {
					return
				}
				if netenact.HandlePause(rw, r, p) {
					return
				}
				if netenact.HandleGetState(rw, r, p) {
					return
				}
			}

			http.NotFound(rw, r)
		})), &http2.Server{}),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("WARN: http server: listen and serve: %s", err)
		}
	}()

	<-ctx.Done()

	var shutdownRes error
	shutdownCtx, shutdownCtxCancel := context.WithTimeout(context.Background(), time.Second*30)
	defer shutdownCtxCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		shutdownRes = errors.Join(shutdownRes, fmt.Errorf("http server: shutdown: %w", err))
	}

	if err := j.Shutdown(shutdownCtx); err != nil {
		shutdownRes = errors.Join(shutdownRes, fmt.Errorf("journal: shutdown: %w", err))
	}

	return shutdownRes
}

// demoProvider wires a sleep loop enactment so the control endpoints
// are live out of the box. Each play sleeps through ten steps, one per
// second; pausing halts it between steps.
func demoProvider(j enact.Journal, l *slog.Logger) enact.WorkflowProvider {
	d := &demoEnactment{}

	en := enact.New(d,
		enact.WithID(`demo`),
		enact.WithLogger(l),
		enact.WithStateListeners(enact.NewRecorder(j, l)),
	)

	return enact.WorkflowProviderFunc(func() *enact.Enactable {
		return en
	})
}

// errPaused leaves the play without a transition; the Pause call that
// triggered it transitions to Paused right after.
var errPaused = errors.New("paused")

type demoEnactment struct {
	step   int
	paused chan struct{}
}

func (d *demoEnactment) Init(_ enact.Document) error {
	d.step = 0
	d.paused = nil
	return nil
}

func (d *demoEnactment) Play(ctx context.Context) (enact.Document, error) {
	pausedCh := make(chan struct{})
	d.paused = pausedCh

	for ; d.step < 10; d.step++ {
		select {
		case <-time.After(time.Second):
		case <-pausedCh:
			return nil, errPaused
		case <-ctx.Done():
			return nil, enact.Stop(ctx.Err().Error())
		}
	}

	return enact.Document{"steps": d.step}, nil
}

func (d *demoEnactment) Pause() error {
	if d.paused != nil {
		close(d.paused)
		d.paused = nil
	}

	return nil
}

func handleCORS(h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{`*`},
		AllowedMethods:   []string{`POST`, `GET`},
		AllowedHeaders:   []string{`*`},
		AllowCredentials: true,
		MaxAge:           600,
	}).Handler(h)
}
