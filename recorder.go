package enact

import (
	"log/slog"
	"os"
)

// Recorder is a StateListener appending one journal record per
// transition, carrying the enactable's annotations at that moment.
type Recorder struct {
	j Journal
	l *slog.Logger
}

func NewRecorder(j Journal, l *slog.Logger) *Recorder {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))
	}

	return &Recorder{
		j: j,
		l: l,
	}
}

func (r *Recorder) StateChanged(en *Enactable, from, to State) {
	rec := &Record{
		EnactableID: en.ID(),
		From:        from,
		To:          to,
		Annotations: en.Annotations(),
	}

	if err := r.j.Append(rec); err != nil {
		r.l.Error("append record", "id", en.ID(), "from", from, "to", to, "error", err)
	}
}
