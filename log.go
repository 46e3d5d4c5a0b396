package enact

import "log/slog"

func logTransition(l *slog.Logger, op string, en *Enactable, from, to State, args ...any) {
	a := make([]any, 0, len(args)+6)
	a = append(a,
		"id", en.id,
		"from", from,
		"to", to,
	)
	a = append(a, args...)

	l.Info(op, a...)
}
