package lurk

import "log/slog"

// pkgLogger receives all library diagnostics. lurk is single-threaded, so no
// synchronization guards it.
var pkgLogger = slog.New(slog.DiscardHandler)

// SetLogger routes library diagnostics to l. Passing nil silences them.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	pkgLogger = l
}

func logger() *slog.Logger { return pkgLogger }
