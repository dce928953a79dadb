package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// newLogger builds the command logger.
//
// The terminal handler writes text to stderr at warn level, or debug with
// --verbose, so stdout carries only the command's result. A log file gets
// every record as JSON. The journal handler is best-effort: when no journal
// socket is available a warning goes to the terminal and logging continues.
//
// The returned close function flushes and closes the log file.
func (o *RootOptions) newLogger(stderr io.Writer) (*slog.Logger, func() error, error) {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}

	terminal := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	handlers := []slog.Handler{terminal}
	closeFn := func() error { return nil }

	if o.LogFile != "" {
		f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closeFn = f.Close
	}

	if o.LogJournal {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{Level: level})
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
			record.Add("error", err)
			_ = terminal.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journal)
		}
	}

	if len(handlers) == 1 {
		return slog.New(terminal), closeFn, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
