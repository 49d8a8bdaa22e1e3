package logging

import (
	"io"
	"log"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where log output goes
type Options struct {
	// File is the rotated log file. Empty disables file logging.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Stderr also copies output to standard error
	Stderr bool

	// UIBuffer is the capacity of the UI line channel. Zero disables it.
	UIBuffer int
}

// DefaultOptions logs to file with a UI feed
func DefaultOptions(file string) Options {
	return Options{
		File:       file,
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 28,
		UIBuffer:   256,
	}
}

// Logging bundles the shared logger with its sinks
type Logging struct {
	Logger *log.Logger
	// Lines carries one log line per message for the UI log pane. Nil when
	// the UI feed is disabled.
	Lines <-chan string

	file *lumberjack.Logger
}

// New builds the application logger
func New(opts Options) *Logging {
	l := &Logging{}
	var writers []io.Writer

	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		writers = append(writers, l.file)
	}
	if opts.Stderr {
		writers = append(writers, os.Stderr)
	}
	if opts.UIBuffer > 0 {
		lines := make(chan string, opts.UIBuffer)
		l.Lines = lines
		writers = append(writers, &lineWriter{lines: lines})
	}

	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}
	l.Logger = log.New(out, "", log.LstdFlags|log.Lmicroseconds)
	return l
}

// Close flushes and closes the log file
func (l *Logging) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// lineWriter forwards each written line to a channel. It never blocks: lines
// are dropped while the channel is full.
type lineWriter struct {
	lines chan<- string
}

func (w *lineWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		select {
		case w.lines <- line:
		default:
		}
	}
	return len(p), nil
}
