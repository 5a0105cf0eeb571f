// Package loader applies configuration files to the option tables one line at
// a time. Lines that fail are reported and skipped; the rest still take effect.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/eugenenazirov/rcopts/internal/lexer"
	"github.com/eugenenazirov/rcopts/internal/notify"
)

const maxLineSize = 1 << 20

var (
	// ErrOpen is returned when the configuration file cannot be opened.
	ErrOpen = errors.New("cannot open options file")
)

// Dispatcher executes one directive.
type Dispatcher interface {
	Dispatch(keyword, remainder string) error
}

// Result summarises a completed load.
type Result struct {
	Path     string
	Lines    int
	Failures int
}

// Failed reports whether any line was rejected.
func (r Result) Failed() bool {
	return r.Failures > 0
}

// Loader reads configuration sources and feeds their directives to a Dispatcher.
type Loader struct {
	dispatcher Dispatcher
	fs         afero.Fs
	diag       io.Writer
	notifier   notify.Notifier
	logger     *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFs replaces the filesystem files are opened from.
func WithFs(fs afero.Fs) Option {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithDiagnostics sets where per-line parse errors are written. Defaults to stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(l *Loader) {
		l.diag = w
	}
}

// WithNotifier sets the notifier called after a load with errors.
func WithNotifier(n notify.Notifier) Option {
	return func(l *Loader) {
		l.notifier = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader dispatching to d.
func New(d Dispatcher, opts ...Option) *Loader {
	l := &Loader{
		dispatcher: d,
		fs:         afero.NewOsFs(),
		diag:       os.Stderr,
		notifier:   notify.Nop{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load applies the file at path. A file that cannot be opened yields an error
// wrapping ErrOpen and leaves the tables untouched. Otherwise every line is
// processed and the Result counts those that failed.
func (l *Loader) Load(path string) (Result, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return Result{Path: path}, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer f.Close()

	return l.LoadReader(path, f)
}

// LoadReader applies configuration read from r. name labels diagnostics.
func (l *Loader) LoadReader(name string, r io.Reader) (Result, error) {
	res := Result{Path: name}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for n := 1; scanner.Scan(); n++ {
		res.Lines = n
		if !l.applyLine(name, n, scanner.Text()) {
			res.Failures++
		}
	}
	if err := scanner.Err(); err != nil {
		l.logger.Error("options read aborted",
			zap.String("path", name),
			zap.Int("line", res.Lines+1),
			zap.Error(err),
		)
		return res, fmt.Errorf("read %s: %w", name, err)
	}

	l.logger.Info("options loaded",
		zap.String("path", name),
		zap.Int("lines", res.Lines),
		zap.Int("failures", res.Failures),
	)

	if res.Failed() {
		if err := l.notifier.Notify(); err != nil {
			l.logger.Warn("notification failed", zap.Error(err))
		}
	}
	return res, nil
}

// applyLine reports false when the line held a directive that failed.
func (l *Loader) applyLine(name string, n int, line string) bool {
	if line == "" {
		return true
	}

	keyword, remainder := lexer.SplitKeyword(lexer.StripComment(line))
	if keyword == "" {
		return true
	}

	if err := l.dispatcher.Dispatch(keyword, remainder); err != nil {
		fmt.Fprintf(l.diag, "%s: parse error at line %d: %v\n", name, n, err)
		l.logger.Debug("directive rejected",
			zap.String("path", name),
			zap.Int("line", n),
			zap.String("keyword", keyword),
			zap.Error(err),
		)
		return false
	}
	return true
}
