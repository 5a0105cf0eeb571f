package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/rcopts/internal/application"
	"github.com/eugenenazirov/rcopts/internal/config"
	"github.com/eugenenazirov/rcopts/internal/directive"
	"github.com/eugenenazirov/rcopts/internal/loader"
	"github.com/eugenenazirov/rcopts/internal/notify"
	"github.com/eugenenazirov/rcopts/internal/options"
	"github.com/eugenenazirov/rcopts/internal/storage"
)

const (
	formatYAML = "yaml"
	formatRC   = "rc"
)

const unsetMarker = "(unset)"

// load applies cfg.OptionsFile to a fresh set of tables holding the defaults.
func (c *cli) load(cfg config.Config, logger *zap.Logger, notifier notify.Notifier) (*options.Registry, *storage.MemoryStorage, loader.Result, error) {
	reg := options.Default()
	store := storage.NewWithDefaults(reg)

	ld := loader.New(directive.NewDispatcher(reg, store),
		loader.WithFs(c.fs),
		loader.WithDiagnostics(c.stderr),
		loader.WithNotifier(notifier),
		loader.WithLogger(logger),
	)
	res, err := ld.Load(cfg.OptionsFile)
	return reg, store, res, err
}

// loadTolerant is load for read-only commands: a missing file leaves the defaults in place.
func (c *cli) loadTolerant(cfg config.Config, logger *zap.Logger) (*options.Registry, *storage.MemoryStorage, bool) {
	reg, store, _, err := c.load(cfg, logger, notify.Nop{})
	switch {
	case errors.Is(err, loader.ErrOpen):
		logger.Warn("options file unavailable, using defaults",
			zap.String("path", cfg.OptionsFile),
			zap.Error(err),
		)
	case err != nil:
		fmt.Fprintf(c.stderr, "rcopts: %v\n", err)
		return nil, nil, false
	}
	return reg, store, true
}

func (c *cli) shouldPause(setByUser, pause bool) bool {
	if setByUser {
		return pause
	}
	f, ok := c.stdin.(*os.File)
	return ok && notify.IsTerminal(f)
}

func (c *cli) check(cfg config.Config, logger *zap.Logger, pause bool) int {
	var notifier notify.Notifier = notify.Nop{}
	if pause {
		notifier = notify.NewKeyPrompt(c.stdin, c.stdout)
	}

	_, _, res, err := c.load(cfg, logger, notifier)
	if err != nil {
		fmt.Fprintf(c.stderr, "rcopts: %v\n", err)
		return exitFailure
	}
	if res.Failed() {
		fmt.Fprintf(c.stdout, "%s: %d of %d lines rejected\n", res.Path, res.Failures, res.Lines)
		return exitParseErrors
	}
	fmt.Fprintf(c.stdout, "%s: ok (%d lines)\n", res.Path, res.Lines)
	return exitOK
}

func (c *cli) get(cfg config.Config, logger *zap.Logger, name string) int {
	reg, store, ok := c.loadTolerant(cfg, logger)
	if !ok {
		return exitFailure
	}

	desc, found := reg.Lookup(name)
	if !found {
		fmt.Fprintf(c.stderr, "rcopts: %v %s\n", directive.ErrUnknownOption, name)
		return exitFailure
	}

	value, set := store.Value(desc)
	if !set {
		fmt.Fprintln(c.stdout, unsetMarker)
		return exitOK
	}
	fmt.Fprintln(c.stdout, formatValue(value))
	return exitOK
}

func (c *cli) dump(cfg config.Config, logger *zap.Logger, format string) int {
	reg, store, ok := c.loadTolerant(cfg, logger)
	if !ok {
		return exitFailure
	}

	var err error
	switch format {
	case formatRC:
		err = writeRC(c.stdout, reg, store)
	default:
		err = writeYAML(c.stdout, reg, store)
	}
	if err != nil {
		fmt.Fprintf(c.stderr, "rcopts: dump: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func (c *cli) serve(cfg config.Config, logger *zap.Logger) int {
	app, err := application.New(cfg, logger,
		loader.WithFs(c.fs),
		loader.WithDiagnostics(c.stderr),
	)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return exitFailure
	}

	if err := app.Start(); err != nil {
		logger.Error("failed to start server", zap.Error(err))
		return exitFailure
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger, app.Close)
	logger.Info("server stopped")
	return exitOK
}

func formatValue(value any) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// writeYAML emits a mapping in declaration order. Unset strings become null.
func writeYAML(w io.Writer, reg *options.Registry, store *storage.MemoryStorage) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, desc := range reg.All() {
		value, set := store.Value(&desc)

		valueNode := &yaml.Node{Kind: yaml.ScalarNode}
		switch {
		case !set:
			valueNode.Tag = "!!null"
			valueNode.Value = "null"
		case desc.Kind == options.KindBool:
			valueNode.Tag = "!!bool"
			valueNode.Value = formatValue(value)
		case desc.Kind == options.KindInt:
			valueNode.Tag = "!!int"
			valueNode.Value = formatValue(value)
		default:
			valueNode.Tag = "!!str"
			valueNode.Value = formatValue(value)
		}

		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: desc.Name},
			valueNode,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// writeRC emits set directives that load back to the same tables.
func writeRC(w io.Writer, reg *options.Registry, store *storage.MemoryStorage) error {
	var b strings.Builder
	for _, desc := range reg.All() {
		value, set := store.Value(&desc)
		switch {
		case !set:
			fmt.Fprintf(&b, "# %s is unset\n", desc.Name)
		case desc.Kind != options.KindString:
			fmt.Fprintf(&b, "set %s = %s\n", desc.Name, formatValue(value))
		default:
			s := value.(string)
			switch {
			case s == "":
				fmt.Fprintf(&b, "set %s =\n", desc.Name)
			case strings.Contains(s, `"`) && strings.Contains(s, "#"):
				fmt.Fprintf(&b, "# %s skipped: value mixes quotes and comment markers\n", desc.Name)
			default:
				fmt.Fprintf(&b, "set %s = \"%s\"\n", desc.Name, s)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
