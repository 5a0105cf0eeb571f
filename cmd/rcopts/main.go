package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/eugenenazirov/rcopts/internal/config"
	"github.com/eugenenazirov/rcopts/internal/logging"
)

const (
	exitOK          = 0
	exitParseErrors = 1
	exitFailure     = 2
)

var signalNotify = signal.Notify

func main() {
	c := &cli{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		fs:     afero.NewOsFs(),
	}
	os.Exit(c.run(os.Args[1:]))
}

// cli holds the process streams and filesystem so commands can run in tests.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs
}

func (c *cli) run(args []string) int {
	kingpinApp := kingpin.New("rcopts", "Runtime options loader - validates, queries and serves set-directive option files")
	kingpinApp.UsageWriter(c.stderr)
	kingpinApp.ErrorWriter(c.stderr)
	kingpinApp.Terminate(nil)

	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	logEncoding := kingpinApp.Flag("log-encoding", "Log encoding (json, console)").String()

	checkCmd := kingpinApp.Command("check", "Load an options file and report every invalid line")
	checkFile := checkCmd.Arg("file", "Options file (defaults to the configured one)").String()
	var pauseSet bool
	pause := checkCmd.Flag("pause", "Wait for a key press after errors (default: when stdin is a terminal)").IsSetByUser(&pauseSet).Bool()

	getCmd := kingpinApp.Command("get", "Print the effective value of one option")
	getName := getCmd.Arg("name", "Option name").Required().String()
	getFile := getCmd.Flag("file", "Options file").Short('f').String()

	dumpCmd := kingpinApp.Command("dump", "Print the effective value of every option")
	dumpFile := dumpCmd.Flag("file", "Options file").Short('f').String()
	dumpFormat := dumpCmd.Flag("format", "Output format").Default(formatYAML).Enum(formatYAML, formatRC)

	serveCmd := kingpinApp.Command("serve", "Serve the loaded options over a read-only HTTP API")
	serveFile := serveCmd.Flag("file", "Options file").Short('f').String()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed per client (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	command, err := kingpinApp.Parse(args)
	if err != nil {
		fmt.Fprintf(c.stderr, "rcopts: %v\n", err)
		return exitFailure
	}
	if command == "" {
		// --help was handled by kingpin
		return exitOK
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}
	for _, file := range []*string{checkFile, getFile, dumpFile, serveFile} {
		if *file != "" {
			overrides.OptionsFile = file
		}
	}
	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}
	if *logEncoding != "" {
		overrides.LogEncoding = logEncoding
	}
	if *port != "" {
		overrides.Port = port
	}
	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}
	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(c.stderr, "rcopts: failed to load configuration: %v\n", err)
		return exitFailure
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintf(c.stderr, "rcopts: failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case checkCmd.FullCommand():
		return c.check(cfg, logger, c.shouldPause(pauseSet, *pause))
	case getCmd.FullCommand():
		return c.get(cfg, logger, *getName)
	case dumpCmd.FullCommand():
		return c.dump(cfg, logger, *dumpFormat)
	case serveCmd.FullCommand():
		return c.serve(cfg, logger)
	}
	return exitFailure
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}

	if cleanup != nil {
		cleanup()
	}
}
