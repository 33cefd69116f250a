package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"lox/internal/diag"
	"lox/internal/history"
	"lox/internal/log"
	"lox/internal/repl"
	"lox/internal/runner"
	"lox/internal/util"
)

// Exit statuses follow sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
)

var (
	// Version is the current version of the lox binary, set at build time.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// config vars
	configPath  string
	debugAST    string
	printTokens bool
	historyDSN  string
	showHistory int
	noColor     bool
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configPath, "config", "", "Path to a lox.toml configuration file")
	// front end
	flag.StringVar(&debugAST, "debug-ast", "", "Dump the parsed AST to stderr: json, yaml or text")
	flag.BoolVar(&printTokens, "tokens", false, "Print the scanned tokens to stderr")
	// history
	flag.StringVar(&historyDSN, "history-dsn", "", "Record runs in a sqlite path, mysql:// or postgres:// store")
	flag.IntVar(&showHistory, "history", 0, "Print the N most recent recorded runs and exit")
	// log config
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
	flag.BoolVar(&noColor, "no-color", false, "Disable colored diagnostics")
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if version {
		printVersion()
		return ExitOK
	}
	if help {
		printHelp()
		return ExitOK
	}
	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Usage: lox [options] [script]")
		return ExitUsage
	}

	config, err := loadConfiguration()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitUsage
	}

	logWriter, closeLog := configureLogWriter(config.LogFile)
	defer closeLog()
	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(config.LogLevel),
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logWriter, loggerOptions)))

	ctx := context.Background()

	if showHistory > 0 {
		return printRecentRuns(ctx, config.HistoryDSN, showHistory)
	}

	var store *history.Store
	if config.HistoryDSN != "" {
		store, err = history.Open(ctx, config.HistoryDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "history disabled: %v\n", err)
		} else {
			defer store.Close()
		}
	}

	if flag.NArg() == 1 {
		config.SourceName = flag.Arg(0)
	}
	r := runner.New(config, os.Stdout, os.Stderr)
	r.History = store

	if flag.NArg() == 0 {
		if err := repl.Start(ctx, r, os.Stdout, config.HistoryFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitSoftware
		}
		return ExitOK
	}

	outcome, err := r.RunFile(ctx, flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitDataErr
	}
	return exitCode(outcome)
}

func printRecentRuns(ctx context.Context, dsn string, n int) int {
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "-history needs a store: set -history-dsn or history_dsn in lox.toml")
		return ExitUsage
	}
	store, err := history.Open(ctx, dsn)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitSoftware
	}
	defer store.Close()

	runs, err := store.Recent(ctx, n)
	if err == nil {
		err = history.Print(os.Stdout, runs)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitSoftware
	}
	return ExitOK
}

func exitCode(outcome diag.Outcome) int {
	switch outcome {
	case diag.SyntaxFailure:
		return ExitDataErr
	case diag.RuntimeFailure:
		return ExitSoftware
	default:
		return ExitOK
	}
}

// loadConfiguration layers defaults, then the TOML file, then explicit flags.
func loadConfiguration() (util.Configuration, error) {
	config := util.DefaultConfiguration()
	config.Version = Version
	config.BuildDate = BuildDate
	config.Commit = Commit
	config.LoxHome = os.Getenv("LOX_HOME")

	path, optional := configPath, false
	if path == "" {
		path, optional = util.DefaultConfigPath(config.LoxHome), true
	}
	if err := util.LoadConfig(path, &config, optional); err != nil {
		return config, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug-ast":
			config.DebugAST = debugAST
		case "tokens":
			config.PrintTokens = printTokens
		case "history-dsn":
			config.HistoryDSN = historyDSN
		case "log-level":
			config.LogLevel = logLevel
		case "log-file":
			config.LogFile = logFile
		case "no-color":
			config.Color = !noColor
		}
	})

	switch config.DebugAST {
	case "", "json", "yaml", "text":
	default:
		return config, fmt.Errorf("unknown -debug-ast format %q, expected json, yaml or text", config.DebugAST)
	}
	if config.HistoryFile == "" && config.LoxHome != "" {
		config.HistoryFile = filepath.Join(config.LoxHome, ".lox_history")
	}
	return config, nil
}

func configureLogWriter(path string) (io.Writer, func()) {
	if path == "" {
		return os.Stderr, func() {}
	}
	// Create parent directories if they don't exist
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", path, err)
		return os.Stderr, func() {}
	}
	f, err := log.OpenFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { _ = f.Close() }
}

func printVersion() {
	fmt.Printf("lox version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: lox [options] [script]

Options:
  -config <path>       Load settings from a TOML file. Default is $LOX_HOME/lox.toml.
  -debug-ast <format>  Dump the parsed AST to stderr as json, yaml or text.
  -tokens              Print the scanned tokens to stderr.
  -history-dsn <dsn>   Record each run in a history store (sqlite path, mysql://, postgres://).
  -history <n>         Print the n most recent recorded runs and exit.
  -no-color            Disable colored diagnostics.
  -help                Display this help information and exit.
  -version             Display version information and exit.
  -log-level <level>   Set the log level: debug, info, warn, error, none. Default is 'none'.
  -log-file <path>     Specify a log file to write logs. Default is stderr.

Details:
Without a script, lox starts an interactive prompt. Each line is run on its
own against a shared global scope.

Exit status:
  0   success
  64  bad invocation
  65  syntax error or unreadable script
  70  runtime error

Examples:
  lox                          Start the interactive prompt
  lox main.lox                 Run the provided script
  lox -debug-ast=yaml main.lox Show the parsed program before running it
  lox -history-dsn runs.db -history 10
                               List the last ten recorded runs

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

// logLevelFromString maps "none" (and anything unknown) above every real
// level so nothing is logged.
func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}
