// Command locselect is a terminal location picker: choose a country, then one
// of its states, then one of that state's cities, from a remote directory.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/aristath/locselect/internal/config"
	"github.com/aristath/locselect/internal/directory"
	"github.com/aristath/locselect/internal/ui"
	"github.com/aristath/locselect/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.DirectoryURL, "directory-url", cfg.DirectoryURL, "Location directory base URL")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Per-request timeout")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file (empty = no logging)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.IntVar(&cfg.MaxWidth, "max-width", cfg.MaxWidth, "Max columns (0 = no limit)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	log.Info().
		Str("directory", cfg.DirectoryURL).
		Dur("timeout", cfg.RequestTimeout).
		Msg("Starting location selector")

	client := directory.NewClient(cfg.DirectoryURL, cfg.RequestTimeout, log)
	m := ui.NewModel(client, ui.Options{
		DirectoryURL: cfg.DirectoryURL,
		Timeout:      cfg.RequestTimeout,
		MaxWidth:     cfg.MaxWidth,
		Log:          log,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		log.Error().Err(err).Msg("Program exited with error")
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if summary := final.(ui.Model).Selection().Summary(); summary != "" {
		log.Info().Str("summary", summary).Msg("Selection complete")
		fmt.Println(summary)
	}
}

// openLogger writes to cfg.LogFile, or discards everything when it is empty.
func openLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return logger.Discard(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		Output: f,
	})
	logger.SetGlobalLogger(log)

	var closed bool
	return log, func() {
		if closed {
			return
		}
		closed = true
		_ = f.Sync()
		_ = f.Close()
	}, nil
}

