package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/debazaar/bazaar/internal/api"
	"github.com/debazaar/bazaar/internal/config"
	"github.com/debazaar/bazaar/internal/service"
	"github.com/debazaar/bazaar/internal/tui"
)

func main() {
	ctx := context.Background()

	// .env is optional; real env always wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if _, err := os.Stat(config.Path()); os.IsNotExist(err) {
		if err := config.Save(cfg); err != nil {
			log.Printf("warn: could not write starter config: %v", err)
		}
	}

	logger, err := openLogger(cfg.Log)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	logger.Info().Str("base_url", cfg.API.BaseURL).Msg("starting")

	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, logger)
	session := &service.Session{API: client, Log: logger}

	p := tea.NewProgram(tui.New(ctx, cfg, client, session, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// openLogger sets up the rotating file log. The TUI owns the terminal, so
// nothing may write to stderr while the program runs.
func openLogger(cfg config.LogConfig) (zerolog.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return zerolog.Logger{}, fmt.Errorf("mkdir log dir: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	w := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
