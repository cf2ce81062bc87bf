// Package main is the entry point for the hackhub server.
//
// main stays minimal: read config, build the logger, ensure the data
// directory exists, and hand off to internal/server. All actual logic
// lives in the imported packages.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/hackhub/internal/config"
	"github.com/sakif/hackhub/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	// The data directory holds the SQLite file; create it like mkdir -p.
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// Without a configured secret, sessions won't survive a restart.
	// Fine for development; set JWT_SECRET in production:
	//   JWT_SECRET=$(openssl rand -hex 32)
	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = randomSecret()
		logger.Warn("JWT_SECRET not set, using a generated secret; sessions reset on restart")
	}

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		DBPath:          cfg.DBPath,
		JWTSecret:       jwtSecret,
		AnalyzeURL:      cfg.AnalyzeURL,
		AnalyzeTimeout:  cfg.AnalyzeTimeout,
		RefreshInterval: cfg.RefreshInterval,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
