package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/nhle/checkit/internal/auth"
	"github.com/nhle/checkit/internal/credential"
	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/store"
)

type globalFlags struct {
	configPath string
	envFile    string
}

// runtime holds everything a command needs, opened from config.
type runtime struct {
	cfg        *model.AppConfig
	configPath string
	logger     *slog.Logger
	store      store.Store
	provider   *auth.Provider
	vault      *credential.Vault
	closers    []func() error
}

func openRuntime(ctx context.Context, flags globalFlags) (*runtime, error) {
	if flags.envFile != "" {
		if err := godotenv.Load(flags.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", flags.envFile, err)
		}
	}

	configPath := flags.configPath
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, configPath: configPath}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	rt.logger = logger
	rt.closers = append(rt.closers, closeLog)
	slog.SetDefault(logger)

	s, err := openStore(ctx, cfg.Database)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.store = s
	rt.closers = append(rt.closers, s.Close)

	sessions, err := openSessions(ctx, cfg.Session, rt)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.provider = auth.NewProvider(s, sessions, cfg.Session.TTL, logger)

	if cfg.Session.Remember {
		vault, err := credential.Open(model.DefaultConfigDir())
		if err != nil {
			logger.Warn("keyring unavailable, sessions will not be remembered", "error", err)
		} else {
			rt.vault = vault
		}
	}

	return rt, nil
}

func openLogger(cfg model.LogConfig) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if cfg.File == "" {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return logger, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f.Close, nil
}

func openStore(ctx context.Context, cfg model.DatabaseConfig) (store.Store, error) {
	switch cfg.Driver {
	case model.DriverPostgres:
		return store.NewPostgresStore(ctx, cfg.URL)
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		return store.NewSQLiteStore(cfg.Path)
	}
}

func openSessions(ctx context.Context, cfg model.SessionConfig, rt *runtime) (auth.SessionStore, error) {
	if cfg.Backend != model.SessionBackendRedis {
		return auth.NewMemorySessionStore(), nil
	}

	client, err := auth.OpenRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, client.Close)
	return auth.NewRedisSessionStore(client), nil
}

// restore resumes the remembered session, if any. A stale token is forgotten.
func (rt *runtime) restore(ctx context.Context) *model.User {
	if rt.vault == nil {
		return nil
	}

	token, err := rt.vault.LoadToken()
	if err != nil {
		if !errors.Is(err, credential.ErrNoToken) {
			rt.logger.Warn("reading remembered session", "error", err)
		}
		return nil
	}

	user, err := rt.provider.Restore(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			_ = rt.vault.ClearToken()
		} else {
			rt.logger.Warn("restoring session", "error", err)
		}
		return nil
	}
	return user
}

// remember stores the active session token when remembering is enabled.
func (rt *runtime) remember() {
	if rt.vault == nil {
		return
	}
	if err := rt.vault.SaveToken(rt.provider.SessionToken()); err != nil {
		rt.logger.Warn("remembering session", "error", err)
	}
}

// Close releases resources in reverse order of opening.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil && rt.logger != nil {
			rt.logger.Warn("closing resource", "error", err)
		}
	}
	rt.closers = nil
}
