package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	statusadapter "github.com/soloquest/soloquest-cli/internal/adapters/render/status"
	boltrepo "github.com/soloquest/soloquest-cli/internal/adapters/repo/bolt"
	filerepo "github.com/soloquest/soloquest-cli/internal/adapters/repo/file"
	"github.com/soloquest/soloquest-cli/internal/application"
	"github.com/soloquest/soloquest-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	service          *application.Service
	overviewRenderer func(application.Overview, statusadapter.RenderOptions) (string, error)
	now              func() time.Time
}

func wireApp() (*app, func(), error) {
	store, err := wireStore(viper.New())
	if err != nil {
		return nil, nil, fmt.Errorf("wire session store: %w", err)
	}
	cleanup := func() {}
	if closer, ok := store.(io.Closer); ok {
		cleanup = func() { _ = closer.Close() }
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	clock := ports.SystemClock{}
	service := application.NewService(store, nil, clock, ports.RandomIDGenerator{}, nil, logger)

	return &app{
		service:          service,
		overviewRenderer: statusadapter.Render,
		now:              clock.Now,
	}, cleanup, nil
}

func wireStore(cfg *viper.Viper) (ports.KeyValueStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName("config")
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(filepath.Join(homeDir, ".soloquest"))
	cfg.SetDefault("storage.backend", "bolt")
	cfg.SetDefault("storage.dir", filepath.Join(homeDir, ".soloquest", "storage"))

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	switch backend := cfg.GetString("storage.backend"); backend {
	case "file":
		return filerepo.NewStore(cfg.GetString("storage.dir")), nil
	case "bolt", "":
		return boltrepo.NewStore(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
