package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"compass/internal/config"
	"compass/internal/server"
	"compass/internal/service"
	"compass/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using defaults")
	}

	cfgPath := os.Getenv("COMPASS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(store.Driver(cfg.Storage.Driver), cfg.Storage.SQLitePath)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	svc := service.New(st, logger)
	srv := server.New(svc, logger)
	r := srv.SetupRouter()

	logger.Info("starting server", "addr", cfg.Server.Addr, "driver", cfg.Storage.Driver)
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
