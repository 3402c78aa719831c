// Package main is the entry point for the Diary Book API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"diarybook/src/app/server"
	"diarybook/src/infra/auth"
	"diarybook/src/infra/config"
	"diarybook/src/infra/db"
	"diarybook/src/infra/logger"
	"diarybook/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"env", cfg.Server.Env,
		"log_level", cfg.Log.Level,
	)

	ctx := context.Background()
	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Database.Migrate {
		if err := db.Migrate(ctx, pg.SQL(), log); err != nil {
			return err
		}
	}

	diaryRepo := repo.NewDiaryRepository(pg.SQL(), logger.WithComponent(log, "repo"))
	verifier := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))

	srv, err := server.New(cfg, log, diaryRepo, verifier, pg)
	if err != nil {
		return err
	}

	// Run blocks until shutdown signal is received
	return srv.Run()
}
