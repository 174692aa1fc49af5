package server

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/meinhoongagan/portfolio-api/config"
	"github.com/meinhoongagan/portfolio-api/db"
	"github.com/meinhoongagan/portfolio-api/redis"
	"github.com/meinhoongagan/portfolio-api/storage"
	"github.com/meinhoongagan/portfolio-api/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

// Run opens every dependency, serves until SIGINT or SIGTERM, then closes them.
func Run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		return err
	}

	files, err := storage.New(cfg)
	if err != nil {
		return err
	}

	deps := Deps{
		Config:    cfg,
		DB:        database,
		Mailer:    newMailer(cfg),
		Files:     files,
		Registry:  prometheus.NewRegistry(),
		AccessLog: true,
	}
	deps.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.RedisAddr != "" {
		client, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		limiterStorage := redis.NewStorage(client, "limiter:")
		defer limiterStorage.Close()
		deps.LimiterStorage = limiterStorage
	}

	app := New(deps)

	errs := make(chan error, 1)
	go func() {
		log.Printf("Running on http://localhost:%s", cfg.Port)
		errs <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("http server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down gracefully...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func newMailer(cfg *config.Config) utils.Mailer {
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST is not set. OTP emails will only be logged.")
		return utils.LogMailer{}
	}
	return utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass, cfg.EmailFrom)
}
