package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/config"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/database"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/repository"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/router"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/service"
	"github.com/Lixing-Zhang/lesson-storefront/backend/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:   "lesson-storefront",
		Usage:  "HTTP backend for the lesson booking storefront",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server (default)",
				Action: serve,
			},
			{
				Name:  "seed",
				Usage: "insert lesson documents into the lessons collection",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "JSON file holding an array of lessons; the sample catalogue is used when empty",
					},
					&cli.BoolFlag{
						Name:  "drop",
						Usage: "remove existing lessons before inserting",
					},
				},
				Action: seed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the default structured logger
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	return cfg, log, nil
}

func serve(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	log.Info("starting lesson storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"database", cfg.Mongo.Database,
		"log_level", cfg.LogLevel,
	)

	client, err := database.Connect(c.Context, cfg.Mongo)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		return cli.Exit("", 1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("failed to disconnect from database", "error", err)
		}
	}()
	log.Info("connected to database")

	db := client.Database(cfg.Mongo.Database)

	// Initialize repositories
	lessonRepo := repository.NewMongoLessonRepository(db, cfg.Mongo.LessonsCollection)
	orderRepo := repository.NewMongoOrderRepository(db, cfg.Mongo.OrdersCollection)

	if err := lessonRepo.EnsureIndexes(c.Context); err != nil {
		log.Warn("lesson indexes not ensured", "error", err)
	}

	// Initialize services
	lessonService := service.NewLessonService(lessonRepo)
	orderService := service.NewOrderService(orderRepo)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.New(cfg, lessonService, orderService, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("server failed to start", "error", err)
		return cli.Exit("", 1)
	case <-quit:
	}

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return cli.Exit("", 1)
	}

	log.Info("server stopped gracefully")
	return nil
}

func seed(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	lessons := repository.SampleLessons()
	if path := c.String("file"); path != "" {
		lessons, err = loadLessons(path)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(c.Context, 2*time.Minute)
	defer cancel()

	client, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		return cli.Exit("", 1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	lessonRepo := repository.NewMongoLessonRepository(client.Database(cfg.Mongo.Database), cfg.Mongo.LessonsCollection)

	if c.Bool("drop") {
		deleted, err := lessonRepo.DeleteAll(ctx)
		if err != nil {
			return err
		}
		log.Info("existing lessons removed", "count", deleted)
	}

	if err := lessonRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	inserted, err := lessonRepo.InsertMany(ctx, lessons)
	if err != nil {
		log.Error("seeding stopped", "inserted", inserted, "error", err)
		return cli.Exit("", 1)
	}

	log.Info("lessons seeded", "count", inserted, "collection", cfg.Mongo.LessonsCollection)
	return nil
}
