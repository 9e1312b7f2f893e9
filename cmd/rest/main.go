package main

import (
	"context"
	"notes-api/internal/config"
	"notes-api/internal/controller"
	"notes-api/internal/repository"
	"notes-api/internal/service"
	"notes-api/pkg/database"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var noteRepository repository.INoteRepository
	if cfg.UsesDatabase() {
		if cfg.DBMigrate {
			if err := database.Migrate(cfg.DBConnectionString); err != nil {
				log.Fatal(err)
			}
		}

		db, err := database.ConnectDB(ctx, cfg.DBConnectionString)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		noteRepository = repository.NewNoteRepository(db, nil)
		log.Info("using PostgreSQL note store")
	} else {
		noteRepository = repository.NewMemoryNoteRepository(nil)
		log.Warn("DB_CONNECTION_STRING not set, notes are kept in memory")
	}

	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	defer pubSub.Close()

	publisherService := service.NewPublisherService(cfg.NoteEventsTopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.NoteEventsTopicName, nil)

	noteService := service.NewNoteService(noteRepository, publisherService)
	healthService := service.NewHealthService(noteRepository)

	noteController := controller.NewNoteController(noteService)
	healthController := controller.NewHealthController(healthService)

	app := controller.NewApp(controller.AppConfig{
		BodyLimit:        cfg.BodyLimitBytes,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:        true,
	}, healthController, noteController)

	if err := consumerService.Consume(ctx); err != nil {
		log.Fatal(err)
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("Notes API listening on %s", cfg.ListenAddr())
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		log.Fatal(err)
	}
}
