package main

import (
	"context"

	"resourcebook/internal/bookings/events"
	"resourcebook/internal/bookings/handler"
	"resourcebook/internal/bookings/repository"
	"resourcebook/internal/bookings/service"
	"resourcebook/internal/bookings/validator"
	"resourcebook/pkg/app"
	"resourcebook/pkg/config"
	"resourcebook/pkg/kafka"
	kafka_config "resourcebook/pkg/kafka/config"
	kafka_middleware "resourcebook/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	cfg.SetMongo()

	serverApp := app.NewApplication(cfg)

	publisher := initPublisher(cfg, kafkaCfg, serverApp)
	bookingService := initServices(cfg, publisher)

	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.OnShutdown("mongo", func(context.Context) error {
		cfg.GracefulShutdown()
		return nil
	})

	cfg.Log.Info("Starting Bookings service")
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)

	bookingRepo := repository.NewMongoBookingRepository(cfg, db)
	lockRepo := repository.NewBookingLockRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := bookingRepo.EnsureCollection(ctx); err != nil {
		cfg.Log.Warn("Failed to install booking validator", "error", err)
	}
	if err := bookingRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure booking indexes", "error", err)
	}
	if err := lockRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure booking lock indexes", "error", err)
	}

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		validator.NewBookingValidator(cfg.Log),
		validator.NewOverlapChecker(cfg.BookingBufferMinutes),
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized",
		"database", cfg.MongoDatabaseName,
		"collection", cfg.MongoCollectionName,
		"buffer_minutes", cfg.BookingBufferMinutes,
	)
	return bookingService
}

func initPublisher(cfg *config.Config, kafkaCfg *kafka_config.Config, serverApp *app.Application) events.Publisher {
	if !kafkaCfg.Enabled() {
		return events.NewNoopPublisher()
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	serverApp.OnShutdown("kafka", func(context.Context) error {
		return producer.Close()
	})

	return events.NewKafkaPublisher(producer, ServiceName, kafkaCfg.PublishTimeout)
}
