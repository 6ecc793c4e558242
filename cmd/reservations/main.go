package main

import (
	"context"
	"os"

	"roomly/internal/reservations/catalog"
	"roomly/internal/reservations/handler"
	"roomly/internal/reservations/notifier"
	"roomly/internal/reservations/service"
	"roomly/internal/reservations/store"
	"roomly/internal/reservations/sweeper"
	"roomly/internal/reservations/validator"
	"roomly/pkg/app"
	"roomly/pkg/clock"
	"roomly/pkg/config"
	"roomly/pkg/kafka"
	kafka_config "roomly/pkg/kafka/config"
	"roomly/pkg/logger"
)

const serviceName = "reservations"

func main() {
	cfg := config.Load(serviceName)
	log := cfg.Log

	clk := clock.System{}
	bookings := store.New()
	rooms := catalog.New(catalog.DefaultRooms()...)

	events, closeEvents := buildNotifier(cfg, log)

	reservationService := service.NewReservationService(bookings, rooms, events, clk, cfg)
	availabilityService := service.NewAvailabilityService(bookings, rooms, cfg)
	reservationValidator := validator.NewReservationValidator(log)

	sw := sweeper.New(bookings, clk, cfg.SweepInterval, log)
	sw.Start()

	application := app.NewApplication(cfg, log)
	application.RegisterHandlers(
		handler.NewHealthHandler(serviceName, log),
		handler.NewReservationHandler(reservationService, reservationValidator, log),
		handler.NewRoomHandler(rooms, reservationService, availabilityService, log),
	)
	application.OnShutdown(func(ctx context.Context) error {
		sw.Stop()
		return nil
	})
	application.OnShutdown(closeEvents)

	if err := application.Run(); err != nil {
		log.Error("application terminated", "error", err)
		os.Exit(1)
	}
}

func buildNotifier(cfg *config.Config, log *logger.Logger) (notifier.Notifier, func(context.Context) error) {
	if !cfg.NotificationsEnabled {
		log.Info("event publishing disabled, using no-op notifier")
		return notifier.Nop{}, func(context.Context) error { return nil }
	}

	producer, err := kafka.NewProducer(kafka_config.Load(), cfg.ReservationTopic, cfg.ReservationDLQTopic)
	if err != nil {
		log.Fatal("failed to create Kafka producer", "error", err)
	}
	return notifier.NewKafka(producer, log), func(context.Context) error {
		return producer.Close()
	}
}
