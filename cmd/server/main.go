package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/ingri/reservations/internal/availability"
	"github.com/ingri/reservations/internal/config"
	"github.com/ingri/reservations/internal/database"
	"github.com/ingri/reservations/internal/feed"
	"github.com/ingri/reservations/internal/handler"
	"github.com/ingri/reservations/internal/model"
	"github.com/ingri/reservations/internal/notify"
	"github.com/ingri/reservations/internal/queue"
	"github.com/ingri/reservations/internal/repository"
	"github.com/ingri/reservations/internal/router"
	queue_publisher "github.com/ingri/reservations/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file, relying on process environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	if err := database.Migrate(db, cfg.MigrationsDir); err != nil {
		logrus.WithError(err).Fatal("database migration failed")
	}

	// nil when Redis is unreachable; cache and rate limiting degrade to no-ops
	rdb := config.NewRedisClient()
	if rdb == nil {
		logrus.Warn("redis unavailable, response cache and rate limiting disabled")
	}

	// audit trail consumer; reconnects on its own, never stops the server
	go func() {
		if err := queue.StartAuditConsumer(cfg.AMQPURL); err != nil {
			logrus.WithError(err).Error("audit consumer stopped")
		}
	}()

	catalog := model.DefaultSlotCatalog()
	repo := repository.NewReservationRepo(db)
	checker := availability.NewChecker(repo, catalog)
	mailer := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	dispatcher := notify.NewDispatcher(mailer, cfg.StaffEmail, logrus.StandardLogger())
	hub := feed.NewHub()
	publisher := queue_publisher.New(cfg.AMQPURL)

	booking := handler.NewBookingHandler(repo, checker, dispatcher, hub, publisher, catalog)
	admin := handler.NewAdminHandler(repo, hub, publisher)

	e := echo.New()
	router.Register(e, cfg, rdb, booking, admin)

	addr := ":" + cfg.Port
	logrus.Infof("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
