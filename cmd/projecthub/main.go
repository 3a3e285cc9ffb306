package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/nyrix-co/projecthub/db"
	"github.com/nyrix-co/projecthub/internal/config"
	"github.com/nyrix-co/projecthub/internal/events"
	"github.com/nyrix-co/projecthub/internal/router"
	"github.com/nyrix-co/projecthub/internal/scheduler"
	"github.com/nyrix-co/projecthub/internal/services"
	"github.com/nyrix-co/projecthub/internal/team"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := db.ConnectDatabase(cfg.Database.DSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	directory := team.DefaultDirectory()

	smtpMailer := services.NewSMTPMailer(services.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		FromName:  cfg.SMTP.FromName,
	})

	// Notices go through the HTTP mail endpoint when one is configured,
	// direct SMTP otherwise.
	var mailer services.Mailer = smtpMailer
	if cfg.Notifications.MailEndpoint != "" {
		mailer = services.NewHTTPMailer(cfg.Notifications.MailEndpoint, cfg.Notifications.Timeout)
	}
	notifier := services.NewNotifier(mailer, cfg.Notifications.Timeout)

	reminders := scheduler.NewReminderScheduler(db.DB, directory, notifier, cfg.Reminders.Interval, cfg.Reminders.Window)
	reminders.Start()
	defer reminders.Stop()

	r := router.NewRouter(router.Deps{
		DB:         db.DB,
		Directory:  directory,
		Notifier:   notifier,
		SMTPMailer: smtpMailer,
		Hub:        events.NewHub(),
	})

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
