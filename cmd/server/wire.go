package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/admin"
	"github.com/sudo-init-do/stringr/internal/alerts"
	"github.com/sudo-init-do/stringr/internal/auth"
	"github.com/sudo-init-do/stringr/internal/config"
	"github.com/sudo-init-do/stringr/internal/geo"
	"github.com/sudo-init-do/stringr/internal/marketplace"
	"github.com/sudo-init-do/stringr/internal/messaging"
	"github.com/sudo-init-do/stringr/internal/profile"
	"github.com/sudo-init-do/stringr/internal/stringer"
)

// app holds every handler the router mounts.
type app struct {
	log    *zap.Logger
	tokens *auth.Tokens
	hub    *messaging.Hub
	worker *alerts.Worker

	auth      *auth.Handler
	profiles  *profile.Handler
	stringers *stringer.Handler
	requests  *marketplace.Handler
	messages  *messaging.Handler
	alerts    *alerts.Handler
	admin     *admin.Handler
}

func build(cfg *config.Config, log *zap.Logger, pool *pgxpool.Pool, scope tally.Scope, queue alerts.Enqueuer) (*app, error) {
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	dispatcher := alerts.NewDispatcher(queue, cfg.AppURL, log.Named("alerts"))
	hub := messaging.NewHub(log.Named("ws"))

	var geocoder geo.Geocoder
	if cfg.GoogleMapsAPIKey != "" {
		g, err := geo.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
		if err != nil {
			return nil, err
		}
		geocoder = g
	} else {
		log.Info("no google maps key configured, profile geocoding disabled")
	}

	stringerStore := stringer.NewPGStore(pool)
	requestStore := marketplace.NewPGStore(pool)
	alertStore := alerts.NewPGStore(pool)

	requests := marketplace.NewService(requestStore,
		marketplace.Notifiers{hub, dispatcher},
		log.Named("requests"), scope)
	messages := messaging.NewService(requestStore, messaging.NewPGStore(pool), hub, dispatcher, log.Named("messages"))
	searcher := stringer.NewSearcher(stringerStore, log.Named("search"), scope)

	mailer := alerts.NewMailer(alerts.MailConfig{
		PlunkAPIKey: cfg.PlunkAPIKey,
		PlunkFrom:   cfg.PlunkFrom,
		PlunkAPIURL: cfg.PlunkAPIURL,
	}, log.Named("mail"))

	return &app{
		log:    log,
		tokens: tokens,
		hub:    hub,
		worker: alerts.NewWorker(alertStore, mailer, log.Named("worker")),

		auth:      auth.NewHandler(auth.NewPGStore(pool), tokens, dispatcher, log.Named("auth")),
		profiles:  profile.NewHandler(profile.NewService(profile.NewPGStore(pool), geocoder, log.Named("profile"))),
		stringers: stringer.NewHandler(stringerStore, searcher, tokens, log.Named("stringer")),
		requests:  marketplace.NewHandler(requests),
		messages:  messaging.NewHandler(messages, hub, log.Named("messages")),
		alerts:    alerts.NewHandler(alertStore),
		admin:     admin.NewHandler(admin.NewPGStore(pool), stringerStore, log.Named("admin")),
	}, nil
}
