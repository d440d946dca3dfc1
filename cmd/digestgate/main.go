package main

import (
	"log"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/nexauth/digestgate/adapters/cache"
	"github.com/nexauth/digestgate/adapters/events"
	"github.com/nexauth/digestgate/adapters/store"
	"github.com/nexauth/digestgate/core"
	"github.com/nexauth/digestgate/internal/config"
	"github.com/nexauth/digestgate/ports"
	"github.com/nexauth/digestgate/service"
	"github.com/nexauth/digestgate/transport/http"
)

func main() {
	cfg, err := config.Load(os.Getenv("DIGESTGATE_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	redisClient := redis.NewClient(opts)

	var eventPub ports.EventPublisher
	if cfg.EventsEnabled {
		logger := watermill.NewStdLogger(false, false)
		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisClient,
			},
			logger,
		)
		if err != nil {
			log.Fatalf("Failed to create Redis publisher: %v", err)
		}
		eventPub = events.NewWatermillPublisher(publisher)
	}

	credentialStore := store.NewMemoryStore()
	for _, u := range cfg.Users {
		credentialStore.Add(core.Credential{Username: u.Username, Secret: u.Secret})
	}

	credentialCache := cache.NewRedisCache(redisClient, cfg.CacheTTL)

	verifier := service.NewVerifierService(
		credentialStore,
		credentialCache,
		eventPub,
		cfg.Realm,
		cfg.Secret,
		cfg.SecretsHashed,
	)
	challenger := service.NewChallengeService(cfg.Realm, cfg.Secret, cfg.NonceValidity)

	// Setup Gin router
	router := http.SetupRouter(verifier, challenger)

	// Start server
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
