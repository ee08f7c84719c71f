package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commuteai/internal/clients/aiagents"
	"commuteai/internal/clients/hsl"
	intconfig "commuteai/internal/config"
	intdb "commuteai/internal/db"
	"commuteai/internal/domain/models"
	router "commuteai/internal/http"
	"commuteai/internal/http/handlers"
	"commuteai/internal/repositories"
	"commuteai/internal/services"
	"commuteai/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	env, err := intconfig.LoadEnv()
	utils.InitLogger(env.LogLevel, env.LogFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	if env.RoutingKey == "" {
		log.Warn().Msg("HSL_SUBSCRIPTION_KEY is not set, routing requests will likely be rejected")
	}

	db, err := intconfig.ConnectDB(env.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer intconfig.CloseDB()

	if env.RunMigrations {
		if err := intdb.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	aiClient := aiagents.NewClient(aiagents.Config{BaseURL: env.AIAgentsAPIURL, Timeout: env.AIAgentsTimeout})
	routingClient := hsl.NewClient(hsl.Config{
		BaseURL:         env.RoutingAPIURL,
		SubscriptionKey: env.RoutingKey,
		Timeout:         env.RoutingTimeout,
	})

	handler := &handlers.Handler{
		Users:            repositories.UserRepository{DB: db},
		Preferences:      repositories.PreferenceRepository{DB: db},
		RoutePreferences: repositories.RoutePreferenceRepository{DB: db},
		Auth:             services.AuthService{Secret: []byte(env.SecretKey), TTL: env.TokenTTL()},
		Insights:         aiClient,
		Planner:          routingClient,
		Health: services.HealthService{
			Service: "Commute.ai API",
			Version: env.AppVersion,
			PingDB:  intconfig.PingDB,
			Routing: routingClient,
			AI:      aiClient,
		},
		EnrichConcurrency: env.EnrichConcurrency,
	}

	r := router.NewRouter(router.RouterConfig{
		AllowedOrigins: env.AllowedOrigins(),
		RateLimitRPS:   env.RateLimitRPS,
		RateLimitBurst: env.RateLimitBurst,
	}, handler)

	writeTimeout := env.WriteTimeout(models.MaxNumItineraries)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", env.AppAddr).Str("version", env.AppVersion).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}

	log.Info().Msg("server stopped")
}
