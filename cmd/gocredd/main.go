// Command gocredd runs the credential service over HTTP.
//
// Configuration comes from the environment (a .env file is loaded when
// present):
//
//	GOCRED_ADDR            listen address (default :8080)
//	REDIS_ADDR             redis address (default localhost:6379)
//	REDIS_PASSWORD         redis password (optional)
//	REDIS_DB               redis database number (default 0)
//	JWT_TTL_MINUTES        token lifetime in minutes (default 15)
//	JWT_ISSUER             token issuer claim (default gocred)
//	TURNSTILE_SECRET_KEY   bot-challenge secret; empty disables the challenge
//	LOG_LEVEL              zerolog level (default info)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/api"
	"github.com/MrEthical07/goCred/turnstile"
)

func main() {
	_ = godotenv.Load()

	log := newLogger(envOr("LOG_LEVEL", "info"))

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("gocredd exited")
	}
}

func run(log zerolog.Logger) error {
	cfg := goCred.DefaultConfig()
	cfg.JWT.Issuer = envOr("JWT_ISSUER", cfg.JWT.Issuer)
	cfg.Turnstile.SecretKey = os.Getenv("TURNSTILE_SECRET_KEY")

	if ttl, err := envInt("JWT_TTL_MINUTES"); err != nil {
		return err
	} else if ttl > 0 {
		cfg.JWT.TTL = time.Duration(ttl) * time.Minute
	}

	db, err := envInt("REDIS_DB")
	if err != nil {
		return err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
	defer func() { _ = client.Close() }()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return err
	}

	engine, err := goCred.New().WithConfig(cfg).WithRedis(client).Build()
	if err != nil {
		return err
	}

	var verifier turnstile.Verifier
	if cfg.Turnstile.SecretKey != "" {
		verifier, err = turnstile.NewHTTPVerifier(turnstile.Config{
			SecretKey: cfg.Turnstile.SecretKey,
			VerifyURL: cfg.Turnstile.VerifyURL,
			Timeout:   cfg.Turnstile.Timeout,
		})
		if err != nil {
			return err
		}
	} else {
		log.Warn().Msg("TURNSTILE_SECRET_KEY not set, bot challenge disabled")
	}

	router, err := api.NewRouter(api.Config{
		Engine:   engine,
		Verifier: verifier,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	addr := envOr("GOCRED_ADDR", ":8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(parsed).With().Timestamp().Logger()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}
