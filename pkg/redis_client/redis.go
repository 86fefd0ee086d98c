package redis_client

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/util"
)

var Client *redis.Client

var ErrNotConfigured = errors.New("redis address not configured")

const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect sets up Client from BIKEFLOW_REDIS_* variables. Redis is optional:
// with no address configured ErrNotConfigured is returned.
func Connect() error {
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	address := env["BIKEFLOW_REDIS_ADDRESS"]
	if address == "" {
		return ErrNotConfigured
	}

	if env["BIKEFLOW_REDIS_PASSWORD"] != "" {
		password = env["BIKEFLOW_REDIS_PASSWORD"]
	}

	if env["BIKEFLOW_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["BIKEFLOW_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = 30 * time.Second

	err := backoff.RetryNotify(func() error {
		return client.Ping(context.Background()).Err()
	}, retryBackoff, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("address", address).Msgf("Redis not ready, retrying in %s", wait)
	})
	if err != nil {
		client.Close()
		return err
	}

	Client = client

	log.Info().Msgf("Redis client setup for %s", address)

	return nil
}
