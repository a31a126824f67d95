package adapter

import (
	"github.com/redis/go-redis/v9"
)

// ClientConfig descreve a conexão usada pelo transporte de eventos redis.
type ClientConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(cfg ClientConfig) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
