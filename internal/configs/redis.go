package config

import (
	"github.com/redis/rueidis"
	"github.com/sirupsen/logrus"
)

// RedisClientOption builds the rueidis options for cfg. Locks and pub/sub
// never read cached keys, so client-side caching stays off.
func RedisClientOption(cfg Config) rueidis.ClientOption {
	return rueidis.ClientOption{
		InitAddress:  []string{cfg.RedisAddr},
		Password:     cfg.RedisPassword,
		SelectDB:     cfg.RedisDB,
		DisableCache: true,
	}
}

func NewRedisClient(cfg Config, log logrus.FieldLogger) rueidis.Client {
	redisClient, err := rueidis.NewClient(RedisClientOption(cfg))
	if err != nil {
		log.WithError(err).WithField("addr", cfg.RedisAddr).Fatal("failed to create redis client")
	}

	return redisClient
}
