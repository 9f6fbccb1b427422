package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// Container carries the components built once at startup. Optional backends
// (Redis, ES, Rabbit) are nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users  repository.UserRepository
	PGPool *pgxpool.Pool

	JWT    *helpers.JWTManager
	Hasher *helpers.BcryptHasher

	Redis  *redis.Client
	ES     *elasticsearch.Client
	Rabbit *helpers.RabbitQueue
}

// Close releases every connection the container owns.
func (c *Container) Close() {
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			helpers.LogError(c.Logger, "redis close failed", err, nil)
		}
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
