package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

const bearerScheme = "Bearer"

// Gate resolves an Authorization header to the identity it was issued for.
type Gate struct {
	JWT    *helpers.JWTManager
	Repo   repo.UserRepository
	Cache  IdentityCache
	Logger *logrus.Logger
}

func NewGate(jwt *helpers.JWTManager, repo repo.UserRepository, cache IdentityCache, logger *logrus.Logger) *Gate {
	return &Gate{JWT: jwt, Repo: repo, Cache: cache, Logger: logger}
}

// Verify returns ErrMissingToken for an absent or malformed header,
// ErrInvalidToken for a bad signature, an expired token or a user that no
// longer exists. Any other error is a store failure.
func (g *Gate) Verify(ctx context.Context, header string) (entity.Identity, error) {
	raw, ok := bearerToken(header)
	if !ok {
		count(statAuthRejected)
		return entity.Identity{}, ErrMissingToken
	}
	claims, err := g.JWT.Parse(raw)
	if err != nil {
		count(statAuthRejected)
		return entity.Identity{}, ErrInvalidToken
	}

	if g.Cache != nil {
		cached, err := g.Cache.Get(ctx, claims.UserID)
		if errors.Is(err, ErrIdentityRevoked) {
			count(statAuthRejected)
			return entity.Identity{}, ErrInvalidToken
		}
		if err != nil && g.Logger != nil {
			g.Logger.WithError(err).WithField("user_id", claims.UserID).Warn("identity cache get failed")
		}
		if cached != nil {
			return *cached, nil
		}
	}

	u, err := g.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			count(statAuthRejected)
			return entity.Identity{}, ErrInvalidToken
		}
		return entity.Identity{}, fmt.Errorf("resolve token user: %w", err)
	}
	id := u.Identity()
	if g.Cache != nil {
		// a concurrent update or delete may already have written the entry
		if err := g.Cache.Fill(ctx, id); err != nil && g.Logger != nil {
			g.Logger.WithError(err).WithField("user_id", id.ID).Warn("identity cache fill failed")
		}
	}
	return id, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
