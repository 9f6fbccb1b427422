package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// Service implements the account operations. Cache, Index and Notifier are optional.
type Service struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Hasher   *helpers.BcryptHasher
	Cache    IdentityCache
	Index    UserIndex
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewService(repo repo.UserRepository, jwt *helpers.JWTManager, hasher *helpers.BcryptHasher, logger *logrus.Logger) *Service {
	return &Service{
		Repo:   repo,
		JWT:    jwt,
		Hasher: hasher,
		Logger: logger,
	}
}

// AuthResult is the public projection plus a freshly issued token.
type AuthResult struct {
	entity.Identity
	Token string `json:"token"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account. Duplicate emails are rejected both by the
// pre-check and by the store's unique index.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	count(statRegistered)
	id := u.Identity()
	s.cacheIdentity(ctx, id)
	s.indexIdentity(ctx, id)
	s.notify(ctx, AccountEvent{Type: EventRegistered, Identity: id})
	return s.issue(id)
}

// Authenticate verifies credentials. Unknown email and wrong password yield
// the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			count(statLoginFailures)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if !s.Hasher.Compare(u.Password, password) {
		count(statLoginFailures)
		return nil, ErrInvalidCredentials
	}
	count(statLogins)
	return s.issue(u.Identity())
}

// GetProfile returns the identity already resolved by the auth gate.
func (s *Service) GetProfile(id *entity.Identity) (entity.Identity, error) {
	if id == nil || id.ID == "" {
		return entity.Identity{}, ErrUnauthorized
	}
	return *id, nil
}

// UpdateProfileInput carries optional fields; nil or empty values are left untouched.
type UpdateProfileInput struct {
	Name     *string
	Password *string
}

// UpdateProfile applies a partial update and always rotates the token.
func (s *Service) UpdateProfile(ctx context.Context, id *entity.Identity, in UpdateProfileInput) (*AuthResult, error) {
	if id == nil || id.ID == "" {
		return nil, ErrUnauthorized
	}
	current, err := s.Repo.GetByID(ctx, id.ID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	var (
		changes entity.UserChanges
		changed []string
	)
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			changes.Name = &name
			changed = append(changed, "name")
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := s.Hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		changes.PasswordHash = &hash
		changed = append(changed, "password")
	}

	updated := current
	if !changes.Empty() {
		updated, err = s.Repo.Update(ctx, current.ID, changes)
		if err != nil {
			return nil, mapNotFound(err)
		}
		count(statUpdated)
		s.cacheIdentity(ctx, updated.Identity())
		s.indexIdentity(ctx, updated.Identity())
		s.notify(ctx, AccountEvent{Type: EventProfileUpdated, Identity: updated.Identity(), Changes: changed})
	}
	return s.issue(updated.Identity())
}

// DeleteProfile removes the account; tokens issued for it stop resolving.
func (s *Service) DeleteProfile(ctx context.Context, id *entity.Identity) error {
	if id == nil || id.ID == "" {
		return ErrUnauthorized
	}
	u, err := s.Repo.GetByID(ctx, id.ID)
	if err != nil {
		return mapNotFound(err)
	}
	if err := s.Repo.Delete(ctx, u.ID); err != nil {
		return mapNotFound(err)
	}
	count(statDeleted)

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, u.ID); err != nil {
			helpers.LogError(s.Logger, "identity cache invalidate failed", err, logrus.Fields{"user_id": u.ID})
		}
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, u.ID); err != nil {
			s.warn(err, u.ID, "user index remove failed")
		}
	}
	s.notify(ctx, AccountEvent{Type: EventAccountDeleted, Identity: u.Identity()})
	return nil
}

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// SearchUsers queries the user directory; without an index it finds nothing.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]entity.Identity, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []entity.Identity{}, nil
	}
	switch {
	case size <= 0:
		size = defaultSearchSize
	case size > maxSearchSize:
		size = maxSearchSize
	}
	return s.Index.Search(ctx, q, size)
}

func (s *Service) issue(id entity.Identity) (*AuthResult, error) {
	token, _, err := s.JWT.Issue(id.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id.ID).Error("issue token failed")
		}
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Identity: id, Token: token}, nil
}

func (s *Service) cacheIdentity(ctx context.Context, id entity.Identity) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, id); err != nil {
		s.warn(err, id.ID, "identity cache set failed")
	}
}

func (s *Service) indexIdentity(ctx context.Context, id entity.Identity) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, id); err != nil {
		s.warn(err, id.ID, "user index failed")
	}
}

func (s *Service) notify(ctx context.Context, ev AccountEvent) {
	if s.Notifier == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if err := s.Notifier.Notify(ctx, ev); err != nil {
		s.warn(err, ev.Identity.ID, "account notification failed")
	}
}

func (s *Service) warn(err error, userID, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn(msg)
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
