package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

// IdentityCache keeps resolved identities close to the auth gate.
// A revocation written by Invalidate wins over any later Set or Fill, so a
// read that raced a delete cannot bring the identity back.
type IdentityCache interface {
	// Get returns nil without error on a miss and ErrIdentityRevoked after Invalidate.
	Get(ctx context.Context, userID string) (*entity.Identity, error)
	// Set overwrites the entry after a store write.
	Set(ctx context.Context, id entity.Identity) error
	// Fill stores a store read only when no entry exists.
	Fill(ctx context.Context, id entity.Identity) error
	Invalidate(ctx context.Context, userID string) error
}

// UserIndex is the searchable user directory.
type UserIndex interface {
	Index(ctx context.Context, id entity.Identity) error
	Remove(ctx context.Context, userID string) error
	Search(ctx context.Context, q string, size int) ([]entity.Identity, error)
}

type EventType string

const (
	EventRegistered     EventType = "registered"
	EventProfileUpdated EventType = "profile_updated"
	EventAccountDeleted EventType = "account_deleted"
)

// AccountEvent describes a change worth telling the account owner about.
type AccountEvent struct {
	Type     EventType
	Identity entity.Identity
	Changes  []string
	At       time.Time
}

// Notifier delivers account events asynchronously.
type Notifier interface {
	Notify(ctx context.Context, ev AccountEvent) error
}
