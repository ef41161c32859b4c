package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/poolsheet/internal/rules/resource"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// CharacterRecord stores a persisted character.
type CharacterRecord struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResourceRecord stores one resource in its owner's list. Position keeps the
// list order stable, which matters for first-match tag linking.
type ResourceRecord struct {
	CharacterID string
	Position    int
	Resource    resource.Resource
	UpdatedAt   time.Time
}

// RollRecord stores the original pool of a roll together with everything
// needed to re-evaluate it. Values is never rewritten by a burn; karma and
// confirmation update it explicitly.
type RollRecord struct {
	ID          string
	CharacterID string
	// ResourceID is empty for free rolls.
	ResourceID    string
	Keyword       string
	Mode          string
	Values        []int
	Burned        []bool
	Locked        *int
	RolledAllCrit bool
	KarmaUsed     bool
	Confirmed     bool
	Seed          int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CharacterStore persists characters.
type CharacterStore interface {
	PutCharacter(ctx context.Context, record CharacterRecord) error
	GetCharacter(ctx context.Context, characterID string) (CharacterRecord, error)
}

// ResourceStore persists the ordered resource list of a character.
type ResourceStore interface {
	PutResource(ctx context.Context, record ResourceRecord) error
	// ListResources returns resources in position order.
	ListResources(ctx context.Context, characterID string) ([]ResourceRecord, error)
	DeleteResource(ctx context.Context, characterID, resourceID string) error
	// UpdateResourceValues sets only the current value of each listed resource.
	UpdateResourceValues(ctx context.Context, characterID string, values map[string]int) error
}

// RollStore persists rolls.
type RollStore interface {
	PutRoll(ctx context.Context, record RollRecord) error
	GetRoll(ctx context.Context, rollID string) (RollRecord, error)
}

// Store is the full persistence surface of the sheet service.
type Store interface {
	CharacterStore
	ResourceStore
	RollStore
	// WithinTx runs fn against a store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(Store) error) error
}
