package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/poolsheet/internal/services/sheet/storage"
)

// PutRoll inserts or updates a roll record.
func (s *Store) PutRoll(ctx context.Context, record storage.RollRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("roll id is required")
	}
	if strings.TrimSpace(record.CharacterID) == "" {
		return fmt.Errorf("character id is required")
	}
	if len(record.Values) == 0 {
		return fmt.Errorf("roll values are required")
	}

	valuesJSON, err := encodeJSON(record.Values)
	if err != nil {
		return fmt.Errorf("marshal values: %w", err)
	}
	burned := record.Burned
	if burned == nil {
		burned = []bool{}
	}
	burnedJSON, err := encodeJSON(burned)
	if err != nil {
		return fmt.Errorf("marshal burned: %w", err)
	}
	var locked sql.NullInt64
	if record.Locked != nil {
		locked = sql.NullInt64{Int64: int64(*record.Locked), Valid: true}
	}

	_, err = s.q.ExecContext(ctx, s.bind(`
INSERT INTO rolls (
	id, character_id, resource_id, keyword, mode, values_json, burned_json, locked_index,
	rolled_all_crit, karma_used, confirmed, seed, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	values_json = excluded.values_json,
	burned_json = excluded.burned_json,
	locked_index = excluded.locked_index,
	karma_used = excluded.karma_used,
	confirmed = excluded.confirmed,
	updated_at = excluded.updated_at
`),
		record.ID,
		record.CharacterID,
		record.ResourceID,
		record.Keyword,
		record.Mode,
		valuesJSON,
		burnedJSON,
		locked,
		record.RolledAllCrit,
		record.KarmaUsed,
		record.Confirmed,
		record.Seed,
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put roll: %w", err)
	}
	return nil
}

// GetRoll fetches a roll record by ID.
func (s *Store) GetRoll(ctx context.Context, rollID string) (storage.RollRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.RollRecord{}, err
	}
	rollID = strings.TrimSpace(rollID)
	if rollID == "" {
		return storage.RollRecord{}, fmt.Errorf("roll id is required")
	}

	row := s.q.QueryRowContext(ctx, s.bind(`
SELECT id, character_id, resource_id, keyword, mode, values_json, burned_json, locked_index,
	rolled_all_crit, karma_used, confirmed, seed, created_at, updated_at
FROM rolls
WHERE id = ?
`), rollID)

	var (
		rec        storage.RollRecord
		valuesJSON string
		burnedJSON string
		locked     sql.NullInt64
		createdAt  int64
		updatedAt  int64
	)
	if err := row.Scan(
		&rec.ID,
		&rec.CharacterID,
		&rec.ResourceID,
		&rec.Keyword,
		&rec.Mode,
		&valuesJSON,
		&burnedJSON,
		&locked,
		&rec.RolledAllCrit,
		&rec.KarmaUsed,
		&rec.Confirmed,
		&rec.Seed,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.RollRecord{}, storage.ErrNotFound
		}
		return storage.RollRecord{}, fmt.Errorf("get roll: %w", err)
	}

	values, err := decodeInts(valuesJSON)
	if err != nil {
		return storage.RollRecord{}, err
	}
	burned, err := decodeBools(burnedJSON)
	if err != nil {
		return storage.RollRecord{}, err
	}
	rec.Values = values
	rec.Burned = burned
	if locked.Valid {
		index := int(locked.Int64)
		rec.Locked = &index
	}
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}
