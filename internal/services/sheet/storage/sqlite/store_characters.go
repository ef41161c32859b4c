package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/poolsheet/internal/services/sheet/storage"
)

// PutCharacter inserts or updates a character record.
func (s *Store) PutCharacter(ctx context.Context, record storage.CharacterRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("character id is required")
	}
	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("name is required")
	}

	_, err := s.q.ExecContext(ctx, s.bind(`
INSERT INTO characters (id, name, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	updated_at = excluded.updated_at
`),
		record.ID,
		strings.TrimSpace(record.Name),
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put character: %w", err)
	}
	return nil
}

// GetCharacter fetches a character record by ID.
func (s *Store) GetCharacter(ctx context.Context, characterID string) (storage.CharacterRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.CharacterRecord{}, err
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return storage.CharacterRecord{}, fmt.Errorf("character id is required")
	}

	var (
		rec       storage.CharacterRecord
		createdAt int64
		updatedAt int64
	)
	err := s.q.QueryRowContext(ctx, s.bind(`
SELECT id, name, created_at, updated_at
FROM characters
WHERE id = ?
`), characterID).Scan(&rec.ID, &rec.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.CharacterRecord{}, storage.ErrNotFound
		}
		return storage.CharacterRecord{}, fmt.Errorf("get character: %w", err)
	}
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}
