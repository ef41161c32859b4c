package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/poolsheet/internal/rules/resource"
	"github.com/louisbranch/poolsheet/internal/services/sheet/storage"
)

// PutResource inserts or replaces one resource of a character.
func (s *Store) PutResource(ctx context.Context, record storage.ResourceRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.CharacterID) == "" {
		return fmt.Errorf("character id is required")
	}
	res := record.Resource
	if strings.TrimSpace(res.ID) == "" {
		return fmt.Errorf("resource id is required")
	}

	_, err := s.q.ExecContext(ctx, s.bind(`
INSERT INTO resources (
	character_id, id, position, title, tag, value, default_value, max_value,
	number_of_dice, roll_keyword, replenish_logic, replenish_tag, replenish_cost, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(character_id, id) DO UPDATE SET
	position = excluded.position,
	title = excluded.title,
	tag = excluded.tag,
	value = excluded.value,
	default_value = excluded.default_value,
	max_value = excluded.max_value,
	number_of_dice = excluded.number_of_dice,
	roll_keyword = excluded.roll_keyword,
	replenish_logic = excluded.replenish_logic,
	replenish_tag = excluded.replenish_tag,
	replenish_cost = excluded.replenish_cost,
	updated_at = excluded.updated_at
`),
		record.CharacterID,
		res.ID,
		record.Position,
		res.Title,
		res.Tag,
		res.Value,
		res.DefaultValue,
		res.MaxValue,
		res.NumberOfDice,
		res.RollKeyword,
		string(res.ReplenishLogic),
		res.ReplenishTag,
		res.ReplenishCost,
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put resource: %w", err)
	}
	return nil
}

// ListResources returns the resources of a character in position order.
func (s *Store) ListResources(ctx context.Context, characterID string) ([]storage.ResourceRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}

	rows, err := s.q.QueryContext(ctx, s.bind(`
SELECT character_id, id, position, title, tag, value, default_value, max_value,
	number_of_dice, roll_keyword, replenish_logic, replenish_tag, replenish_cost, updated_at
FROM resources
WHERE character_id = ?
ORDER BY position, id
`), characterID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var records []storage.ResourceRecord
	for rows.Next() {
		var (
			rec       storage.ResourceRecord
			logic     string
			updatedAt int64
		)
		if err := rows.Scan(
			&rec.CharacterID,
			&rec.Resource.ID,
			&rec.Position,
			&rec.Resource.Title,
			&rec.Resource.Tag,
			&rec.Resource.Value,
			&rec.Resource.DefaultValue,
			&rec.Resource.MaxValue,
			&rec.Resource.NumberOfDice,
			&rec.Resource.RollKeyword,
			&logic,
			&rec.Resource.ReplenishTag,
			&rec.Resource.ReplenishCost,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		rec.Resource.ReplenishLogic = resource.ParseLogic(logic)
		rec.UpdatedAt = fromMillis(updatedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources: %w", err)
	}
	return records, nil
}

// DeleteResource removes one resource from a character.
func (s *Store) DeleteResource(ctx context.Context, characterID, resourceID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return fmt.Errorf("character id is required")
	}
	resourceID = strings.TrimSpace(resourceID)
	if resourceID == "" {
		return fmt.Errorf("resource id is required")
	}

	res, err := s.q.ExecContext(ctx, s.bind(`
DELETE FROM resources
WHERE character_id = ? AND id = ?
`), characterID, resourceID)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete resource rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateResourceValues writes only the current values of the given
// resources. Every id must exist or nothing is changed when run in a
// transaction.
func (s *Store) UpdateResourceValues(ctx context.Context, characterID string, values map[string]int) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return fmt.Errorf("character id is required")
	}

	now := toMillis(timeNow())
	for resourceID, value := range values {
		res, err := s.q.ExecContext(ctx, s.bind(`
UPDATE resources
SET value = ?, updated_at = ?
WHERE character_id = ? AND id = ?
`), value, now, characterID, resourceID)
		if err != nil {
			return fmt.Errorf("update resource %s: %w", resourceID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update resource rows affected: %w", err)
		}
		if affected == 0 {
			return storage.ErrNotFound
		}
	}
	return nil
}
