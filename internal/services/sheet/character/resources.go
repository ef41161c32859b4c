package character

import (
	"context"
	"fmt"
	"log"
	"strings"

	apperrors "github.com/louisbranch/poolsheet/internal/platform/errors"
	"github.com/louisbranch/poolsheet/internal/rules/resource"
	"github.com/louisbranch/poolsheet/internal/services/sheet/storage"
	"go.opentelemetry.io/otel/attribute"
)

// ListResources returns the resources of a character in sheet order.
func (s *Service) ListResources(ctx context.Context, characterID string) (out []resource.Resource, err error) {
	ctx, span := s.start(ctx, "ListResources", attribute.String("character.id", characterID))
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return nil, err
	}
	if _, err := s.loadCharacter(ctx, s.store, characterID); err != nil {
		return nil, err
	}
	return loadResources(ctx, s.store, characterID)
}

// AddResource appends a new resource with default settings.
func (s *Service) AddResource(ctx context.Context, characterID, title string) (res resource.Resource, err error) {
	ctx, span := s.start(ctx, "AddResource", attribute.String("character.id", characterID))
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return resource.Resource{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return resource.Resource{}, apperrors.New(apperrors.CodeResourceEmptyTitle, "resource title is required")
	}
	resourceID, err := s.idGenerator()
	if err != nil {
		return resource.Resource{}, fmt.Errorf("generate resource id: %w", err)
	}

	err = s.store.WithinTx(ctx, func(tx storage.Store) error {
		if _, err := s.loadCharacter(ctx, tx, characterID); err != nil {
			return err
		}
		records, err := tx.ListResources(ctx, characterID)
		if err != nil {
			return fmt.Errorf("list resources: %w", err)
		}
		res = resource.New(resourceID, title)
		return tx.PutResource(ctx, storage.ResourceRecord{
			CharacterID: characterID,
			Position:    nextPosition(records),
			Resource:    res,
			UpdatedAt:   s.now(),
		})
	})
	if err != nil {
		return resource.Resource{}, err
	}
	log.Printf("resource %s added to character %s", res.ID, characterID)
	return res, nil
}

// UpdateResource replaces the configuration of an existing resource. Numeric
// fields are clamped into range before saving.
func (s *Service) UpdateResource(ctx context.Context, characterID string, res resource.Resource) (out resource.Resource, err error) {
	ctx, span := s.start(ctx, "UpdateResource",
		attribute.String("character.id", characterID),
		attribute.String("resource.id", res.ID),
	)
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return resource.Resource{}, err
	}
	if strings.TrimSpace(res.Title) == "" {
		return resource.Resource{}, apperrors.New(apperrors.CodeResourceEmptyTitle, "resource title is required")
	}
	out = resource.Normalize(res)

	err = s.store.WithinTx(ctx, func(tx storage.Store) error {
		records, err := tx.ListResources(ctx, characterID)
		if err != nil {
			return fmt.Errorf("list resources: %w", err)
		}
		position := -1
		for _, rec := range records {
			if rec.Resource.ID == out.ID {
				position = rec.Position
				break
			}
		}
		if position < 0 {
			return notFound(storage.ErrNotFound, "resource", out.ID)
		}
		return tx.PutResource(ctx, storage.ResourceRecord{
			CharacterID: characterID,
			Position:    position,
			Resource:    out,
			UpdatedAt:   s.now(),
		})
	})
	if err != nil {
		return resource.Resource{}, err
	}
	return out, nil
}

// DeleteResource removes a resource. Resources linked to it by tag simply
// lose their replenish target.
func (s *Service) DeleteResource(ctx context.Context, characterID, resourceID string) (err error) {
	ctx, span := s.start(ctx, "DeleteResource",
		attribute.String("character.id", characterID),
		attribute.String("resource.id", resourceID),
	)
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.DeleteResource(ctx, characterID, resourceID); err != nil {
		return notFound(err, "resource", resourceID)
	}
	log.Printf("resource %s deleted from character %s", resourceID, characterID)
	return nil
}

// AdjustResource applies a manual +/- change to a resource value.
func (s *Service) AdjustResource(ctx context.Context, characterID, resourceID string, delta int) (res resource.Resource, err error) {
	ctx, span := s.start(ctx, "AdjustResource",
		attribute.String("character.id", characterID),
		attribute.String("resource.id", resourceID),
		attribute.Int("resource.delta", delta),
	)
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return resource.Resource{}, err
	}
	err = s.store.WithinTx(ctx, func(tx storage.Store) error {
		all, err := loadResources(ctx, tx, characterID)
		if err != nil {
			return err
		}
		index := resource.IndexOf(all, resourceID)
		if index < 0 {
			return notFound(storage.ErrNotFound, "resource", resourceID)
		}
		res = resource.Adjust(all[index], delta)
		return tx.UpdateResourceValues(ctx, characterID, map[string]int{res.ID: res.Value})
	})
	if err != nil {
		return resource.Resource{}, err
	}
	return res, nil
}

// ResetResource restores a resource to its default value.
func (s *Service) ResetResource(ctx context.Context, characterID, resourceID string) (res resource.Resource, err error) {
	ctx, span := s.start(ctx, "ResetResource",
		attribute.String("character.id", characterID),
		attribute.String("resource.id", resourceID),
	)
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return resource.Resource{}, err
	}
	err = s.store.WithinTx(ctx, func(tx storage.Store) error {
		all, err := loadResources(ctx, tx, characterID)
		if err != nil {
			return err
		}
		index := resource.IndexOf(all, resourceID)
		if index < 0 {
			return notFound(storage.ErrNotFound, "resource", resourceID)
		}
		res = resource.ResetToDefault(all[index])
		return tx.UpdateResourceValues(ctx, characterID, map[string]int{res.ID: res.Value})
	})
	if err != nil {
		return resource.Resource{}, err
	}
	return res, nil
}

func loadResources(ctx context.Context, store storage.ResourceStore, characterID string) ([]resource.Resource, error) {
	records, err := store.ListResources(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	out := make([]resource.Resource, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Resource)
	}
	return out, nil
}

func nextPosition(records []storage.ResourceRecord) int {
	next := 0
	for _, rec := range records {
		if rec.Position >= next {
			next = rec.Position + 1
		}
	}
	return next
}
