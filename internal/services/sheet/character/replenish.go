package character

import (
	"context"
	"fmt"
	"log"
	"strconv"

	apperrors "github.com/louisbranch/poolsheet/internal/platform/errors"
	"github.com/louisbranch/poolsheet/internal/rules/resource"
	"github.com/louisbranch/poolsheet/internal/services/sheet/storage"
	"go.opentelemetry.io/otel/attribute"
)

// ReplenishState derives the replenish control for one resource from the
// current resource list. offered applies the roll-first display rule.
func (s *Service) ReplenishState(ctx context.Context, characterID, resourceID string) (st resource.State, offered bool, err error) {
	ctx, span := s.start(ctx, "ReplenishState",
		attribute.String("character.id", characterID),
		attribute.String("resource.id", resourceID),
	)
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return resource.State{}, false, err
	}
	all, err := loadResources(ctx, s.store, characterID)
	if err != nil {
		return resource.State{}, false, err
	}
	index := resource.IndexOf(all, resourceID)
	if index < 0 {
		return resource.State{}, false, notFound(storage.ErrNotFound, "resource", resourceID)
	}
	st = resource.StateAt(all, index, s.normalizer())
	return st, resource.Offered(all[index], st), nil
}

// Replenish pays the linked resource to reset or restore a resource. Only an
// offered replenish applies: a rollable resource with value left must be
// rolled first. The state is read and both values are written in one
// transaction.
func (s *Service) Replenish(ctx context.Context, characterID, resourceID string) (delta resource.Delta, err error) {
	ctx, span := s.start(ctx, "Replenish",
		attribute.String("character.id", characterID),
		attribute.String("resource.id", resourceID),
	)
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return resource.Delta{}, err
	}
	normalize := s.normalizer()
	err = s.store.WithinTx(ctx, func(tx storage.Store) error {
		all, err := loadResources(ctx, tx, characterID)
		if err != nil {
			return err
		}
		index := resource.IndexOf(all, resourceID)
		if index < 0 {
			return notFound(storage.ErrNotFound, "resource", resourceID)
		}
		res := all[index]
		st := resource.StateAt(all, index, normalize)
		if !resource.Offered(res, st) || !st.Available() {
			return apperrors.WithMetadata(apperrors.CodeReplenishUnavailable, "replenish is not available", map[string]string{
				"ResourceID": res.ID,
				"Title":      res.Title,
			})
		}
		if st.Disabled {
			return apperrors.WithMetadata(apperrors.CodeReplenishUnaffordable, "replenish target cannot pay", map[string]string{
				"ResourceID": res.ID,
				"Title":      res.Title,
				"Cost":       strconv.Itoa(st.Cost),
				"Available":  strconv.Itoa(max(st.Target.Value, 0)),
			})
		}

		_, applied, _, ok := resource.Replenish(all, index, normalize)
		if !ok {
			return fmt.Errorf("replenish %s: state changed during apply", res.ID)
		}
		if err := tx.UpdateResourceValues(ctx, characterID, map[string]int{
			applied.ResourceID: applied.ResourceValue,
			applied.TargetID:   applied.TargetValue,
		}); err != nil {
			return fmt.Errorf("write replenish: %w", err)
		}
		delta = applied
		return nil
	})
	if err != nil {
		return resource.Delta{}, err
	}
	log.Printf("resource %s replenished: %+d, target %s %+d", delta.ResourceID, delta.ResourceDelta, delta.TargetID, delta.TargetDelta)
	return delta, nil
}
