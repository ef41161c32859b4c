package character

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/poolsheet/internal/core/dice"
	apperrors "github.com/louisbranch/poolsheet/internal/platform/errors"
	"github.com/louisbranch/poolsheet/internal/random"
	"github.com/louisbranch/poolsheet/internal/rules/keyword"
	"github.com/louisbranch/poolsheet/internal/rules/resource"
	"github.com/louisbranch/poolsheet/internal/rules/roll"
	"github.com/louisbranch/poolsheet/internal/services/sheet/storage"
	"go.opentelemetry.io/otel/attribute"
)

// RollInput describes a new roll. When ResourceID is set the resource pays
// one unit and supplies the keyword, and its dice count when it has one.
type RollInput struct {
	CharacterID string
	ResourceID  string
	Keyword     string
	Dice        int
	Mode        string
	Seed        *int64
}

// RollView is a stored roll with its current evaluation.
type RollView struct {
	Roll   storage.RollRecord
	Parsed roll.Parsed
	// Resource is the spent resource after the roll, when one paid for it.
	Resource *resource.Resource
}

func request(rec storage.RollRecord) roll.Request {
	return roll.Request{
		Values:        rec.Values,
		Keyword:       rec.Keyword,
		Mode:          roll.Mode(rec.Mode),
		Burned:        rec.Burned,
		Locked:        rec.Locked,
		RolledAllCrit: rec.RolledAllCrit,
	}
}

func view(rec storage.RollRecord) RollView {
	return RollView{Roll: rec, Parsed: roll.Evaluate(request(rec))}
}

// Roll rolls a new pool and stores it.
func (s *Service) Roll(ctx context.Context, in RollInput) (out RollView, err error) {
	ctx, span := s.start(ctx, "Roll",
		attribute.String("character.id", in.CharacterID),
		attribute.String("resource.id", in.ResourceID),
	)
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return RollView{}, err
	}
	mode := roll.KeepHighest
	if value := strings.TrimSpace(in.Mode); value != "" {
		mode, err = roll.ParseMode(value)
		if err != nil {
			return RollView{}, err
		}
	}
	seed, err := random.ResolveSeed(in.Seed, s.seedGenerator)
	if err != nil {
		return RollView{}, err
	}
	rollID, err := s.idGenerator()
	if err != nil {
		return RollView{}, fmt.Errorf("generate roll id: %w", err)
	}

	err = s.store.WithinTx(ctx, func(tx storage.Store) error {
		character, err := s.loadCharacter(ctx, tx, in.CharacterID)
		if err != nil {
			return err
		}
		kw := strings.TrimSpace(in.Keyword)
		count := in.Dice

		var spent *resource.Resource
		if resourceID := strings.TrimSpace(in.ResourceID); resourceID != "" {
			all, err := loadResources(ctx, tx, character.ID)
			if err != nil {
				return err
			}
			index := resource.IndexOf(all, resourceID)
			if index < 0 {
				return notFound(storage.ErrNotFound, "resource", resourceID)
			}
			paid, err := resource.Spend(all[index])
			if err != nil {
				return err
			}
			if paid.Rollable() {
				count = paid.NumberOfDice
			}
			if paid.RollKeyword != "" {
				kw = paid.RollKeyword
			}
			if err := tx.UpdateResourceValues(ctx, character.ID, map[string]int{paid.ID: paid.Value}); err != nil {
				return fmt.Errorf("spend resource: %w", err)
			}
			spent = &paid
		}
		if kw == "" {
			kw = string(keyword.Default)
		}

		pool, err := dice.RollPool(dice.Request{Count: count, Seed: seed})
		if err != nil {
			return err
		}
		now := s.now()
		rec := storage.RollRecord{
			ID:            rollID,
			CharacterID:   character.ID,
			ResourceID:    strings.TrimSpace(in.ResourceID),
			Keyword:       kw,
			Mode:          string(mode),
			Values:        pool.Values,
			Burned:        make([]bool, len(pool.Values)),
			RolledAllCrit: roll.AllCrit(pool.Values, kw),
			Seed:          pool.Seed,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.PutRoll(ctx, rec); err != nil {
			return fmt.Errorf("put roll: %w", err)
		}
		out = view(rec)
		out.Resource = spent
		return nil
	})
	if err != nil {
		return RollView{}, err
	}
	span.SetAttributes(
		attribute.String("roll.id", out.Roll.ID),
		attribute.String("roll.keyword", out.Roll.Keyword),
		attribute.Int("roll.dice", len(out.Roll.Values)),
	)
	log.Printf("roll %s: %s %v", out.Roll.ID, out.Roll.Keyword, out.Roll.Values)
	return out, nil
}

// GetRoll returns a stored roll and its evaluation.
func (s *Service) GetRoll(ctx context.Context, rollID string) (out RollView, err error) {
	ctx, span := s.start(ctx, "GetRoll", attribute.String("roll.id", rollID))
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return RollView{}, err
	}
	rec, err := s.loadRoll(ctx, s.store, rollID)
	if err != nil {
		return RollView{}, err
	}
	return view(rec), nil
}

// Burn excludes one die and re-evaluates from the original values.
func (s *Service) Burn(ctx context.Context, rollID string, index int) (out RollView, err error) {
	ctx, span := s.start(ctx, "Burn",
		attribute.String("roll.id", rollID),
		attribute.Int("roll.burn_index", index),
	)
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return RollView{}, err
	}
	err = s.store.WithinTx(ctx, func(tx storage.Store) error {
		rec, err := s.loadRoll(ctx, tx, rollID)
		if err != nil {
			return err
		}
		next, err := roll.Burn(request(rec), index)
		if err != nil {
			return err
		}
		rec.Burned = next.Burned
		rec.UpdatedAt = s.now()
		if err := tx.PutRoll(ctx, rec); err != nil {
			return fmt.Errorf("put roll: %w", err)
		}
		out = view(rec)
		return nil
	})
	if err != nil {
		return RollView{}, err
	}
	return out, nil
}

// Karma re-rolls the result die and locks the result onto it. It is
// allowed once per roll and only while the evaluation offers it.
func (s *Service) Karma(ctx context.Context, rollID string, seed *int64) (out RollView, err error) {
	ctx, span := s.start(ctx, "Karma", attribute.String("roll.id", rollID))
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return RollView{}, err
	}
	rerollSeed, err := random.ResolveSeed(seed, s.seedGenerator)
	if err != nil {
		return RollView{}, err
	}
	err = s.store.WithinTx(ctx, func(tx storage.Store) error {
		rec, err := s.loadRoll(ctx, tx, rollID)
		if err != nil {
			return err
		}
		parsed := roll.Evaluate(request(rec))
		if rec.KarmaUsed || !parsed.CanKarma {
			return apperrors.WithMetadata(apperrors.CodeRollKarmaUnavailable, "karma is not available", map[string]string{
				"RollID": rec.ID,
			})
		}
		values, err := dice.Reroll(rec.Values, parsed.ResultIndex, rerollSeed)
		if err != nil {
			return err
		}
		locked := parsed.ResultIndex
		rec.Values = values
		rec.Locked = &locked
		rec.KarmaUsed = true
		rec.UpdatedAt = s.now()
		if err := tx.PutRoll(ctx, rec); err != nil {
			return fmt.Errorf("put roll: %w", err)
		}
		out = view(rec)
		return nil
	})
	if err != nil {
		return RollView{}, err
	}
	log.Printf("roll %s: karma %v", out.Roll.ID, out.Roll.Values)
	return out, nil
}

// Confirm rolls one confirmation die for a critical result and appends it
// to the pool. It is allowed once per roll.
func (s *Service) Confirm(ctx context.Context, rollID string, seed *int64) (out RollView, err error) {
	ctx, span := s.start(ctx, "Confirm", attribute.String("roll.id", rollID))
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return RollView{}, err
	}
	confirmSeed, err := random.ResolveSeed(seed, s.seedGenerator)
	if err != nil {
		return RollView{}, err
	}
	err = s.store.WithinTx(ctx, func(tx storage.Store) error {
		rec, err := s.loadRoll(ctx, tx, rollID)
		if err != nil {
			return err
		}
		parsed := roll.Evaluate(request(rec))
		if rec.Confirmed || !parsed.CanConfirm {
			return apperrors.WithMetadata(apperrors.CodeRollConfirmUnavailable, "confirmation is not available", map[string]string{
				"RollID": rec.ID,
			})
		}
		rec.Values = append(append([]int(nil), rec.Values...), dice.RollOne(confirmSeed))
		if len(rec.Burned) > 0 {
			rec.Burned = append(append([]bool(nil), rec.Burned...), false)
		}
		rec.Confirmed = true
		rec.UpdatedAt = s.now()
		if err := tx.PutRoll(ctx, rec); err != nil {
			return fmt.Errorf("put roll: %w", err)
		}
		out = view(rec)
		return nil
	})
	if err != nil {
		return RollView{}, err
	}
	log.Printf("roll %s: confirm %v", out.Roll.ID, out.Roll.Values)
	return out, nil
}

func (s *Service) loadRoll(ctx context.Context, store storage.RollStore, rollID string) (storage.RollRecord, error) {
	rollID = strings.TrimSpace(rollID)
	if rollID == "" {
		return storage.RollRecord{}, apperrors.New(apperrors.CodeNotFound, "roll id is required")
	}
	rec, err := store.GetRoll(ctx, rollID)
	if err != nil {
		return storage.RollRecord{}, notFound(err, "roll", rollID)
	}
	return rec, nil
}
