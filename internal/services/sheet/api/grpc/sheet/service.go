package sheet

import (
	"context"

	apperrors "github.com/louisbranch/poolsheet/internal/platform/errors"
	"github.com/louisbranch/poolsheet/internal/rules/keyword"
	"github.com/louisbranch/poolsheet/internal/rules/resource"
	"github.com/louisbranch/poolsheet/internal/rules/roll"
	"github.com/louisbranch/poolsheet/internal/services/sheet/character"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service exposes sheet operations as gRPC handlers.
type Service struct {
	sheet *character.Service
}

var _ SheetServer = (*Service)(nil)

// NewService creates a gRPC service backed by the sheet service.
func NewService(sheet *character.Service) *Service {
	return &Service{sheet: sheet}
}

func (s *Service) check(in *structpb.Struct, method string) error {
	if in == nil {
		return status.Errorf(codes.InvalidArgument, "%s request is required", method)
	}
	if s == nil || s.sheet == nil {
		return status.Error(codes.Internal, "sheet service is not configured")
	}
	return nil
}

func require(in *structpb.Struct, name string) (string, error) {
	value := stringField(in, name)
	if value == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return value, nil
}

func handleErr(ctx context.Context, err error) error {
	return apperrors.HandleError(err, LocaleFromContext(ctx))
}

// CreateCharacter creates a character from {name}.
func (s *Service) CreateCharacter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "create character"); err != nil {
		return nil, err
	}
	rec, err := s.sheet.CreateCharacter(ctx, stringField(in, "name"))
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	return toStruct(map[string]any{"character": characterFields(rec)})
}

// GetCharacter returns {character} for {character_id}.
func (s *Service) GetCharacter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "get character"); err != nil {
		return nil, err
	}
	characterID, err := require(in, "character_id")
	if err != nil {
		return nil, err
	}
	rec, err := s.sheet.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	return toStruct(map[string]any{"character": characterFields(rec)})
}

// AddResource appends a resource from {character_id, title}.
func (s *Service) AddResource(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "add resource"); err != nil {
		return nil, err
	}
	characterID, err := require(in, "character_id")
	if err != nil {
		return nil, err
	}
	res, err := s.sheet.AddResource(ctx, characterID, stringField(in, "title"))
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	return toStruct(map[string]any{"resource": resourceFields(res)})
}

// ListResources returns {resources} in sheet order.
func (s *Service) ListResources(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "list resources"); err != nil {
		return nil, err
	}
	characterID, err := require(in, "character_id")
	if err != nil {
		return nil, err
	}
	list, err := s.sheet.ListResources(ctx, characterID)
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	resources := make([]any, len(list))
	for i, res := range list {
		resources[i] = resourceFields(res)
	}
	return toStruct(map[string]any{"resources": resources})
}

// UpdateResource overlays the present fields of {character_id, resource:{id, ...}}
// onto the stored resource.
func (s *Service) UpdateResource(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "update resource"); err != nil {
		return nil, err
	}
	characterID, err := require(in, "character_id")
	if err != nil {
		return nil, err
	}
	patch := in.GetFields()["resource"].GetStructValue()
	if patch == nil {
		return nil, status.Error(codes.InvalidArgument, "resource is required")
	}
	resourceID, err := require(patch, "id")
	if err != nil {
		return nil, err
	}

	list, err := s.sheet.ListResources(ctx, characterID)
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	index := resource.IndexOf(list, resourceID)
	if index < 0 {
		return nil, status.Error(codes.NotFound, "resource not found")
	}
	next, err := resourceFromStruct(patch, list[index])
	if err != nil {
		return nil, err
	}
	res, err := s.sheet.UpdateResource(ctx, characterID, next)
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	return toStruct(map[string]any{"resource": resourceFields(res)})
}

// DeleteResource removes {resource_id} from {character_id}.
func (s *Service) DeleteResource(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "delete resource"); err != nil {
		return nil, err
	}
	characterID, err := require(in, "character_id")
	if err != nil {
		return nil, err
	}
	resourceID, err := require(in, "resource_id")
	if err != nil {
		return nil, err
	}
	if err := s.sheet.DeleteResource(ctx, characterID, resourceID); err != nil {
		return nil, handleErr(ctx, err)
	}
	return toStruct(map[string]any{})
}

// AdjustResource applies {delta} to a resource value.
func (s *Service) AdjustResource(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "adjust resource"); err != nil {
		return nil, err
	}
	characterID, err := require(in, "character_id")
	if err != nil {
		return nil, err
	}
	resourceID, err := require(in, "resource_id")
	if err != nil {
		return nil, err
	}
	delta, err := intField(in, "delta")
	if err != nil {
		return nil, err
	}
	res, err := s.sheet.AdjustResource(ctx, characterID, resourceID, delta)
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	return toStruct(map[string]any{"resource": resourceFields(res)})
}

// Roll rolls {dice} for {character_id}, optionally paid by {resource_id}.
// An optional {difficulty} adds a {check} outcome for the active die.
func (s *Service) Roll(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "roll"); err != nil {
		return nil, err
	}
	characterID, err := require(in, "character_id")
	if err != nil {
		return nil, err
	}
	count, err := intField(in, "dice")
	if err != nil {
		return nil, err
	}
	seed, err := seedField(in, "seed")
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	hasDifficulty := hasField(in, "difficulty")
	difficulty, err := intField(in, "difficulty")
	if err != nil {
		return nil, err
	}
	view, err := s.sheet.Roll(ctx, character.RollInput{
		CharacterID: characterID,
		ResourceID:  stringField(in, "resource_id"),
		Keyword:     stringField(in, "keyword"),
		Dice:        count,
		Mode:        stringField(in, "mode"),
		Seed:        seed,
	})
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	fields := map[string]any{"roll": rollFields(view)}
	if hasDifficulty {
		fields["check"] = checkFields(view.Parsed.Check(roll.Mode(view.Roll.Mode), difficulty))
	}
	return toStruct(fields)
}

// GetRoll returns {roll} for {roll_id}.
func (s *Service) GetRoll(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "get roll"); err != nil {
		return nil, err
	}
	rollID, err := require(in, "roll_id")
	if err != nil {
		return nil, err
	}
	view, err := s.sheet.GetRoll(ctx, rollID)
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	return toStruct(map[string]any{"roll": rollFields(view)})
}

// Burn burns die {index} of {roll_id}.
func (s *Service) Burn(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "burn"); err != nil {
		return nil, err
	}
	rollID, err := require(in, "roll_id")
	if err != nil {
		return nil, err
	}
	if !hasField(in, "index") {
		return nil, status.Error(codes.InvalidArgument, "index is required")
	}
	index, err := intField(in, "index")
	if err != nil {
		return nil, err
	}
	view, err := s.sheet.Burn(ctx, rollID, index)
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	return toStruct(map[string]any{"roll": rollFields(view)})
}

// Karma re-rolls the result die of {roll_id}.
func (s *Service) Karma(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.followUp(ctx, in, "karma", s.sheet.Karma)
}

// Confirm rolls a confirmation die for {roll_id}.
func (s *Service) Confirm(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.followUp(ctx, in, "confirm", s.sheet.Confirm)
}

func (s *Service) followUp(ctx context.Context, in *structpb.Struct, name string, action func(context.Context, string, *int64) (character.RollView, error)) (*structpb.Struct, error) {
	if err := s.check(in, name); err != nil {
		return nil, err
	}
	rollID, err := require(in, "roll_id")
	if err != nil {
		return nil, err
	}
	seed, err := seedField(in, "seed")
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	view, err := action(ctx, rollID, seed)
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	return toStruct(map[string]any{"roll": rollFields(view)})
}

// ReplenishState returns the replenish control state of a resource.
func (s *Service) ReplenishState(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "replenish state"); err != nil {
		return nil, err
	}
	characterID, err := require(in, "character_id")
	if err != nil {
		return nil, err
	}
	resourceID, err := require(in, "resource_id")
	if err != nil {
		return nil, err
	}
	st, offered, err := s.sheet.ReplenishState(ctx, characterID, resourceID)
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	return toStruct(map[string]any{"state": stateFields(st, offered)})
}

// Replenish applies replenishment to a resource and returns {delta}.
func (s *Service) Replenish(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := s.check(in, "replenish"); err != nil {
		return nil, err
	}
	characterID, err := require(in, "character_id")
	if err != nil {
		return nil, err
	}
	resourceID, err := require(in, "resource_id")
	if err != nil {
		return nil, err
	}
	delta, err := s.sheet.Replenish(ctx, characterID, resourceID)
	if err != nil {
		return nil, handleErr(ctx, err)
	}
	return toStruct(map[string]any{"delta": deltaFields(delta)})
}

// ResolveKeyword resolves {keyword}, or extracts one from free {text}.
func (s *Service) ResolveKeyword(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "resolve keyword request is required")
	}
	kw := stringField(in, "keyword")
	extracted := false
	if kw == "" {
		text := in.GetFields()["text"].GetStringValue()
		found, ok := keyword.Extract(text)
		if !ok {
			return toStruct(map[string]any{"found": false, "keyword": nil, "known": false})
		}
		kw = found
		extracted = true
	}
	return toStruct(map[string]any{
		"found":     true,
		"extracted": extracted,
		"keyword":   kw,
		"known":     keyword.IsKnown(kw),
		"rule":      ruleFields(keyword.Resolve(kw)),
	})
}

// GetLabels returns sheet labels for {locale}, or the request metadata locale.
func (s *Service) GetLabels(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get labels request is required")
	}
	locale := stringField(in, "locale")
	if locale == "" {
		locale = LocaleFromContext(ctx)
	}
	return toStruct(map[string]any{"labels": labelFields(character.LabelsFor(locale))})
}
