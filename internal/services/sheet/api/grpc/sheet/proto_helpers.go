package sheet

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/poolsheet/internal/core/check"
	apperrors "github.com/louisbranch/poolsheet/internal/platform/errors"
	"github.com/louisbranch/poolsheet/internal/rules/keyword"
	"github.com/louisbranch/poolsheet/internal/rules/resource"
	"github.com/louisbranch/poolsheet/internal/services/sheet/character"
	"github.com/louisbranch/poolsheet/internal/services/sheet/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// maxExactSeed is the largest integer a JSON number carries without loss.
const maxExactSeed = 1 << 53

func stringField(in *structpb.Struct, name string) string {
	return strings.TrimSpace(in.GetFields()[name].GetStringValue())
}

func hasField(in *structpb.Struct, name string) bool {
	value, ok := in.GetFields()[name]
	if !ok {
		return false
	}
	_, isNull := value.GetKind().(*structpb.Value_NullValue)
	return !isNull
}

// intField reads an integral number field. Missing fields read as zero.
func intField(in *structpb.Struct, name string) (int, error) {
	value, ok := in.GetFields()[name]
	if !ok {
		return 0, nil
	}
	switch kind := value.GetKind().(type) {
	case *structpb.Value_NullValue:
		return 0, nil
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
		}
		return int(n), nil
	default:
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a number", name)
	}
}

// seedField reads an optional seed. Seeds beyond 2^53 must be sent as
// decimal strings.
func seedField(in *structpb.Struct, name string) (*int64, error) {
	value, ok := in.GetFields()[name]
	if !ok {
		return nil, nil
	}
	var seed int64
	switch kind := value.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != math.Trunc(n) || math.Abs(n) > maxExactSeed {
			return nil, seedOutOfRange(strconv.FormatFloat(n, 'g', -1, 64))
		}
		seed = int64(n)
	case *structpb.Value_StringValue:
		parsed, err := strconv.ParseInt(strings.TrimSpace(kind.StringValue), 10, 64)
		if err != nil {
			return nil, seedOutOfRange(kind.StringValue)
		}
		seed = parsed
	default:
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a number or string", name)
	}
	return &seed, nil
}

func seedOutOfRange(raw string) error {
	return apperrors.WithMetadata(apperrors.CodeSeedOutOfRange, "seed out of range", map[string]string{
		"Seed": raw,
	})
}

func timeString(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}

func intList(values []int) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func boolList(values []bool, n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = i < len(values) && values[i]
	}
	return out
}

func characterFields(rec storage.CharacterRecord) map[string]any {
	return map[string]any{
		"id":         rec.ID,
		"name":       rec.Name,
		"created_at": timeString(rec.CreatedAt),
		"updated_at": timeString(rec.UpdatedAt),
	}
}

func resourceFields(res resource.Resource) map[string]any {
	return map[string]any{
		"id":              res.ID,
		"title":           res.Title,
		"tag":             res.Tag,
		"value":           res.Value,
		"default_value":   res.DefaultValue,
		"max_value":       res.MaxValue,
		"number_of_dice":  res.NumberOfDice,
		"roll_keyword":    res.RollKeyword,
		"replenish_logic": string(res.ReplenishLogic),
		"replenish_tag":   res.ReplenishTag,
		"replenish_cost":  res.ReplenishCost,
	}
}

// resourceFromStruct overlays the fields present in in onto base.
func resourceFromStruct(in *structpb.Struct, base resource.Resource) (resource.Resource, error) {
	res := base
	texts := map[string]*string{
		"title":         &res.Title,
		"tag":           &res.Tag,
		"roll_keyword":  &res.RollKeyword,
		"replenish_tag": &res.ReplenishTag,
	}
	for name, target := range texts {
		if hasField(in, name) {
			*target = stringField(in, name)
		}
	}
	numbers := map[string]*int{
		"value":          &res.Value,
		"default_value":  &res.DefaultValue,
		"max_value":      &res.MaxValue,
		"number_of_dice": &res.NumberOfDice,
		"replenish_cost": &res.ReplenishCost,
	}
	for name, target := range numbers {
		if !hasField(in, name) {
			continue
		}
		value, err := intField(in, name)
		if err != nil {
			return resource.Resource{}, err
		}
		*target = value
	}
	if hasField(in, "replenish_logic") {
		res.ReplenishLogic = resource.ParseLogic(stringField(in, "replenish_logic"))
	}
	return res, nil
}

func ruleFields(rule keyword.Rule) map[string]any {
	return map[string]any{
		"allow_karma":     rule.AllowKarma,
		"allow_confirm":   rule.AllowConfirm,
		"crit_value":      rule.CritValue,
		"one_always_fail": rule.OneAlwaysFail,
		"allow_burn_ones": rule.AllowBurnOnes,
		"roll_power":      rule.RollPower,
		"roll_dialogue":   rule.RollDialogue,
	}
}

func rollFields(v character.RollView) map[string]any {
	rec := v.Roll
	parsed := v.Parsed
	dice := make([]any, len(parsed.Dice))
	for i, die := range parsed.Dice {
		dice[i] = map[string]any{
			"value":       die.Value,
			"highlight":   die.Highlight,
			"transparent": die.Transparent,
		}
	}
	fields := map[string]any{
		"id":              rec.ID,
		"character_id":    rec.CharacterID,
		"resource_id":     rec.ResourceID,
		"keyword":         rec.Keyword,
		"mode":            rec.Mode,
		"values":          intList(rec.Values),
		"burned":          boolList(rec.Burned, len(rec.Values)),
		"rolled_all_crit": rec.RolledAllCrit,
		"karma_used":      rec.KarmaUsed,
		"confirmed":       rec.Confirmed,
		"seed":            strconv.FormatInt(rec.Seed, 10),
		"created_at":      timeString(rec.CreatedAt),
		"dice":            dice,
		"can_karma":       parsed.CanKarma,
		"can_confirm":     parsed.CanConfirm,
		"has_ones":        parsed.HasOnes,
		"has_result":      parsed.HasResult,
		"active_value":    parsed.ActiveValue,
		"rule":            ruleFields(parsed.Rule),
		"result_index":    nil,
	}
	if parsed.HasResult {
		fields["result_index"] = parsed.ResultIndex
	}
	if rec.Locked != nil {
		fields["locked_index"] = *rec.Locked
	}
	if v.Resource != nil {
		fields["resource"] = resourceFields(*v.Resource)
	}
	return fields
}

func checkFields(result check.Result) map[string]any {
	return map[string]any{
		"outcome": string(result.Outcome),
		"margin":  result.Margin,
		"success": result.Success(),
	}
}

func stateFields(st resource.State, offered bool) map[string]any {
	fields := map[string]any{
		"visible":   st.Visible,
		"mode":      nil,
		"disabled":  st.Disabled,
		"cost":      st.Cost,
		"offered":   offered,
		"target_id": nil,
	}
	if st.Mode != "" {
		fields["mode"] = string(st.Mode)
	}
	if st.Target != nil {
		fields["target_id"] = st.Target.ID
		fields["target_value"] = st.Target.Value
	}
	return fields
}

func deltaFields(d resource.Delta) map[string]any {
	return map[string]any{
		"resource_id":    d.ResourceID,
		"resource_value": d.ResourceValue,
		"resource_delta": d.ResourceDelta,
		"target_id":      d.TargetID,
		"target_value":   d.TargetValue,
		"target_delta":   d.TargetDelta,
	}
}

func labelFields(l character.Labels) map[string]any {
	modes := make(map[string]any, len(l.Modes))
	for mode, label := range l.Modes {
		modes[string(mode)] = label
	}
	return map[string]any{
		"locale":    l.Locale,
		"roll":      l.Roll,
		"burn":      l.Burn,
		"karma":     l.Karma,
		"confirm":   l.Confirm,
		"reset":     l.Reset,
		"restore":   l.Restore,
		"no_result": l.NoResult,
		"modes":     modes,
	}
}

func toStruct(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}
