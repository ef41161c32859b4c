// Package roll evaluates a rolled d6 pool into its active result.
//
// Evaluation is deterministic: callers supply already-rolled values, and the
// same request always produces the same Parsed value. Burning a die never
// mutates a previous evaluation; callers re-evaluate the original values with
// the updated burn set.
package roll

import (
	"strconv"

	"github.com/louisbranch/poolsheet/internal/core/check"
	apperrors "github.com/louisbranch/poolsheet/internal/platform/errors"
	"github.com/louisbranch/poolsheet/internal/rules/keyword"
)

const (
	// MinFace is the lowest face of a pool die.
	MinFace = 1
	// MaxFace is the highest face of a pool die.
	MaxFace = 6
	// NoResult is the ResultIndex of a pool with no available dice.
	NoResult = -1
)

// Mode selects whether the highest or lowest available die is the result.
type Mode string

const (
	KeepHighest Mode = "kh"
	KeepLowest  Mode = "kl"
)

// ParseMode validates a keep-mode string.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case KeepHighest, KeepLowest:
		return Mode(value), nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeRollInvalidMode, "invalid keep mode "+strconv.Quote(value), map[string]string{
			"Mode": value,
		})
	}
}

// Die is one evaluated die. Transparent is always burned || !Highlight.
type Die struct {
	Value       int
	Highlight   bool
	Transparent bool
}

// Request carries everything Evaluate needs.
type Request struct {
	Values  []int
	Keyword string
	Mode    Mode
	// Burned marks excluded dice; missing trailing entries are not burned.
	Burned []bool
	// Locked forces the result onto an index when that die is not burned.
	Locked *int
	// RolledAllCrit is set by the caller when the original, pre-burn pool
	// was entirely critical.
	RolledAllCrit bool
}

// Parsed is the outcome of one evaluation.
type Parsed struct {
	Dice        []Die
	CanKarma    bool
	CanConfirm  bool
	HasOnes     bool
	Rule        keyword.Rule
	HasResult   bool
	ResultIndex int
	ActiveValue int
}

// Evaluate selects the active die, highlights the dice that contribute to
// the outcome and reports which follow-up actions are legal.
func Evaluate(req Request) Parsed {
	rule := keyword.Resolve(req.Keyword)
	values := clampFaces(req.Values)
	burned := burnMask(req.Burned, len(values))

	result := selectResult(values, burned, req.Mode, req.Locked)
	active := 0
	if result != NoResult {
		active = values[result]
	}

	hasOnes := false
	for i, v := range values {
		if !burned[i] && v == 1 {
			hasOnes = true
			break
		}
	}

	highlight := highlightMask(values, burned, result, req.Mode, rule, hasOnes, req.RolledAllCrit)
	hasResult := result != NoResult
	onesBlock := rule.OneAlwaysFail && hasOnes

	return Parsed{
		Dice:        applyHighlight(values, burned, highlight),
		CanKarma:    rule.AllowKarma && !onesBlock && hasResult && active >= 2 && active < rule.CritValue,
		CanConfirm:  rule.AllowConfirm && !onesBlock && hasResult && active >= rule.CritValue,
		HasOnes:     hasOnes,
		Rule:        rule,
		HasResult:   hasResult,
		ResultIndex: result,
		ActiveValue: active,
	}
}

// AllCrit reports whether every die in the original pool meets the
// keyword's crit threshold. An empty pool is never all-crit.
func AllCrit(values []int, kw string) bool {
	if len(values) == 0 {
		return false
	}
	critValue := keyword.Resolve(kw).CritValue
	for _, v := range clampFaces(values) {
		if v < critValue {
			return false
		}
	}
	return true
}

// Validate reports the first die value outside MinFace..MaxFace.
// Evaluate clamps such values; Validate lets callers fail fast instead.
func Validate(values []int) error {
	for i, v := range values {
		if v < MinFace || v > MaxFace {
			return apperrors.WithMetadata(apperrors.CodeRollDieOutOfRange, "die value out of range", map[string]string{
				"Index": strconv.Itoa(i),
				"Value": strconv.Itoa(v),
			})
		}
	}
	return nil
}

// Burn returns a copy of req with the die at index excluded.
func Burn(req Request, index int) (Request, error) {
	if index < 0 || index >= len(req.Values) {
		return Request{}, invalidBurn(index, "burn index out of range")
	}
	burned := burnMask(req.Burned, len(req.Values))
	if burned[index] {
		return Request{}, invalidBurn(index, "die already burned")
	}
	rule := keyword.Resolve(req.Keyword)
	// Compare the face Evaluate shows, not the raw value.
	if clampFaces(req.Values[index:index+1])[0] == MinFace && !rule.AllowBurnOnes {
		return Request{}, apperrors.WithMetadata(apperrors.CodeRollBurnOneForbidden, "ones cannot be burned", map[string]string{
			"Index":   strconv.Itoa(index),
			"Keyword": req.Keyword,
		})
	}

	burned[index] = true
	next := req
	next.Values = append([]int(nil), req.Values...)
	next.Burned = burned
	return next, nil
}

func invalidBurn(index int, message string) error {
	return apperrors.WithMetadata(apperrors.CodeRollInvalidBurn, message, map[string]string{
		"Index": strconv.Itoa(index),
	})
}

func clampFaces(values []int) []int {
	out := make([]int, len(values))
	for i, v := range values {
		switch {
		case v < MinFace:
			out[i] = MinFace
		case v > MaxFace:
			out[i] = MaxFace
		default:
			out[i] = v
		}
	}
	return out
}

func burnMask(burned []bool, n int) []bool {
	mask := make([]bool, n)
	copy(mask, burned)
	return mask
}

// selectResult picks the forced or extreme available die; ties go to the
// lowest index.
func selectResult(values []int, burned []bool, mode Mode, locked *int) int {
	if locked != nil {
		i := *locked
		if i >= 0 && i < len(values) && !burned[i] {
			return i
		}
	}

	result := NoResult
	for i, v := range values {
		if burned[i] {
			continue
		}
		if result == NoResult {
			result = i
			continue
		}
		if mode == KeepLowest {
			if v < values[result] {
				result = i
			}
		} else if v > values[result] {
			result = i
		}
	}
	return result
}

// highlightMask decides which dice are emphasized. Broadcast rules replace
// the single-result highlight with every qualifying available die.
func highlightMask(values []int, burned []bool, result int, mode Mode, rule keyword.Rule, hasOnes, rolledAllCrit bool) []bool {
	mask := make([]bool, len(values))
	if result == NoResult {
		return mask
	}
	mask[result] = true
	selected := values[result]

	broadcast := func(match func(int) bool) {
		for i, v := range values {
			mask[i] = !burned[i] && match(v)
		}
	}
	isOne := func(v int) bool { return v == 1 }
	isCrit := func(v int) bool { return v >= rule.CritValue }

	if mode == KeepLowest {
		switch {
		case selected == 1:
			broadcast(isOne)
		case selected >= rule.CritValue && rolledAllCrit:
			broadcast(isCrit)
		}
		return mask
	}

	switch {
	case rule.OneAlwaysFail && hasOnes:
		broadcast(isOne)
	case selected >= rule.CritValue:
		// Crits only fan out when the original pool was all-crit.
		if rolledAllCrit {
			broadcast(isCrit)
		}
	case selected == 1:
		broadcast(isOne)
	}
	return mask
}

func applyHighlight(values []int, burned, highlight []bool) []Die {
	dice := make([]Die, len(values))
	for i, v := range values {
		dice[i] = Die{
			Value:       v,
			Highlight:   highlight[i],
			Transparent: burned[i] || !highlight[i],
		}
	}
	return dice
}

// Check resolves the evaluated pool against difficulty. A kh pool showing a
// one under a one-always-fails keyword fails regardless of its active die.
func (p Parsed) Check(mode Mode, difficulty int) check.Result {
	return check.Check(check.Input{
		Active:     p.ActiveValue,
		HasResult:  p.HasResult,
		CritValue:  p.Rule.CritValue,
		OnesFail:   mode != KeepLowest && p.Rule.OneAlwaysFail && p.HasOnes,
		Difficulty: difficulty,
	})
}
