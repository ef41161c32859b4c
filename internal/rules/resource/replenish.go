package resource

import (
	"slices"

	"github.com/louisbranch/poolsheet/internal/rules/tags"
)

// State is the derived replenish control for one resource. It is recomputed
// from current values on every read and never stored.
type State struct {
	Visible  bool
	Mode     Logic // empty when replenishment is unavailable
	Disabled bool
	// Target is a snapshot of the funding resource.
	Target      *Resource
	TargetIndex int
	Cost        int
}

// Available reports whether a funding resource was linked.
func (s State) Available() bool {
	return s.Mode != "" && s.Target != nil
}

func unavailable() State {
	return State{Disabled: true, TargetIndex: -1}
}

// StateFor derives the replenish state of res against the owner's resource
// list. res is located in all by value, so callers that already hold its
// position should use StateAt. The funding resource is found by tag at call
// time; a tag that no other resource carries leaves replenishment
// unavailable.
func StateFor(res Resource, all []Resource, normalize tags.Normalizer) State {
	return stateAt(res, slices.Index(all, res), all, normalize)
}

// StateAt derives the replenish state of all[index]. The resource at index
// never funds itself, even when another entry shares its ID.
func StateAt(all []Resource, index int, normalize tags.Normalizer) State {
	if index < 0 || index >= len(all) {
		return unavailable()
	}
	return stateAt(all[index], index, all, normalize)
}

func stateAt(res Resource, self int, all []Resource, normalize tags.Normalizer) State {
	logic := ParseLogic(string(res.ReplenishLogic))
	if logic == LogicDisabled || !res.Capped() {
		return unavailable()
	}

	targetIndex := FindLinked(all, self, res.ReplenishTag, normalize)
	if targetIndex < 0 {
		return unavailable()
	}
	target := all[targetIndex]
	cost := clamp(res.ReplenishCost, MinCost, MaxCost)
	value := max(res.Value, 0)

	st := State{
		Mode:        logic,
		Disabled:    max(target.Value, 0) < cost,
		Target:      &target,
		TargetIndex: targetIndex,
		Cost:        cost,
	}
	switch logic {
	case LogicReset:
		st.Visible = value >= res.MaxValue
	case LogicRestore:
		st.Visible = value < res.MaxValue
	}
	return st
}

// Offered applies the display rule: a rollable resource with value to spend
// offers its roll action instead of replenishment.
func Offered(res Resource, st State) bool {
	if !st.Visible {
		return false
	}
	return !(res.Rollable() && res.Value > 0)
}

// Delta is the numeric effect of one replenish action. Values are the new
// absolute values; deltas are the signed change from the inputs.
type Delta struct {
	ResourceID    string
	ResourceValue int
	ResourceDelta int
	TargetID      string
	TargetValue   int
	TargetDelta   int
}

// Apply computes the effect of replenishing res with st. Callers check
// st.Visible and !st.Disabled first; Apply still never drives either value
// below zero or res above its cap. It reports false when st has no target.
func Apply(res Resource, st State) (Delta, bool) {
	if !st.Available() {
		return Delta{}, false
	}
	target := *st.Target
	current := max(res.Value, 0)
	targetCurrent := max(target.Value, 0)

	next := current
	switch st.Mode {
	case LogicReset:
		next = 0
	case LogicRestore:
		next = current + 1
		if res.Capped() {
			next = min(res.MaxValue, next)
		}
	default:
		return Delta{}, false
	}
	cost := clamp(st.Cost, MinCost, MaxCost)
	targetNext := max(0, targetCurrent-cost)

	return Delta{
		ResourceID:    res.ID,
		ResourceValue: next,
		ResourceDelta: next - res.Value,
		TargetID:      target.ID,
		TargetValue:   targetNext,
		TargetDelta:   targetNext - target.Value,
	}, true
}

// Replenish derives the state for all[index], applies it and returns the
// updated list. The input slice is not modified.
func Replenish(all []Resource, index int, normalize tags.Normalizer) ([]Resource, Delta, State, bool) {
	if index < 0 || index >= len(all) {
		return all, Delta{}, unavailable(), false
	}
	st := StateAt(all, index, normalize)
	if !st.Visible || st.Disabled || st.TargetIndex == index {
		return all, Delta{}, st, false
	}
	delta, ok := Apply(all[index], st)
	if !ok {
		return all, Delta{}, st, false
	}
	out := append([]Resource(nil), all...)
	out[index].Value = delta.ResourceValue
	out[st.TargetIndex].Value = delta.TargetValue
	return out, delta, st, true
}
