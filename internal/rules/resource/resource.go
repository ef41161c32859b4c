// Package resource implements the tag-linked resource economy: spending,
// manual adjustment and replenishment funded by a second resource.
package resource

import (
	"strconv"

	apperrors "github.com/louisbranch/poolsheet/internal/platform/errors"
	"github.com/louisbranch/poolsheet/internal/rules/keyword"
	"github.com/louisbranch/poolsheet/internal/rules/tags"
)

// Logic selects how a resource is replenished.
type Logic string

const (
	LogicDisabled Logic = "disabled"
	LogicReset    Logic = "reset"
	LogicRestore  Logic = "restore"
)

const (
	MaxDice = 3
	MinCost = 1
	MaxCost = 100
)

// Resource is a finite pool owned by a character or archetype.
// MaxValue 0 means uncapped.
type Resource struct {
	ID             string
	Title          string
	Tag            string
	Value          int
	DefaultValue   int
	MaxValue       int
	NumberOfDice   int
	RollKeyword    string
	ReplenishLogic Logic
	ReplenishTag   string
	ReplenishCost  int
}

// New returns a resource with the defaults used when a player adds one.
func New(id, title string) Resource {
	return Resource{
		ID:             id,
		Title:          title,
		RollKeyword:    string(keyword.Default),
		ReplenishLogic: LogicDisabled,
		ReplenishCost:  MinCost,
	}
}

// ParseLogic maps a stored string to a Logic, defaulting to LogicDisabled.
func ParseLogic(value string) Logic {
	switch Logic(value) {
	case LogicReset, LogicRestore:
		return Logic(value)
	default:
		return LogicDisabled
	}
}

// Capped reports whether the resource has a maximum.
func (r Resource) Capped() bool {
	return r.MaxValue > 0
}

// Rollable reports whether the resource rolls dice when spent.
func (r Resource) Rollable() bool {
	return r.NumberOfDice > 0
}

// Normalize clamps every numeric field into its legal range.
func Normalize(r Resource) Resource {
	r.NumberOfDice = clamp(r.NumberOfDice, 0, MaxDice)
	r.ReplenishCost = clamp(r.ReplenishCost, MinCost, MaxCost)
	if r.MaxValue < 0 {
		r.MaxValue = 0
	}
	if r.DefaultValue < 0 {
		r.DefaultValue = 0
	}
	r.Value = r.clampValue(r.Value)
	r.ReplenishLogic = ParseLogic(string(r.ReplenishLogic))
	if r.RollKeyword == "" {
		r.RollKeyword = string(keyword.Default)
	}
	return r
}

// Adjust applies a manual +/- change, clamped to [0, MaxValue].
func Adjust(r Resource, delta int) Resource {
	r.Value = r.clampValue(r.Value + delta)
	return r
}

// Spend consumes one unit for a roll.
func Spend(r Resource) (Resource, error) {
	if r.Value <= 0 {
		return r, apperrors.WithMetadata(apperrors.CodeResourceEmpty, "resource is empty", map[string]string{
			"ResourceID": r.ID,
			"Title":      r.Title,
		})
	}
	r.Value--
	return r, nil
}

// ResetToDefault restores the configured default value.
func ResetToDefault(r Resource) Resource {
	r.Value = r.clampValue(r.DefaultValue)
	return r
}

// CheckValue reports a negative value as a coded error. The engine clamps
// such values; callers in debug paths can use this to fail fast.
func CheckValue(r Resource) error {
	if r.Value < 0 {
		return apperrors.WithMetadata(apperrors.CodeResourceNegativeValue, "negative resource value", map[string]string{
			"ResourceID": r.ID,
			"Value":      strconv.Itoa(r.Value),
		})
	}
	return nil
}

func (r Resource) clampValue(v int) int {
	if v < 0 {
		return 0
	}
	if r.Capped() && v > r.MaxValue {
		return r.MaxValue
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FindLinked returns the index of the first resource other than
// all[self] whose normalized tag equals tag. It returns -1 when none match.
func FindLinked(all []Resource, self int, tag string, normalize tags.Normalizer) int {
	if normalize == nil {
		normalize = tags.Default
	}
	want := normalize(tag)
	if want == "" {
		return -1
	}
	for i, candidate := range all {
		if i == self {
			continue
		}
		if normalize(candidate.Tag) == want {
			return i
		}
	}
	return -1
}

// IndexOf returns the position of the resource with id, or -1.
func IndexOf(all []Resource, id string) int {
	for i, r := range all {
		if r.ID == id {
			return i
		}
	}
	return -1
}
