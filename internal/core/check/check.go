// Package check resolves a pool's active die against a target number.
package check

// Outcome classifies a resolved check.
type Outcome string

const (
	OutcomeNone     Outcome = "none"
	OutcomeFailure  Outcome = "failure"
	OutcomeSuccess  Outcome = "success"
	OutcomeCritical Outcome = "critical"
)

// Input is the evaluated pool state a check needs.
type Input struct {
	Active    int
	HasResult bool
	// CritValue is the keyword's crit threshold; zero disables crits.
	CritValue int
	// OnesFail forces failure, e.g. a kh pool showing a one under a
	// one-always-fails keyword.
	OnesFail   bool
	Difficulty int
}

// Result is the outcome of one check. Margin is zero when there was no result.
type Result struct {
	Outcome Outcome
	Margin  int
}

// Success reports whether the check met its difficulty.
func (r Result) Success() bool {
	return r.Outcome == OutcomeSuccess || r.Outcome == OutcomeCritical
}

// MeetsDifficulty returns true if value >= difficulty.
func MeetsDifficulty(value, difficulty int) bool {
	return value >= difficulty
}

// Margin is positive on success and negative on failure.
func Margin(value, difficulty int) int {
	return value - difficulty
}

// Check resolves in. A crit always succeeds; forced failure beats a crit.
func Check(in Input) Result {
	if !in.HasResult {
		return Result{Outcome: OutcomeNone}
	}
	margin := Margin(in.Active, in.Difficulty)
	switch {
	case in.OnesFail:
		return Result{Outcome: OutcomeFailure, Margin: margin}
	case in.CritValue > 0 && in.Active >= in.CritValue:
		return Result{Outcome: OutcomeCritical, Margin: margin}
	case MeetsDifficulty(in.Active, in.Difficulty):
		return Result{Outcome: OutcomeSuccess, Margin: margin}
	default:
		return Result{Outcome: OutcomeFailure, Margin: margin}
	}
}
