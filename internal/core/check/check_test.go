package check

import "testing"

func TestMeetsDifficulty(t *testing.T) {
	tests := []struct {
		name       string
		value      int
		difficulty int
		want       bool
	}{
		{"exact match", 4, 4, true},
		{"above difficulty", 5, 4, true},
		{"below difficulty", 3, 4, false},
		{"zero difficulty", 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeetsDifficulty(tt.value, tt.difficulty)
			if got != tt.want {
				t.Errorf("MeetsDifficulty(%d, %d) = %v, want %v", tt.value, tt.difficulty, got, tt.want)
			}
		})
	}
}

func TestMargin(t *testing.T) {
	if got := Margin(6, 4); got != 2 {
		t.Fatalf("Margin = %d, want 2", got)
	}
	if got := Margin(2, 4); got != -2 {
		t.Fatalf("Margin = %d, want -2", got)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		want    Outcome
		margin  int
		success bool
	}{
		{"no result", Input{Difficulty: 4}, OutcomeNone, 0, false},
		{"success", Input{Active: 5, HasResult: true, CritValue: 6, Difficulty: 4}, OutcomeSuccess, 1, true},
		{"failure", Input{Active: 3, HasResult: true, CritValue: 6, Difficulty: 4}, OutcomeFailure, -1, false},
		{"critical below difficulty", Input{Active: 5, HasResult: true, CritValue: 5, Difficulty: 6}, OutcomeCritical, -1, true},
		{"crits disabled", Input{Active: 6, HasResult: true, Difficulty: 4}, OutcomeSuccess, 2, true},
		{"ones fail beats crit", Input{Active: 6, HasResult: true, CritValue: 6, OnesFail: true, Difficulty: 4}, OutcomeFailure, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.in)
			if got.Outcome != tt.want {
				t.Fatalf("Outcome = %q, want %q", got.Outcome, tt.want)
			}
			if got.Margin != tt.margin {
				t.Fatalf("Margin = %d, want %d", got.Margin, tt.margin)
			}
			if got.Success() != tt.success {
				t.Fatalf("Success = %v, want %v", got.Success(), tt.success)
			}
		})
	}
}
