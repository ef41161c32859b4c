package roll

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"strings"
	"testing"

	"github.com/louisbranch/poolsheet/internal/core/dice"
)

func runRoll(t *testing.T, args ...string) (string, error) {
	t.Helper()
	fs := flag.NewFlagSet("roll", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	var out bytes.Buffer
	err = Run(context.Background(), cfg, &out)
	return out.String(), err
}

func decode(t *testing.T, raw string) output {
	t.Helper()
	var got output
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, raw)
	}
	return got
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("roll", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Dice != 2 || cfg.Keyword != "default" || cfg.Mode != "kh" {
		t.Fatalf("cfg = %+v, want 2 dice default kh", cfg)
	}
	if cfg.Lock != -1 {
		t.Fatalf("lock = %d, want -1", cfg.Lock)
	}
}

func TestRunTextOutput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "magick one fails",
			args: []string{"-values", "6,3,1", "-keyword", "magick"},
			want: []string{"keyword: magick (crit 6)", "mode:    Keep highest", "dice:    6 3 [1]", "result:  6 (die 0)"},
		},
		{
			name: "burned die",
			args: []string{"-values", "1,5", "-burn", "1"},
			want: []string{"dice:    [1] x5", "result:  1 (die 0)"},
		},
		{
			name: "locked die",
			args: []string{"-values", "6,2", "-lock", "1"},
			want: []string{"dice:    6 [2]", "result:  2 (die 1)", "actions: Karma"},
		},
		{
			name: "fully burned",
			args: []string{"-values", "4", "-burn", "0"},
			want: []string{"dice:    x4", "result:  No result"},
		},
		{
			name: "keep lowest in pt-BR",
			args: []string{"-values", "3,5", "-mode", "kl", "-locale", "pt-BR"},
			want: []string{"mode:    Manter menor", "result:  3 (die 0)", "actions: Carma"},
		},
		{
			name: "difficulty",
			args: []string{"-values", "2,4", "-difficulty", "5"},
			want: []string{"check:   failure vs 5 (-1)"},
		},
		{
			name: "keyword from text",
			args: []string{"-values", "5,2", "-text", "swing hard #Brutal"},
			want: []string{"keyword: brutal (crit 5)", "actions: Confirm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runRoll(t, tt.args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, line := range tt.want {
				if !strings.Contains(got, line+"\n") {
					t.Fatalf("output missing %q:\n%s", line, got)
				}
			}
		})
	}
}

func TestRunJSONOutput(t *testing.T) {
	raw, err := runRoll(t, "-values", "2,4", "-difficulty", "4", "-json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := decode(t, raw)
	if got.ResultIndex == nil || *got.ResultIndex != 1 || got.ActiveValue != 4 {
		t.Fatalf("result = %v (%d), want index 1 value 4", got.ResultIndex, got.ActiveValue)
	}
	if !got.CanKarma || got.CanConfirm {
		t.Fatalf("karma/confirm = %v/%v, want true/false", got.CanKarma, got.CanConfirm)
	}
	if got.Check == nil || got.Check.Outcome != "success" || got.Check.Margin != 0 {
		t.Fatalf("check = %+v, want success with margin 0", got.Check)
	}
	if got.Seed != "" {
		t.Fatalf("seed = %q, want empty for supplied values", got.Seed)
	}
}

func TestRunSeededRollIsReproducible(t *testing.T) {
	raw, err := runRoll(t, "-dice", "3", "-seed", "42", "-json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := decode(t, raw)
	want, err := dice.RollPool(dice.Request{Count: 3, Seed: 42})
	if err != nil {
		t.Fatalf("roll pool: %v", err)
	}
	if len(got.Values) != 3 {
		t.Fatalf("values = %v, want 3 dice", got.Values)
	}
	for i := range want.Values {
		if got.Values[i] != want.Values[i] {
			t.Fatalf("values = %v, want %v", got.Values, want.Values)
		}
	}
	if got.Seed != "42" {
		t.Fatalf("seed = %q, want 42", got.Seed)
	}
}

func TestRunAllCritBroadcast(t *testing.T) {
	raw, err := runRoll(t, "-values", "6,6", "-json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := decode(t, raw)
	if !got.RolledAllCrit {
		t.Fatal("expected rolled_all_crit")
	}
	for i, die := range got.Dice {
		if !die.Highlight {
			t.Fatalf("die %d not highlighted in all-crit pool", i)
		}
	}
}

func TestRunLocalizesDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad mode", []string{"-mode", "zz", "-values", "3"}, "Keep mode zz is not supported."},
		{"bad mode pt-BR", []string{"-mode", "zz", "-values", "3", "-locale", "pt-BR"}, "O modo zz não é suportado."},
		{"burn one", []string{"-values", "1,4", "-burn", "0"}, "Ones cannot be burned for default rolls."},
		{"face out of range", []string{"-values", "7"}, "Die value 7 at position 0 is outside 1-6."},
		{"bad seed", []string{"-seed", "abc"}, "The roll seed is out of range."},
		{"too many dice", []string{"-dice", "21", "-seed", "1"}, "A pool must have between 1 and 20 dice."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoll(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Fatalf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestRunRejectsMalformedList(t *testing.T) {
	_, err := runRoll(t, "-values", "6,x")
	if err == nil || !strings.Contains(err.Error(), "parse values") {
		t.Fatalf("err = %v, want parse values error", err)
	}
}

func TestRunHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, Config{Dice: 1, Mode: "kh"}, nil); err == nil {
		t.Fatal("expected context error")
	}
}
