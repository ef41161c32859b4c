// Package roll implements a command that rolls and evaluates one pool,
// locally for table use or through a sheet server with -addr.
package roll

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/louisbranch/poolsheet/internal/core/dice"
	entrypoint "github.com/louisbranch/poolsheet/internal/platform/cmd"
	apperrors "github.com/louisbranch/poolsheet/internal/platform/errors"
	"github.com/louisbranch/poolsheet/internal/random"
	"github.com/louisbranch/poolsheet/internal/rules/keyword"
	"github.com/louisbranch/poolsheet/internal/rules/roll"
	"github.com/louisbranch/poolsheet/internal/services/sheet/character"
)

// Config holds roll command configuration.
type Config struct {
	Dice    int    `env:"POOLSHEET_ROLL_DICE" envDefault:"2"`
	Keyword string `env:"POOLSHEET_ROLL_KEYWORD" envDefault:"default"`
	Mode    string `env:"POOLSHEET_ROLL_MODE" envDefault:"kh"`
	Locale  string `env:"POOLSHEET_LOCALE" envDefault:"en-US"`
	JSON    bool   `env:"POOLSHEET_ROLL_JSON"`

	// Text, when set, supplies the keyword via keyword.Extract.
	Text string
	// Seed is a decimal int64; empty draws a fresh seed.
	Seed string
	// Values evaluates the given comma-separated faces instead of rolling.
	Values     string
	Burn       string
	Lock       int
	Difficulty int

	// Addr, when set, rolls through a sheet server instead of locally.
	Addr string `env:"POOLSHEET_ROLL_ADDR"`
	// Character owns remote rolls; empty creates a throwaway character.
	Character string `env:"POOLSHEET_ROLL_CHARACTER"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Dice, "dice", cfg.Dice, "number of d6 to roll")
	fs.StringVar(&cfg.Keyword, "keyword", cfg.Keyword, "roll keyword, e.g. brutal or target4")
	fs.StringVar(&cfg.Text, "text", "", "flavor text to extract a #keyword from")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "keep mode: kh or kl")
	fs.StringVar(&cfg.Seed, "seed", "", "int64 seed for a reproducible roll")
	fs.StringVar(&cfg.Values, "values", "", "comma-separated faces to evaluate instead of rolling")
	fs.StringVar(&cfg.Burn, "burn", "", "comma-separated die indices to burn, in order")
	fs.IntVar(&cfg.Lock, "lock", -1, "force the result onto a die index")
	fs.IntVar(&cfg.Difficulty, "difficulty", 0, "target number to check the active die against")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for labels and error messages")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "print the evaluation as JSON")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "sheet server address; empty rolls locally")
	fs.StringVar(&cfg.Character, "character", cfg.Character, "character id for remote rolls")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run rolls or evaluates the configured pool and prints it to out.
// Domain errors are returned with their localized message.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	var (
		result output
		err    error
	)
	if strings.TrimSpace(cfg.Addr) != "" {
		result, err = evaluateRemote(ctx, cfg)
	} else {
		result, err = evaluate(cfg)
	}
	if err != nil {
		var domainErr *apperrors.Error
		if errors.As(err, &domainErr) {
			return errors.New(apperrors.Localize(err, cfg.Locale))
		}
		if msg := apperrors.UserMessage(err); msg != "" {
			return errors.New(msg)
		}
		return err
	}
	if cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return writeText(out, result, character.LabelsFor(cfg.Locale))
}

type dieOutput struct {
	Value       int  `json:"value"`
	Highlight   bool `json:"highlight"`
	Transparent bool `json:"transparent"`
	Burned      bool `json:"burned"`
}

type checkOutput struct {
	Difficulty int    `json:"difficulty"`
	Outcome    string `json:"outcome"`
	Margin     int    `json:"margin"`
}

type output struct {
	Keyword       string       `json:"keyword"`
	Mode          string       `json:"mode"`
	Seed          string       `json:"seed,omitempty"`
	Values        []int        `json:"values"`
	Dice          []dieOutput  `json:"dice"`
	HasResult     bool         `json:"has_result"`
	ResultIndex   *int         `json:"result_index"`
	ActiveValue   int          `json:"active_value"`
	CanKarma      bool         `json:"can_karma"`
	CanConfirm    bool         `json:"can_confirm"`
	HasOnes       bool         `json:"has_ones"`
	RolledAllCrit bool         `json:"rolled_all_crit"`
	CritValue     int          `json:"crit_value"`
	Check         *checkOutput `json:"check,omitempty"`
}

// keywordAndMode resolves the roll keyword, preferring one found in Text.
func keywordAndMode(cfg Config) (string, roll.Mode, error) {
	kw := strings.TrimSpace(cfg.Keyword)
	if extracted, ok := keyword.Extract(cfg.Text); ok {
		kw = extracted
	}
	if kw == "" {
		kw = string(keyword.Default)
	}
	mode, err := roll.ParseMode(cfg.Mode)
	if err != nil {
		return "", "", err
	}
	return kw, mode, nil
}

func evaluate(cfg Config) (output, error) {
	kw, mode, err := keywordAndMode(cfg)
	if err != nil {
		return output{}, err
	}

	var (
		values []int
		seed   string
	)
	if strings.TrimSpace(cfg.Values) != "" {
		values, err = parseInts("values", cfg.Values)
		if err != nil {
			return output{}, err
		}
		if err := roll.Validate(values); err != nil {
			return output{}, err
		}
	} else {
		requested, err := parseSeed(cfg.Seed)
		if err != nil {
			return output{}, err
		}
		resolved, err := random.ResolveSeed(requested, nil)
		if err != nil {
			return output{}, err
		}
		pool, err := dice.RollPool(dice.Request{Count: cfg.Dice, Seed: resolved})
		if err != nil {
			return output{}, err
		}
		values = pool.Values
		seed = strconv.FormatInt(pool.Seed, 10)
	}

	req := roll.Request{
		Values:        values,
		Keyword:       kw,
		Mode:          mode,
		RolledAllCrit: roll.AllCrit(values, kw),
	}
	if cfg.Lock >= 0 {
		lock := cfg.Lock
		req.Locked = &lock
	}
	if strings.TrimSpace(cfg.Burn) != "" {
		indices, err := parseInts("burn", cfg.Burn)
		if err != nil {
			return output{}, err
		}
		for _, index := range indices {
			if req, err = roll.Burn(req, index); err != nil {
				return output{}, err
			}
		}
	}

	return describe(req, seed, cfg.Difficulty), nil
}

// describe evaluates req into the printed form.
func describe(req roll.Request, seed string, difficulty int) output {
	parsed := roll.Evaluate(req)
	result := output{
		Keyword:       req.Keyword,
		Mode:          string(req.Mode),
		Seed:          seed,
		Values:        req.Values,
		Dice:          make([]dieOutput, len(parsed.Dice)),
		HasResult:     parsed.HasResult,
		ActiveValue:   parsed.ActiveValue,
		CanKarma:      parsed.CanKarma,
		CanConfirm:    parsed.CanConfirm,
		HasOnes:       parsed.HasOnes,
		RolledAllCrit: req.RolledAllCrit,
		CritValue:     parsed.Rule.CritValue,
	}
	for i, die := range parsed.Dice {
		result.Dice[i] = dieOutput{
			Value:       die.Value,
			Highlight:   die.Highlight,
			Transparent: die.Transparent,
			Burned:      i < len(req.Burned) && req.Burned[i],
		}
	}
	if parsed.HasResult {
		index := parsed.ResultIndex
		result.ResultIndex = &index
	}
	if difficulty > 0 {
		outcome := parsed.Check(req.Mode, difficulty)
		result.Check = &checkOutput{
			Difficulty: difficulty,
			Outcome:    string(outcome.Outcome),
			Margin:     outcome.Margin,
		}
	}
	return result
}

// writeText prints one field per line. Highlighted dice are bracketed and
// burned dice are prefixed with x.
func writeText(out io.Writer, result output, labels character.Labels) error {
	faces := make([]string, len(result.Dice))
	for i, die := range result.Dice {
		face := strconv.Itoa(die.Value)
		switch {
		case die.Burned:
			face = "x" + face
		case die.Highlight:
			face = "[" + face + "]"
		}
		faces[i] = face
	}

	var b strings.Builder
	fmt.Fprintf(&b, "keyword: %s (crit %d)\n", result.Keyword, result.CritValue)
	fmt.Fprintf(&b, "mode:    %s\n", labels.Modes[roll.Mode(result.Mode)])
	if result.Seed != "" {
		fmt.Fprintf(&b, "seed:    %s\n", result.Seed)
	}
	fmt.Fprintf(&b, "dice:    %s\n", strings.Join(faces, " "))
	if result.HasResult {
		fmt.Fprintf(&b, "result:  %d (die %d)\n", result.ActiveValue, *result.ResultIndex)
	} else {
		fmt.Fprintf(&b, "result:  %s\n", labels.NoResult)
	}
	var actions []string
	if result.CanKarma {
		actions = append(actions, labels.Karma)
	}
	if result.CanConfirm {
		actions = append(actions, labels.Confirm)
	}
	if len(actions) > 0 {
		fmt.Fprintf(&b, "actions: %s\n", strings.Join(actions, ", "))
	}
	if result.Check != nil {
		fmt.Fprintf(&b, "check:   %s vs %d (%+d)\n", result.Check.Outcome, result.Check.Difficulty, result.Check.Margin)
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func parseInts(name, raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", name, part, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseSeed(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.WithMetadata(apperrors.CodeSeedOutOfRange, "seed is not an int64", map[string]string{
			"Seed": raw,
		})
	}
	return &seed, nil
}
