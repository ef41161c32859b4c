// Package keyword resolves roll keywords into the dice rules that govern them.
//
// Resolution layers three records: a hard-coded base, the override registered
// for Default, and the override registered for the requested keyword. Fields
// missing from an override keep the value of the layer below, so every
// keyword, known or not, resolves to a complete Rule.
package keyword

import (
	"regexp"
	"sort"
	"strings"
)

// Keyword names a rule variant.
type Keyword string

const (
	Default      Keyword = "default"
	Magick       Keyword = "magick"
	Miracle      Keyword = "miracle"
	Attack       Keyword = "attack"
	Brutal       Keyword = "brutal"
	FlipToFate   Keyword = "fliptoffate"
	AnythingBut1 Keyword = "anythingbut1"
	Target3      Keyword = "target3"
	Target4      Keyword = "target4"
	Target5      Keyword = "target5"
	Target6      Keyword = "target6"
)

// DialoguePower asks the player to pick a power level before rolling.
const DialoguePower = "power"

// Rule is the resolved behavior of a roll keyword.
type Rule struct {
	AllowKarma    bool
	AllowConfirm  bool
	CritValue     int
	OneAlwaysFail bool
	AllowBurnOnes bool
	RollPower     bool
	RollDialogue  string
}

// override is a partial Rule; nil fields leave the lower layer untouched.
type override struct {
	allowKarma    *bool
	allowConfirm  *bool
	critValue     *int
	oneAlwaysFail *bool
	allowBurnOnes *bool
	rollPower     *bool
	rollDialogue  *string
}

func (o override) apply(rule Rule) Rule {
	if o.allowKarma != nil {
		rule.AllowKarma = *o.allowKarma
	}
	if o.allowConfirm != nil {
		rule.AllowConfirm = *o.allowConfirm
	}
	if o.critValue != nil {
		rule.CritValue = *o.critValue
	}
	if o.oneAlwaysFail != nil {
		rule.OneAlwaysFail = *o.oneAlwaysFail
	}
	if o.allowBurnOnes != nil {
		rule.AllowBurnOnes = *o.allowBurnOnes
	}
	if o.rollPower != nil {
		rule.RollPower = *o.rollPower
	}
	if o.rollDialogue != nil {
		rule.RollDialogue = *o.rollDialogue
	}
	return rule
}

func flag(v bool) *bool     { return &v }
func crit(v int) *int       { return &v }
func text(v string) *string { return &v }

var base = Rule{
	AllowKarma:   true,
	AllowConfirm: true,
	CritValue:    6,
}

// order is the declaration order used when scanning free text.
var order = []Keyword{
	Default, Magick, Miracle, Attack, Brutal, FlipToFate, AnythingBut1,
	Target3, Target4, Target5, Target6,
}

var overrides = map[Keyword]override{
	Default: {critValue: crit(6)},
	Magick: {
		critValue:     crit(6),
		oneAlwaysFail: flag(true),
		rollPower:     flag(true),
		rollDialogue:  text(DialoguePower),
		allowKarma:    flag(false),
		allowConfirm:  flag(false),
	},
	Miracle: {
		critValue:     crit(6),
		oneAlwaysFail: flag(true),
		rollPower:     flag(true),
		rollDialogue:  text(DialoguePower),
		allowKarma:    flag(false),
		allowConfirm:  flag(false),
	},
	Attack:       {critValue: crit(6)},
	Brutal:       {critValue: crit(5)},
	FlipToFate:   {critValue: crit(4), allowKarma: flag(false), allowConfirm: flag(false)},
	AnythingBut1: {critValue: crit(2), allowKarma: flag(false), allowConfirm: flag(false)},
	Target3:      {critValue: crit(3), allowKarma: flag(true), allowConfirm: flag(false)},
	Target4:      {critValue: crit(4), allowKarma: flag(true), allowConfirm: flag(false)},
	Target5:      {critValue: crit(5), allowKarma: flag(true), allowConfirm: flag(false)},
	Target6:      {critValue: crit(6), allowKarma: flag(true), allowConfirm: flag(false)},
}

// Resolve returns the complete rule for keyword. Matching is exact and
// case-sensitive; unknown keywords resolve to the base and Default layers.
func Resolve(keyword string) Rule {
	rule := overrides[Default].apply(base)
	if o, ok := overrides[Keyword(keyword)]; ok {
		rule = o.apply(rule)
	}
	return rule
}

// IsKnown reports whether keyword has a table entry.
func IsKnown(keyword string) bool {
	_, ok := overrides[Keyword(keyword)]
	return ok
}

// Known returns every keyword in the table, sorted.
func Known() []string {
	out := make([]string, 0, len(overrides))
	for k := range overrides {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

var (
	hashToken    = regexp.MustCompile(`#(\w+)`)
	wordPatterns = compileWordPatterns()
)

func compileWordPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(order)-1)
	for _, k := range order {
		if k == Default {
			continue
		}
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(string(k))+`\b`))
	}
	return patterns
}

// Extract finds a keyword in free-form flavor text. A #word token wins;
// otherwise the first known keyword (except Default) appearing as a whole
// word is used. The result is lower-cased.
func Extract(text string) (string, bool) {
	if m := hashToken.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[1]), true
	}
	for _, pattern := range wordPatterns {
		if m := pattern.FindString(text); m != "" {
			return strings.ToLower(m), true
		}
	}
	return "", false
}
