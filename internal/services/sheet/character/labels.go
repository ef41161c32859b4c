package character

import (
	"github.com/louisbranch/poolsheet/internal/platform/i18n/catalog"
	"github.com/louisbranch/poolsheet/internal/rules/resource"
	"github.com/louisbranch/poolsheet/internal/rules/roll"
)

// Labels are the localized captions a sheet renders next to its controls.
type Labels struct {
	Locale   string
	Roll     string
	Burn     string
	Karma    string
	Confirm  string
	Reset    string
	Restore  string
	NoResult string
	Modes    map[roll.Mode]string
}

// ReplenishLabel returns the caption for a replenish mode.
func (l Labels) ReplenishLabel(logic resource.Logic) string {
	switch logic {
	case resource.LogicReset:
		return l.Reset
	case resource.LogicRestore:
		return l.Restore
	default:
		return ""
	}
}

// LabelsFor returns sheet labels for the closest supported locale.
func LabelsFor(locale string) Labels {
	bundle := catalog.Default()
	p := bundle.Printer(locale)
	text := func(key string) string { return p.Sprintf(key) }
	return Labels{
		Locale:   bundle.Match(locale),
		Roll:     text("sheet.roll"),
		Burn:     text("sheet.burn"),
		Karma:    text("sheet.karma"),
		Confirm:  text("sheet.confirm"),
		Reset:    text("sheet.replenish.reset"),
		Restore:  text("sheet.replenish.restore"),
		NoResult: text("sheet.result.none"),
		Modes: map[roll.Mode]string{
			roll.KeepHighest: text("sheet.mode.kh"),
			roll.KeepLowest:  text("sheet.mode.kl"),
		},
	}
}

// Labels returns sheet labels for locale.
func (s *Service) Labels(locale string) Labels {
	return LabelsFor(locale)
}
