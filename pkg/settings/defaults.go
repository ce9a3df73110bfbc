package settings

import (
	"math"

	"github.com/matzehuels/ringgauge/pkg/dataview"
	"github.com/matzehuels/ringgauge/pkg/errors"
)

// Built-in defaults.
const (
	DefaultMin         = 0.0
	DefaultMid         = 0.5
	DefaultMax         = 1.0
	DefaultMinColor    = "#fd625e"
	DefaultMidColor    = "#f2c80f"
	DefaultMaxColor    = "#01b8aa"
	DefaultSymbol      = "?"
	DefaultSymbolColor = "#000000"
	DefaultStrokeWidth = 0.2
	DefaultValue       = 0.5
)

// Defaults are the values used when neither the data nor the host
// configuration supplies a field. They can be overridden from the config
// file's [defaults] table.
type Defaults struct {
	Min         float64 `toml:"min" json:"min"`
	Mid         float64 `toml:"mid" json:"mid"`
	Max         float64 `toml:"max" json:"max"`
	MinColor    string  `toml:"min_color" json:"min_color"`
	MidColor    string  `toml:"mid_color" json:"mid_color"`
	MaxColor    string  `toml:"max_color" json:"max_color"`
	Symbol      string  `toml:"symbol" json:"symbol"`
	SymbolColor string  `toml:"symbol_color" json:"symbol_color"`
	StrokeWidth float64 `toml:"stroke_width" json:"stroke_width"`
	Value       float64 `toml:"value" json:"value"`
}

// Builtin returns the hard-coded defaults.
func Builtin() Defaults {
	return Defaults{
		Min:         DefaultMin,
		Mid:         DefaultMid,
		Max:         DefaultMax,
		MinColor:    DefaultMinColor,
		MidColor:    DefaultMidColor,
		MaxColor:    DefaultMaxColor,
		Symbol:      DefaultSymbol,
		SymbolColor: DefaultSymbolColor,
		StrokeWidth: DefaultStrokeWidth,
		Value:       DefaultValue,
	}
}

// ViewModel returns the view-model made of defaults only.
// The stroke fraction is not clamped here; [Resolve] does that.
func (d Defaults) ViewModel() ViewModel {
	return ViewModel{
		CurrentValue: d.Value,
		Tooltip:      dataview.FormatNumber(d.Value),
		Targets: Targets{
			Min:      d.Min,
			Mid:      d.Mid,
			Max:      d.Max,
			MinColor: dataview.SolidFill(d.MinColor),
			MidColor: dataview.SolidFill(d.MidColor),
			MaxColor: dataview.SolidFill(d.MaxColor),
		},
		Symbol: Symbol{
			Glyph: d.Symbol,
			Color: dataview.SolidFill(d.SymbolColor),
		},
		StrokeFraction: d.StrokeWidth,
	}
}

// Validate checks that every color is a hex color and that the numeric
// fields are finite. Target ordering is not checked.
func (d Defaults) Validate() error {
	colors := []struct{ field, value string }{
		{"min_color", d.MinColor},
		{"mid_color", d.MidColor},
		{"max_color", d.MaxColor},
		{"symbol_color", d.SymbolColor},
	}
	for _, c := range colors {
		if err := errors.ValidateHexColor(c.field, c.value); err != nil {
			return err
		}
	}
	nums := []struct {
		field string
		value float64
	}{
		{"min", d.Min}, {"mid", d.Mid}, {"max", d.Max},
		{"stroke_width", d.StrokeWidth}, {"value", d.Value},
	}
	for _, n := range nums {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: must be a finite number", n.field)
		}
	}
	return nil
}
