package settings

import (
	"math"

	"github.com/matzehuels/ringgauge/pkg/dataview"
)

// Settings group names.
const (
	ObjectTarget = "target"
	ObjectStroke = "stroke"
	ObjectSymbol = "symbol"
)

// Property names within the settings groups.
const (
	PropMin         = "min"
	PropMid         = "mid"
	PropMax         = "max"
	PropMinColor    = "minColor"
	PropMidColor    = "midColor"
	PropMaxColor    = "maxColor"
	PropWidth       = "width"
	PropSymbol      = "symbol"
	PropSymbolColor = "symbolColor"
)

// Data roles the gauge binds.
const (
	RoleValue   = "value"
	RoleTooltip = "tooltip"
	RoleMin     = "min"
	RoleMid     = "mid"
	RoleMax     = "max"
)

// Targets are the three reference points of the color gradient.
type Targets struct {
	Min      float64       `json:"min"`
	Mid      float64       `json:"mid"`
	Max      float64       `json:"max"`
	MinColor dataview.Fill `json:"minColor"`
	MidColor dataview.Fill `json:"midColor"`
	MaxColor dataview.Fill `json:"maxColor"`
}

// Symbol is the glyph drawn in the middle of the ring.
type Symbol struct {
	Glyph string        `json:"symbol"`
	Color dataview.Fill `json:"symbolColor"`
}

// ViewModel is everything one render needs. It is rebuilt on every update.
type ViewModel struct {
	CurrentValue   float64 `json:"currentValue"`
	Tooltip        string  `json:"tooltip"`
	Targets        Targets `json:"targets"`
	Symbol         Symbol  `json:"symbol"`
	StrokeFraction float64 `json:"stroke"`
}

// Resolve builds the view-model for dv. A nil dv yields the defaults.
func Resolve(dv *dataview.DataView, d Defaults) ViewModel {
	vm := d.ViewModel()

	acc := metadataAccessor(dv)
	if acc == nil {
		vm.StrokeFraction = clampUnit(vm.StrokeFraction, d.StrokeWidth)
		return vm
	}

	vm.Targets.Min = roleNumber(dv, RoleMin, dataview.Number(acc, ObjectTarget, PropMin, d.Min))
	vm.Targets.Mid = roleNumber(dv, RoleMid, dataview.Number(acc, ObjectTarget, PropMid, d.Mid))
	vm.Targets.Max = roleNumber(dv, RoleMax, dataview.Number(acc, ObjectTarget, PropMax, d.Max))
	vm.Targets.MinColor = dataview.FillValue(acc, ObjectTarget, PropMinColor, vm.Targets.MinColor)
	vm.Targets.MidColor = dataview.FillValue(acc, ObjectTarget, PropMidColor, vm.Targets.MidColor)
	vm.Targets.MaxColor = dataview.FillValue(acc, ObjectTarget, PropMaxColor, vm.Targets.MaxColor)

	vm.CurrentValue = roleNumber(dv, RoleValue, d.Value)
	vm.Tooltip = roleText(dv, RoleTooltip, defaultTooltip(dv, d.Value))

	vm.Symbol.Glyph = dataview.Text(acc, ObjectSymbol, PropSymbol, vm.Symbol.Glyph)
	vm.Symbol.Color = dataview.FillValue(acc, ObjectSymbol, PropSymbolColor, vm.Symbol.Color)

	vm.StrokeFraction = clampUnit(dataview.Number(acc, ObjectStroke, PropWidth, d.StrokeWidth), d.StrokeWidth)
	return vm
}

// metadataAccessor picks the static configuration source: objects when the
// host sent any, otherwise columns, otherwise nothing.
func metadataAccessor(dv *dataview.DataView) dataview.Accessor {
	if dv == nil || dv.Metadata == nil {
		return nil
	}
	switch {
	case dv.Metadata.Objects != nil:
		return dv.Metadata.Objects
	case dv.Metadata.Columns != nil:
		return dataview.Columns(dv.Metadata.Columns)
	}
	return nil
}

func roleNumber(dv *dataview.DataView, role string, def float64) float64 {
	v, ok := dv.Role(role)
	if !ok {
		return def
	}
	if n, ok := dataview.AsNumber(v); ok {
		return n
	}
	return def
}

func roleText(dv *dataview.DataView, role string, def string) string {
	if v, ok := dv.Role(role); ok {
		return dataview.Stringify(v)
	}
	return def
}

// defaultTooltip is the raw value-role binding as text, or the default value.
func defaultTooltip(dv *dataview.DataView, def float64) string {
	if v, ok := dv.Role(RoleValue); ok {
		return dataview.Stringify(v)
	}
	return dataview.FormatNumber(def)
}

// clampUnit clamps v into [0,1]. NaN is replaced by def, itself clamped.
func clampUnit(v, def float64) float64 {
	if math.IsNaN(v) {
		if math.IsNaN(def) {
			return 0
		}
		v = def
	}
	return max(0, min(1, v))
}
