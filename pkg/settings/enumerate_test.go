package settings

import (
	"reflect"
	"testing"

	"github.com/matzehuels/ringgauge/pkg/dataview"
)

func TestEnumerate(t *testing.T) {
	vm := Builtin().ViewModel()
	vm.Targets.Max = 42
	vm.StrokeFraction = 0.3

	tests := []struct {
		object string
		want   map[string]any
	}{
		{ObjectTarget, map[string]any{
			PropMin: 0.0, PropMinColor: dataview.SolidFill(DefaultMinColor),
			PropMid: 0.5, PropMidColor: dataview.SolidFill(DefaultMidColor),
			PropMax: 42.0, PropMaxColor: dataview.SolidFill(DefaultMaxColor),
		}},
		{ObjectStroke, map[string]any{PropWidth: 0.3}},
		{ObjectSymbol, map[string]any{PropSymbol: "?", PropSymbolColor: dataview.SolidFill(DefaultSymbolColor)}},
	}
	for _, tt := range tests {
		t.Run(tt.object, func(t *testing.T) {
			got := Enumerate(vm, tt.object)
			if len(got) != 1 {
				t.Fatalf("len = %d, want 1", len(got))
			}
			if got[0].ObjectName != tt.object {
				t.Errorf("objectName = %q", got[0].ObjectName)
			}
			if got[0].Selector != nil {
				t.Errorf("selector = %v, want nil", got[0].Selector)
			}
			if !reflect.DeepEqual(got[0].Properties, tt.want) {
				t.Errorf("properties = %v, want %v", got[0].Properties, tt.want)
			}
			if len(PropertyNames(tt.object)) != len(tt.want) {
				t.Errorf("PropertyNames(%q) does not cover every property", tt.object)
			}
		})
	}
}

func TestEnumerateUnknown(t *testing.T) {
	got := Enumerate(Builtin().ViewModel(), "legend")
	if got == nil || len(got) != 0 {
		t.Errorf("unknown group should yield an empty result, got %v", got)
	}
	if PropertyNames("legend") != nil {
		t.Error("unknown group should have no property names")
	}
}

func TestObjectNames(t *testing.T) {
	want := []string{"target", "stroke", "symbol"}
	if got := ObjectNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ObjectNames() = %v, want %v", got, want)
	}
}
