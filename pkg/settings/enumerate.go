package settings

// Instance describes one editable settings object for the host's
// property pane.
type Instance struct {
	ObjectName string         `json:"objectName"`
	Properties map[string]any `json:"properties"`
	Selector   any            `json:"selector"`
}

// propertyOrder lists each group's properties in display order.
var propertyOrder = map[string][]string{
	ObjectTarget: {PropMin, PropMinColor, PropMid, PropMidColor, PropMax, PropMaxColor},
	ObjectStroke: {PropWidth},
	ObjectSymbol: {PropSymbol, PropSymbolColor},
}

// ObjectNames returns the settings groups in declaration order.
func ObjectNames() []string {
	return []string{ObjectTarget, ObjectStroke, ObjectSymbol}
}

// PropertyNames returns the properties of a settings group in display order,
// or nil for an unknown group.
func PropertyNames(objectName string) []string {
	return propertyOrder[objectName]
}

// Enumerate returns the current values of one settings group, verbatim.
// Unknown group names yield an empty, non-nil result.
func Enumerate(vm ViewModel, objectName string) []Instance {
	var props map[string]any

	switch objectName {
	case ObjectTarget:
		props = map[string]any{
			PropMin:      vm.Targets.Min,
			PropMinColor: vm.Targets.MinColor,
			PropMid:      vm.Targets.Mid,
			PropMidColor: vm.Targets.MidColor,
			PropMax:      vm.Targets.Max,
			PropMaxColor: vm.Targets.MaxColor,
		}
	case ObjectStroke:
		props = map[string]any{
			PropWidth: vm.StrokeFraction,
		}
	case ObjectSymbol:
		props = map[string]any{
			PropSymbol:      vm.Symbol.Glyph,
			PropSymbolColor: vm.Symbol.Color,
		}
	default:
		return []Instance{}
	}

	return []Instance{{ObjectName: objectName, Properties: props}}
}
