// Package settings resolves the gauge's view-model from a host data view.
//
// [Resolve] is total: it never fails and never panics, whatever the host
// sends. Each field is looked up in a fixed order and the first hit wins:
//
//  1. the first value of a value column bound to the field's data role
//     (min, mid, max, value, tooltip),
//  2. the named property of the named metadata object,
//  3. the named property of the named metadata column, when the host sent
//     columns but no objects,
//  4. the configured default ([Defaults]).
//
// Role-bound values are only consulted when the data view carries metadata
// objects or metadata columns. Without either, the default view-model is
// returned unchanged.
//
// [Enumerate] answers the host's property-pane requests for the three
// settings groups: "target", "stroke", and "symbol".
package settings
