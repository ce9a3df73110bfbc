// Package dataview models the object graph a host application hands to the
// gauge on every update.
//
// The shapes mirror the host embedding contract: an [UpdateOptions] carries a
// viewport and a list of [DataView] values; each data view carries metadata
// (static objects and column descriptors) and categorical value columns bound
// to named data roles.
//
// # Lookups
//
// Configuration is read through the [Accessor] capability: a lookup over an
// (object, property) pair that returns an untyped value and whether it was
// present. [Objects] and [Columns] are the two accessors the host can supply.
// The typed helpers ([Number], [Text], [FillValue]) convert a looked-up value
// and fall back to a caller-supplied default when the value is absent or has
// the wrong shape, so no lookup ever fails.
//
// Role-bound values are read with [DataView.Role], which returns the first
// value of the first value column whose source carries the role.
//
// # Decoding
//
// [Decode] reads the JSON form of [UpdateOptions] (camelCase keys, as the
// host serializes them):
//
//	{
//	  "viewport": {"width": 200, "height": 200},
//	  "dataViews": [{
//	    "metadata": {"objects": {"target": {"min": 0, "max": 100}}},
//	    "categorical": {"values": [{"source": {"roles": {"value": true}}, "values": [42]}]}
//	  }]
//	}
package dataview
