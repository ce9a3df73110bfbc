package dataview

// Accessor looks up a named property of a named settings object.
type Accessor interface {
	Lookup(object, property string) (any, bool)
}

// AccessorFunc adapts a plain function to [Accessor].
type AccessorFunc func(object, property string) (any, bool)

// Lookup calls f.
func (f AccessorFunc) Lookup(object, property string) (any, bool) { return f(object, property) }

// Lookup returns objects[object][property].
func (o Objects) Lookup(object, property string) (any, bool) {
	props, ok := o[object]
	if !ok || props == nil {
		return nil, false
	}
	v, ok := props[property]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Columns is an [Accessor] over column descriptors: the object name selects a
// column by display name (or query name) and the property is read from that
// column's properties.
type Columns []Column

// Lookup returns the property of the first column named object that has it.
func (cs Columns) Lookup(object, property string) (any, bool) {
	for _, c := range cs {
		if c.DisplayName != object && c.QueryName != object {
			continue
		}
		if v, ok := c.Properties[property]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Number looks up a numeric property, returning def when it is absent or
// not a number.
func Number(a Accessor, object, property string, def float64) float64 {
	if a == nil {
		return def
	}
	v, ok := a.Lookup(object, property)
	if !ok {
		return def
	}
	if f, ok := AsNumber(v); ok {
		return f
	}
	return def
}

// Text looks up a string property, returning def when it is absent or not a
// string.
func Text(a Accessor, object, property string, def string) string {
	if a == nil {
		return def
	}
	v, ok := a.Lookup(object, property)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// FillValue looks up a fill property, returning def when it is absent or not
// shaped like a fill.
func FillValue(a Accessor, object, property string, def Fill) Fill {
	if a == nil {
		return def
	}
	v, ok := a.Lookup(object, property)
	if !ok {
		return def
	}
	if f, ok := AsFill(v); ok {
		return f
	}
	return def
}
