package dataview

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/ringgauge/pkg/errors"
)

// Viewport is the drawing area the host allocates to the visual, in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// UpdateOptions is the payload of a host update call.
type UpdateOptions struct {
	Viewport  *Viewport  `json:"viewport,omitempty"`
	DataViews []DataView `json:"dataViews,omitempty"`
}

// DataView is one tabular view of the bound data.
type DataView struct {
	Metadata    *Metadata    `json:"metadata,omitempty"`
	Categorical *Categorical `json:"categorical,omitempty"`
}

// Metadata holds the static configuration attached to a data view.
// A nil Objects map and a non-nil empty one are different: the former means
// the host sent no objects at all.
type Metadata struct {
	Objects Objects  `json:"objects,omitempty"`
	Columns []Column `json:"columns,omitempty"`
}

// Object is a property bag keyed by property name.
type Object map[string]any

// Objects maps object names (settings groups) to their property bags.
type Objects map[string]Object

// Column describes one column of the data view.
type Column struct {
	DisplayName string          `json:"displayName"`
	QueryName   string          `json:"queryName,omitempty"`
	Roles       map[string]bool `json:"roles,omitempty"`
	Properties  map[string]any  `json:"properties,omitempty"`
}

// HasRole reports whether the column is bound to role. Only presence of the
// key matters, not its value.
func (c Column) HasRole(role string) bool {
	_, ok := c.Roles[role]
	return ok
}

// Categorical holds the value columns of a categorical data view.
type Categorical struct {
	Values []ValueColumn `json:"values,omitempty"`
}

// ValueColumn is a measure column together with its source descriptor.
type ValueColumn struct {
	Source Column `json:"source"`
	Values []any  `json:"values"`
}

// First returns the first data view, or nil when there is none.
func (o *UpdateOptions) First() *DataView {
	if o == nil || len(o.DataViews) == 0 {
		return nil
	}
	return &o.DataViews[0]
}

// Role returns the first value of the first value column bound to role.
// Columns with no values, or whose first value is null, are skipped.
func (dv *DataView) Role(role string) (any, bool) {
	if dv == nil || dv.Categorical == nil {
		return nil, false
	}
	for _, col := range dv.Categorical.Values {
		if !col.Source.HasRole(role) || len(col.Values) == 0 {
			continue
		}
		if v := col.Values[0]; v != nil {
			return v, true
		}
	}
	return nil, false
}

// Decode reads update options from JSON.
func Decode(r io.Reader) (*UpdateOptions, error) {
	var opts UpdateOptions
	if err := json.NewDecoder(r).Decode(&opts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode update options")
	}
	return &opts, nil
}
