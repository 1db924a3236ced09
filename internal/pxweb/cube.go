// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package pxweb

import (
	"fmt"
	"strings"
)

// Cube is a decoded PxWeb data response. POST responses arrive in one of two
// shapes: a flattened JSON-stat cube (id/size/dimension/value) or classic
// rows keyed by dimension value codes (columns/data). Both sets of fields are
// captured here and the accessors pick whichever one is populated.
type Cube struct {
	// JSON-stat shape.
	ID        []string             `json:"id"`
	Size      []int                `json:"size"`
	Dimension map[string]Dimension `json:"dimension"`
	Value     []any                `json:"value"`

	// Classic rows shape.
	Columns []Column `json:"columns"`
	Data    []Row    `json:"data"`
}

// Dimension is the JSON-stat dimension descriptor.
type Dimension struct {
	Category Category `json:"category"`
}

// Category maps value codes to their ordinal in the flattened value array.
type Category struct {
	Index map[string]int    `json:"index"`
	Label map[string]string `json:"label"`
}

// Column describes one column of a classic rows response. Type "c" marks the
// content column, everything else is a dimension.
type Column struct {
	Code string `json:"code"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// Row is one record of a classic rows response. Depending on the PxWeb
// version the cell arrives either as a single-element values array or as a
// scalar value field.
type Row struct {
	Key    []string `json:"key"`
	Values []any    `json:"values"`
	Value  any      `json:"value"`
}

// Coordinates assigns a value code to each dimension code of interest.
// Dimensions left unassigned resolve to their first category.
type Coordinates map[string]string

// IsJSONStat reports whether the cube carries the JSON-stat shape.
func (c *Cube) IsJSONStat() bool {
	return len(c.Value) > 0 && len(c.Dimension) > 0
}

// strides computes the multiplier of each dimension ordinal when indexing the
// flattened value array.
func (c *Cube) strides() []int {
	strides := make([]int, len(c.Size))
	for i := range strides {
		strides[i] = 1
	}
	for i := len(c.Size) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * c.Size[i+1]
	}

	return strides
}

// At resolves the given coordinates against the JSON-stat value array and
// returns the coerced number found there, or nil for placeholder cells.
func (c *Cube) At(coords Coordinates) (*float64, error) {
	if !c.IsJSONStat() {
		return nil, fmt.Errorf("%w: not a JSON-stat cube", ErrUnexpectedFormat)
	}

	strides := c.strides()
	position := 0
	for i, dimCode := range c.ID {
		valueCode, ok := coords[dimCode]
		if !ok {
			continue // unassigned dimensions stay at ordinal 0
		}

		dimension, ok := c.Dimension[dimCode]
		if !ok {
			return nil, fmt.Errorf("%w: unknown dimension %q", ErrUnexpectedFormat, dimCode)
		}
		ordinal, ok := dimension.Category.Index[valueCode]
		if !ok {
			return nil, fmt.Errorf("%w: unknown value %q for dimension %q", ErrUnexpectedFormat, valueCode, dimCode)
		}

		position += ordinal * strides[i]
	}

	if position < 0 || position >= len(c.Value) {
		return nil, fmt.Errorf("%w: value index %d out of range", ErrUnexpectedFormat, position)
	}

	return CoerceNumber(c.Value[position]), nil
}

// Table indexes a classic rows response by its dimension key tuple. The
// dimension codes come from the columns metadata when present, otherwise
// dimOrder is used. It reports false when the cube carries no usable rows.
func (c *Cube) Table(dimOrder []string) (*Table, bool) {
	if len(c.Data) == 0 {
		return nil, false
	}

	var dimCodes []string
	switch {
	case len(c.Columns) > 0:
		for _, column := range c.Columns {
			if column.Type != "c" {
				dimCodes = append(dimCodes, column.Code)
			}
		}
	case len(dimOrder) > 0:
		dimCodes = dimOrder
	default:
		return nil, false
	}

	values := make(map[string]*float64, len(c.Data))
	for _, row := range c.Data {
		if len(row.Key) != len(dimCodes) {
			continue
		}

		var cell any
		switch {
		case len(row.Values) > 0:
			cell = row.Values[0]
		default:
			cell = row.Value
		}

		values[tableKey(row.Key)] = CoerceNumber(cell)
	}

	return &Table{dimCodes: dimCodes, values: values}, true
}

// Table is a lookup over classic rows keyed by dimension value codes.
type Table struct {
	dimCodes []string
	values   map[string]*float64
}

// Value returns the cell addressed by the given dimension assignments. It
// returns nil when a dimension is missing from the assignments or no row
// matches the resulting key.
func (t *Table) Value(assignments map[string]string) *float64 {
	key := make([]string, len(t.dimCodes))
	for i, dimCode := range t.dimCodes {
		value, ok := assignments[dimCode]
		if !ok {
			return nil
		}
		key[i] = value
	}

	return t.values[tableKey(key)]
}

// tableKey joins a key tuple with a separator that cannot appear in PxWeb
// value codes.
func tableKey(key []string) string {
	return strings.Join(key, "\x1f")
}
