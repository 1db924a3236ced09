// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package pxweb

import (
	"strconv"
	"strings"
)

// placeholders are the markers PxWeb uses for missing or confidential cells.
var placeholders = map[string]struct{}{
	"":    {},
	".":   {},
	"..":  {},
	"...": {},
	"-":   {},
}

// CoerceNumber converts a raw cube cell into a number, returning nil for
// missing values and placeholder markers. String cells are cleaned of
// non-breaking spaces and thousands separators before parsing.
func CoerceNumber(value any) *float64 {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		return &v
	case int:
		number := float64(v)
		return &number
	case string:
		s := strings.TrimSpace(v)
		if _, ok := placeholders[s]; ok {
			return nil
		}

		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, ",", "")
		number, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &number
	default:
		return nil
	}
}
