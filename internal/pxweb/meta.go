// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package pxweb

// Meta is the classic PxWeb GET metadata payload: a table title plus one
// entry per dimension in the variables array.
type Meta struct {
	Title     string     `json:"title"`
	Variables []Variable `json:"variables"`
}

// Variable describes one table dimension and its selectable values.
type Variable struct {
	Code       string   `json:"code"`
	Text       string   `json:"text"`
	Values     []string `json:"values"`
	ValueTexts []string `json:"valueTexts"`
	Time       bool     `json:"time"`
}

// ValuePair couples a selectable value code with its display text.
type ValuePair struct {
	Code string
	Text string
}

// VariablePredicate matches a dimension by its display text, code, or full definition.
type VariablePredicate func(text, code string, v Variable) bool

// FindVariable returns the first dimension matching the predicate, or nil.
func (m *Meta) FindVariable(predicate VariablePredicate) *Variable {
	for i, v := range m.Variables {
		if predicate(v.Text, v.Code, v) {
			return &m.Variables[i]
		}
	}

	return nil
}

// FindVariableCode returns the code of the first dimension matching the
// predicate, or the empty string.
func (m *Meta) FindVariableCode(predicate VariablePredicate) string {
	if v := m.FindVariable(predicate); v != nil {
		return v.Code
	}

	return ""
}

// Variable returns the dimension with the given code, or nil.
func (m *Meta) Variable(code string) *Variable {
	for i, v := range m.Variables {
		if v.Code == code {
			return &m.Variables[i]
		}
	}

	return nil
}

// ValuePairs returns the (code, text) pairs of the dimension with the given
// code. Some PxWeb instances return missing or mismatched valueTexts; in that
// case the codes double as texts.
func (m *Meta) ValuePairs(code string) []ValuePair {
	v := m.Variable(code)
	if v == nil {
		return nil
	}

	texts := v.ValueTexts
	if len(texts) != len(v.Values) {
		texts = v.Values
	}

	pairs := make([]ValuePair, 0, len(v.Values))
	for i, value := range v.Values {
		pairs = append(pairs, ValuePair{Code: value, Text: texts[i]})
	}

	return pairs
}

// TimeCodes returns the time codes of the given dimension in chronological
// order. Many PxWeb tables list time newest first; dimensions flagged as time
// are reversed to old->new.
func (m *Meta) TimeCodes(code string) []string {
	v := m.Variable(code)
	if v == nil {
		return nil
	}

	codes := make([]string, len(v.Values))
	copy(codes, v.Values)
	if v.Time {
		for i, j := 0, len(codes)-1; i < j; i, j = i+1, j-1 {
			codes[i], codes[j] = codes[j], codes[i]
		}
	}

	return codes
}
