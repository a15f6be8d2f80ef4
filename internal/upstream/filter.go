package upstream

import "fmt"

type FilterForm string

const (
	// FilterExact renders {"field": value}.
	FilterExact FilterForm = "exact"
	// FilterExpression renders {"field": {"$eq": value}}.
	FilterExpression FilterForm = "expression"
)

const opEq = "$eq"

type Filter map[string]any

func Eq(field string, value any, form FilterForm) Filter {
	if form == FilterExpression {
		return Filter{field: map[string]any{opEq: value}}
	}

	return Filter{field: value}
}

// EqString extracts the string operand of an equality predicate on field,
// accepting both the exact and the expression form.
func (f Filter) EqString(field string) (string, bool, error) {
	v, ok := f[field]
	if !ok {
		return "", false, nil
	}

	switch val := v.(type) {
	case string:
		return val, true, nil
	case map[string]any:
		operand, ok := val[opEq]
		if !ok || len(val) != 1 {
			return "", false, fmt.Errorf("unsupported predicate on %q", field)
		}
		s, ok := operand.(string)
		if !ok {
			return "", false, fmt.Errorf("predicate on %q: expected string operand, got %T", field, operand)
		}
		return s, true, nil
	default:
		return "", false, fmt.Errorf("predicate on %q: unsupported value %T", field, v)
	}
}
