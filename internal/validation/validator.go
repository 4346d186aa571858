// Package validation checks field maps against per-entity rule tables.
//
// Each field is evaluated on its own: presence first (a failed required
// check ends evaluation of that field), then the type check, then bounds and
// reference checks. Errors accumulate across fields. The validated output
// carries every field of the rule table, coerced to its declared type, and
// nothing else.
package validation

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// ReferenceChecker resolves foreign-key-exists constraints.
type ReferenceChecker interface {
	Exists(ctx context.Context, table string, id int64) (bool, error)
}

// Reference names a field whose referenced row was not found.
type Reference struct {
	Field string
	Table string
}

// Errors is the structured result of a failed validation.
type Errors struct {
	Fields     map[string][]string
	References []Reference
}

func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *Errors) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Has reports whether field failed.
func (e *Errors) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

type Validator struct {
	refs   ReferenceChecker
	checks *validator.Validate
}

// New creates a Validator. refs may be nil when no rule uses Exists.
func New(refs ReferenceChecker) *Validator {
	return &Validator{refs: refs, checks: validator.New()}
}

// Validate returns the validated field map, or *Errors when any field fails.
// Any other error comes from the reference lookup.
func (v *Validator) Validate(ctx context.Context, rules Rules, input map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(rules))
	verr := &Errors{}

	for _, rule := range rules {
		raw, present := lookup(input, rule.Name)
		if !present {
			if rule.has(ckRequired) {
				verr.add(rule.Name, fmt.Sprintf("The %s field is required.", rule.Name))
			}
			out[rule.Name] = nil
			continue
		}

		val, err := coerce(rule.valueKind(), raw)
		if err != nil {
			verr.add(rule.Name, fmt.Sprintf("The %s field must be %s.", rule.Name, article(rule.valueKind())))
			continue
		}

		ok, err := v.checkBounds(ctx, rule, val, verr)
		if err != nil {
			return nil, err
		}
		if ok {
			out[rule.Name] = val
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return out, nil
}

func (v *Validator) checkBounds(ctx context.Context, rule FieldRule, val any, verr *Errors) (bool, error) {
	ok := true
	for _, c := range rule.Constraints {
		switch c.kind {
		case ckMaxLen:
			if s, isStr := val.(string); isStr && utf8.RuneCountInString(s) > c.n {
				verr.add(rule.Name, fmt.Sprintf("The %s field must not be greater than %d characters.", rule.Name, c.n))
				ok = false
			}
		case ckMinLen:
			if s, isStr := val.(string); isStr && utf8.RuneCountInString(s) < c.n {
				verr.add(rule.Name, fmt.Sprintf("The %s field must be at least %d characters.", rule.Name, c.n))
				ok = false
			}
		case ckRange:
			f := cast.ToFloat64(val)
			if f < c.min || f > c.max {
				verr.add(rule.Name, fmt.Sprintf("The %s field must be between %s and %s.", rule.Name, formatBound(c.min), formatBound(c.max)))
				ok = false
			}
		case ckMin:
			if cast.ToFloat64(val) < c.min {
				verr.add(rule.Name, fmt.Sprintf("The %s field must be at least %s.", rule.Name, formatBound(c.min)))
				ok = false
			}
		case ckEmail:
			if err := v.checks.Var(val, "email"); err != nil {
				verr.add(rule.Name, fmt.Sprintf("The %s field must be a valid email address.", rule.Name))
				ok = false
			}
		case ckExists:
			if v.refs == nil {
				return false, fmt.Errorf("no reference checker for %s.%s", c.table, rule.Name)
			}
			found, err := v.refs.Exists(ctx, c.table, cast.ToInt64(val))
			if err != nil {
				return false, err
			}
			if !found {
				verr.add(rule.Name, fmt.Sprintf("The selected %s was not found in %s.", rule.Name, c.table))
				verr.References = append(verr.References, Reference{Field: rule.Name, Table: c.table})
				ok = false
			}
		}
	}
	return ok, nil
}

// lookup treats missing keys, nil and blank strings as absent.
func lookup(input map[string]any, name string) (any, bool) {
	raw, ok := input[name]
	if !ok || raw == nil {
		return nil, false
	}
	if s, isStr := raw.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return raw, true
}

func coerce(kind Kind, raw any) (any, error) {
	switch kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("not a string: %T", raw)
		}
		return strings.TrimSpace(s), nil
	case KindNumber:
		if _, isBool := raw.(bool); isBool {
			return nil, fmt.Errorf("bool is not a number")
		}
		var f float64
		var err error
		if s, isStr := raw.(string); isStr {
			f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		} else {
			f, err = cast.ToFloat64E(raw)
		}
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("not a number: %v", raw)
		}
		return f, nil
	case KindInteger:
		switch x := raw.(type) {
		case bool:
			return nil, fmt.Errorf("bool is not an integer")
		case string:
			return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		case float64:
			return floatToInt(x)
		case float32:
			return floatToInt(float64(x))
		}
		return cast.ToInt64E(raw)
	case KindBoolean:
		return cast.ToBoolE(raw)
	default:
		return raw, nil
	}
}

// floatToInt accepts whole numbers inside the int64 range.
func floatToInt(x float64) (int64, error) {
	if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
		return 0, fmt.Errorf("not an integer: %v", x)
	}
	return int64(x), nil
}

func article(k Kind) string {
	switch k {
	case KindInteger:
		return "an integer"
	case KindString:
		return "a string"
	case KindNumber:
		return "a number"
	case KindBoolean:
		return "true or false"
	default:
		return "valid"
	}
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
