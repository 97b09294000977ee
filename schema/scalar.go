package schema

import (
	"math"
	"net/url"
	"strings"
	"time"
)

// StringSchema accepts Go strings.
type StringSchema struct {
	nonEmpty bool
	url      bool
	editor   map[string]any
}

// String accepts any string, including the empty string.
func String() *StringSchema {
	return &StringSchema{}
}

// NonEmpty returns a copy that rejects the empty string.
func (s *StringSchema) NonEmpty() *StringSchema {
	c := s.clone()
	c.nonEmpty = true
	return c
}

// URL returns a copy that requires an absolute URL with a scheme.
func (s *StringSchema) URL() *StringSchema {
	c := s.clone()
	c.url = true
	return c
}

// Editor returns a copy carrying hints for an authoring tool, e.g.
// {"input": "media"}. Hints are never read by validation.
func (s *StringSchema) Editor(hints map[string]any) *StringSchema {
	c := s.clone()
	c.editor = make(map[string]any, len(hints))
	for k, v := range hints {
		c.editor[k] = v
	}
	return c
}

// EditorHints returns a copy of the authoring hints, or nil.
func (s *StringSchema) EditorHints() map[string]any {
	if s.editor == nil {
		return nil
	}
	out := make(map[string]any, len(s.editor))
	for k, v := range s.editor {
		out[k] = v
	}
	return out
}

func (s *StringSchema) clone() *StringSchema {
	c := *s
	return &c
}

func (s *StringSchema) Type() Type { return TypeString }

func (s *StringSchema) Constraint() string {
	switch {
	case s.url:
		return "valid URL required"
	case s.nonEmpty:
		return "non-empty string required"
	default:
		return "string required"
	}
}

func (s *StringSchema) validate(path string, v any, vs *Violations) any {
	str, ok := v.(string)
	if !ok {
		vs.add(path, s.Constraint(), v)
		return nil
	}
	if s.nonEmpty && str == "" {
		vs.add(path, s.Constraint(), v)
		return nil
	}
	if s.url && !isAbsoluteURL(str) {
		vs.add(path, s.Constraint(), v)
		return nil
	}
	return str
}

func (s *StringSchema) check(string, *[]error) {}

func isAbsoluteURL(raw string) bool {
	if strings.TrimSpace(raw) != raw || raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

// NumberSchema accepts any Go integer or finite float.
type NumberSchema struct{}

func Number() *NumberSchema { return &NumberSchema{} }

func (s *NumberSchema) Type() Type         { return TypeNumber }
func (s *NumberSchema) Constraint() string { return "number required" }

func (s *NumberSchema) validate(path string, v any, vs *Violations) any {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		vs.add(path, s.Constraint(), v)
		return nil
	}
	return f
}

func (s *NumberSchema) check(string, *[]error) {}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// DateLayouts are the string forms accepted by Date, tried in order.
var DateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateSchema accepts time.Time values and ISO 8601 strings.
type DateSchema struct{}

func Date() *DateSchema { return &DateSchema{} }

func (s *DateSchema) Type() Type         { return TypeDate }
func (s *DateSchema) Constraint() string { return "valid ISO 8601 date required" }

func (s *DateSchema) validate(path string, v any, vs *Violations) any {
	switch d := v.(type) {
	case time.Time:
		return d
	case string:
		if t, ok := ParseDate(d); ok {
			return t
		}
	}
	vs.add(path, s.Constraint(), v)
	return nil
}

func (s *DateSchema) check(string, *[]error) {}

// ParseDate parses s with the first matching layout in DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BooleanSchema accepts Go bools.
type BooleanSchema struct{}

func Boolean() *BooleanSchema { return &BooleanSchema{} }

func (s *BooleanSchema) Type() Type         { return TypeBoolean }
func (s *BooleanSchema) Constraint() string { return "boolean required" }

func (s *BooleanSchema) validate(path string, v any, vs *Violations) any {
	b, ok := v.(bool)
	if !ok {
		vs.add(path, s.Constraint(), v)
		return nil
	}
	return b
}

func (s *BooleanSchema) check(string, *[]error) {}

// EnumSchema accepts exactly one of a closed set of strings. Matching is
// case-sensitive and never coerces.
type EnumSchema struct {
	values []string
}

// Enum declares the closed set of accepted values, in display order.
func Enum(values ...string) *EnumSchema {
	return &EnumSchema{values: append([]string(nil), values...)}
}

// Values returns a copy of the accepted values.
func (s *EnumSchema) Values() []string {
	return append([]string(nil), s.values...)
}

func (s *EnumSchema) Type() Type { return TypeEnum }

func (s *EnumSchema) Constraint() string {
	return "must be one of {" + strings.Join(s.values, ", ") + "}"
}

func (s *EnumSchema) validate(path string, v any, vs *Violations) any {
	str, ok := v.(string)
	if ok {
		for _, allowed := range s.values {
			if str == allowed {
				return str
			}
		}
	}
	vs.add(path, s.Constraint(), v)
	return nil
}

func (s *EnumSchema) check(path string, errs *[]error) {
	if len(s.values) == 0 {
		definitionf(errs, path, "enumeration has no values")
		return
	}
	seen := make(map[string]struct{}, len(s.values))
	for _, v := range s.values {
		if v == "" {
			definitionf(errs, path, "enumeration contains an empty value")
			continue
		}
		if _, dup := seen[v]; dup {
			definitionf(errs, path, "enumeration value %q declared twice", v)
			continue
		}
		seen[v] = struct{}{}
	}
}
