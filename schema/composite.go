package schema

import "sort"

// OptionalSchema wraps a schema whose field may be omitted. An omitted field
// stays absent from the validated object; it is never filled with a zero
// value. An explicit null is still validated against the inner schema.
type OptionalSchema struct {
	inner Schema
}

// Optional marks s as omittable when used as an object field.
func Optional(s Schema) *OptionalSchema {
	return &OptionalSchema{inner: s}
}

// Unwrap returns the wrapped schema.
func (s *OptionalSchema) Unwrap() Schema { return s.inner }

func (s *OptionalSchema) Type() Type {
	if s.inner == nil {
		return ""
	}
	return s.inner.Type()
}

func (s *OptionalSchema) Constraint() string {
	if s.inner == nil {
		return ""
	}
	return s.inner.Constraint()
}

func (s *OptionalSchema) validate(path string, v any, vs *Violations) any {
	return s.inner.validate(path, v, vs)
}

func (s *OptionalSchema) check(path string, errs *[]error) {
	if s.inner == nil {
		definitionf(errs, path, "optional wraps a nil schema")
		return
	}
	if _, nested := s.inner.(*OptionalSchema); nested {
		definitionf(errs, path, "optional wraps another optional")
		return
	}
	s.inner.check(path, errs)
}

// ArraySchema accepts a list whose every element satisfies the item schema.
type ArraySchema struct {
	item Schema
}

// Array declares a list of item.
func Array(item Schema) *ArraySchema {
	return &ArraySchema{item: item}
}

// Item returns the element schema.
func (s *ArraySchema) Item() Schema { return s.item }

func (s *ArraySchema) Type() Type         { return TypeArray }
func (s *ArraySchema) Constraint() string { return "array required" }

func (s *ArraySchema) validate(path string, v any, vs *Violations) any {
	items, ok := asList(v)
	if !ok {
		vs.add(path, s.Constraint(), v)
		return nil
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = s.item.validate(indexPath(path, i), item, vs)
	}
	return out
}

func (s *ArraySchema) check(path string, errs *[]error) {
	if s.item == nil {
		definitionf(errs, path, "array item schema is nil")
		return
	}
	if _, ok := s.item.(*OptionalSchema); ok {
		definitionf(errs, path, "array items cannot be optional")
		return
	}
	s.item.check(path+"[]", errs)
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

// UnknownKeys selects how an object treats keys it does not declare.
type UnknownKeys string

const (
	// Strip drops undeclared keys from the validated value.
	Strip UnknownKeys = "strip"
	// Passthrough keeps undeclared keys unvalidated.
	Passthrough UnknownKeys = "passthrough"
	// Strict reports undeclared keys as violations.
	Strict UnknownKeys = "strict"
)

// ObjectSchema accepts a string-keyed map with declared fields.
type ObjectSchema struct {
	fields  []Field
	unknown UnknownKeys
}

// Object declares a map shape. Fields keep their declaration order, which is
// also the order violations are reported in.
func Object(fields ...Field) *ObjectSchema {
	return &ObjectSchema{fields: append([]Field(nil), fields...), unknown: Strip}
}

// Passthrough returns a copy that keeps undeclared keys.
func (s *ObjectSchema) Passthrough() *ObjectSchema {
	return s.withUnknown(Passthrough)
}

// Strict returns a copy that rejects undeclared keys.
func (s *ObjectSchema) Strict() *ObjectSchema {
	return s.withUnknown(Strict)
}

func (s *ObjectSchema) withUnknown(u UnknownKeys) *ObjectSchema {
	return &ObjectSchema{fields: s.fields, unknown: u}
}

// Extend returns a copy with extra fields appended. A field whose name is
// already declared replaces the earlier declaration in place.
func (s *ObjectSchema) Extend(fields ...Field) *ObjectSchema {
	out := &ObjectSchema{fields: append([]Field(nil), s.fields...), unknown: s.unknown}
	for _, f := range fields {
		replaced := false
		for i := range out.fields {
			if out.fields[i].Name == f.Name {
				out.fields[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			out.fields = append(out.fields, f)
		}
	}
	return out
}

// Fields returns a copy of the declared fields.
func (s *ObjectSchema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Lookup finds a declared field by name.
func (s *ObjectSchema) Lookup(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// UnknownKeys reports the undeclared-key policy.
func (s *ObjectSchema) UnknownKeys() UnknownKeys { return s.unknown }

func (s *ObjectSchema) Type() Type         { return TypeObject }
func (s *ObjectSchema) Constraint() string { return "object required" }

func (s *ObjectSchema) validate(path string, v any, vs *Violations) any {
	m, ok := v.(map[string]any)
	if !ok {
		vs.add(path, s.Constraint(), v)
		return nil
	}
	out := make(map[string]any, len(s.fields))
	declared := make(map[string]struct{}, len(s.fields))
	for _, f := range s.fields {
		declared[f.Name] = struct{}{}
		fp := childPath(path, f.Name)
		raw, present := m[f.Name]
		if !present {
			if !f.Optional() {
				vs.missing(fp, f.Schema.Constraint())
			}
			continue
		}
		out[f.Name] = f.Schema.validate(fp, raw, vs)
	}
	if s.unknown == Strip {
		return out
	}
	var extra []string
	for k := range m {
		if _, ok := declared[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		if s.unknown == Strict {
			vs.add(childPath(path, k), "unknown field not allowed", m[k])
			continue
		}
		out[k] = m[k]
	}
	return out
}

func (s *ObjectSchema) check(path string, errs *[]error) {
	seen := make(map[string]struct{}, len(s.fields))
	for _, f := range s.fields {
		if f.Name == "" {
			definitionf(errs, path, "field with empty name")
			continue
		}
		fp := childPath(path, f.Name)
		if _, dup := seen[f.Name]; dup {
			definitionf(errs, fp, "field declared twice")
			continue
		}
		seen[f.Name] = struct{}{}
		if f.Schema == nil {
			definitionf(errs, fp, "field schema is nil")
			continue
		}
		f.Schema.check(fp, errs)
	}
	switch s.unknown {
	case Strip, Passthrough, Strict:
	default:
		definitionf(errs, path, "unknown-key policy %q is not one of strip, passthrough, strict", s.unknown)
	}
}
