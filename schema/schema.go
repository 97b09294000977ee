// Package schema is the schema-definition vocabulary used to describe content
// metadata: objects, arrays, enumerations, optional fields and the scalar
// types string, number, date and boolean.
//
// Schemas are immutable values. Builder methods such as (*StringSchema).NonEmpty
// return a modified copy, so shared sub-schemas can be embedded into several
// parents without aliasing.
//
// Validation is a pure function of (raw input, schema): it returns the
// normalized value or the full list of violations, never both.
package schema

import (
	"strconv"
)

// Type names the shape a schema accepts.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeDate    Type = "date"
	TypeBoolean Type = "boolean"
	TypeEnum    Type = "enum"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema is implemented by every node of the vocabulary.
type Schema interface {
	// Type reports the accepted shape.
	Type() Type
	// Constraint is the human-readable rule reported in violations.
	Constraint() string

	validate(path string, v any, vs *Violations) any
	check(path string, errs *[]error)
}

// Validate checks raw against s. On success it returns the normalized value:
// numbers as float64, dates as time.Time, arrays as []any and objects as
// map[string]any with unknown keys handled per the object's policy.
//
// A malformed schema fails here with a *DefinitionError, before raw is
// inspected. Otherwise the error is Violations.
func Validate(s Schema, raw any) (any, error) {
	v, err := Compile(s)
	if err != nil {
		return nil, err
	}
	return v.Validate(raw)
}

// Validator is a schema that passed Check. It is safe for concurrent use.
type Validator struct {
	s Schema
}

// Compile checks s once so it can validate many entries.
func Compile(s Schema) (*Validator, error) {
	if err := Check(s); err != nil {
		return nil, err
	}
	return &Validator{s: s}, nil
}

// Schema returns the compiled schema.
func (v *Validator) Schema() Schema { return v.s }

// Validate behaves like the package-level Validate without re-checking.
func (v *Validator) Validate(raw any) (any, error) {
	var vs Violations
	out := v.s.validate("", raw, &vs)
	if len(vs) > 0 {
		return nil, vs
	}
	return out, nil
}

// Check reports the first definition problems found in s, joined into a
// single *DefinitionError. It returns nil for a well-formed schema.
func Check(s Schema) error {
	var errs []error
	if s == nil {
		return &DefinitionError{Reason: "schema is nil"}
	}
	s.check("", &errs)
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return &DefinitionError{Reason: "multiple problems", Causes: errs}
}

// Field is a named member of an object schema.
type Field struct {
	Name   string
	Schema Schema
}

// F is shorthand for constructing a Field.
func F(name string, s Schema) Field {
	return Field{Name: name, Schema: s}
}

// Optional reports whether the field may be omitted.
func (f Field) Optional() bool {
	_, ok := f.Schema.(*OptionalSchema)
	return ok
}

func childPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

func displayPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}
