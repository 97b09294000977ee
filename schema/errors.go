package schema

import (
	"fmt"
	"strings"
)

// Violation describes one field of an entry that did not satisfy its
// declared constraint.
type Violation struct {
	// Path locates the field, e.g. "author.avatar.alt" or "links[2].color".
	Path       string
	Constraint string
	// Got is a short description of the offending value ("missing" when absent).
	Got string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s (got %s)", displayPath(v.Path), v.Constraint, v.Got)
}

// Violations is the result of a failed validation, in field declaration order.
type Violations []Violation

func (vs Violations) Error() string {
	switch len(vs) {
	case 0:
		return "no violations"
	case 1:
		return vs[0].Error()
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Error()
	}
	return fmt.Sprintf("%d violations: %s", len(vs), strings.Join(parts, "; "))
}

// Paths returns the field path of every violation.
func (vs Violations) Paths() []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Path
	}
	return out
}

func (vs *Violations) add(path, constraint string, got any) {
	*vs = append(*vs, Violation{Path: path, Constraint: constraint, Got: describeValue(got)})
}

func (vs *Violations) missing(path, constraint string) {
	*vs = append(*vs, Violation{Path: path, Constraint: constraint, Got: "missing"})
}

// DefinitionError reports an internally malformed schema.
type DefinitionError struct {
	Path   string
	Reason string
	Causes []error
}

func (e *DefinitionError) Error() string {
	if len(e.Causes) > 0 {
		parts := make([]string, len(e.Causes))
		for i, c := range e.Causes {
			parts[i] = c.Error()
		}
		return "schema definition: " + strings.Join(parts, "; ")
	}
	return fmt.Sprintf("schema definition: %s: %s", displayPath(e.Path), e.Reason)
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *DefinitionError) Unwrap() []error {
	return e.Causes
}

func definitionf(errs *[]error, path, format string, args ...any) {
	*errs = append(*errs, &DefinitionError{Path: path, Reason: fmt.Sprintf(format, args...)})
}

func describeValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		if r := []rune(x); len(r) > 40 {
			x = string(r[:37]) + "..."
		}
		return fmt.Sprintf("%q", x)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
