// Package content is the collection registry of the site: which content files
// exist, what kind of entry they produce and which metadata schema their
// front matter must satisfy.
package content

import (
	stderrors "errors"
	"sync"

	"github.com/pkg/errors"

	"github.com/ZacxDev/folio/schema"
)

// Kind distinguishes routed pages from plain data records.
type Kind string

const (
	KindPage Kind = "page"
	KindData Kind = "data"
)

// Collection is one named content source.
type Collection struct {
	Name    string
	Kind    Kind
	Sources []Source
	Schema  *schema.ObjectSchema
}

// Record is a validated, normalized metadata map.
type Record map[string]any

type registered struct {
	c Collection

	once      sync.Once
	validator *schema.Validator
	err       error
}

// compile checks the descriptor the first time it is needed. The result is
// kept, so a malformed collection fails identically on every call.
func (r *registered) compile() (*schema.Validator, error) {
	r.once.Do(func() {
		var problems []error
		switch r.c.Kind {
		case KindPage, KindData:
		default:
			problems = append(problems, errors.Errorf("kind %q is not one of page, data", r.c.Kind))
		}
		if len(r.c.Sources) == 0 {
			problems = append(problems, errors.New("no source selector"))
		}
		for _, s := range r.c.Sources {
			for _, p := range s.check() {
				problems = append(problems, errors.New(p))
			}
		}
		if r.c.Schema == nil {
			problems = append(problems, errors.New("schema is nil"))
		} else if err := schema.Check(r.c.Schema); err != nil {
			// Checked before merging, or Extend would hide duplicate fields.
			problems = append(problems, err)
		} else if v, err := schema.Compile(r.effectiveSchema()); err != nil {
			problems = append(problems, err)
		} else {
			r.validator = v
		}
		if len(problems) > 0 {
			r.validator = nil
			r.err = &DefinitionError{Collection: r.c.Name, Err: stderrors.Join(problems...)}
		}
	})
	return r.validator, r.err
}

// effectiveSchema adds the page base fields. Fields the collection declares
// itself win over the base ones.
func (r *registered) effectiveSchema() *schema.ObjectSchema {
	if r.c.Kind != KindPage {
		return r.c.Schema
	}
	base := schema.Object(pageFields()...)
	if r.c.Schema.UnknownKeys() == schema.Passthrough {
		base = base.Passthrough()
	} else if r.c.Schema.UnknownKeys() == schema.Strict {
		base = base.Strict()
	}
	return base.Extend(r.c.Schema.Fields()...)
}

// Registry holds the collection descriptors of a site. It is built once at
// startup and is safe for concurrent use afterwards.
type Registry struct {
	order  []string
	byName map[string]*registered
}

// NewRegistry registers collections in order.
func NewRegistry(collections ...Collection) (*Registry, error) {
	r := &Registry{byName: make(map[string]*registered)}
	for _, c := range collections {
		if err := r.Define(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Define stores a collection descriptor. Only the name is checked here; the
// descriptor itself is checked when it is first used (see Check).
func (r *Registry) Define(c Collection) error {
	if c.Name == "" {
		return &DefinitionError{Err: errors.New("collection name is empty")}
	}
	if _, dup := r.byName[c.Name]; dup {
		return &DefinitionError{Collection: c.Name, Err: errors.New("collection defined twice")}
	}
	c.Sources = append([]Source(nil), c.Sources...)
	r.byName[c.Name] = &registered{c: c}
	r.order = append(r.order, c.Name)
	return nil
}

// Collections returns the descriptors in definition order.
func (r *Registry) Collections() []Collection {
	out := make([]Collection, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name].c)
	}
	return out
}

// Lookup returns the named collection.
func (r *Registry) Lookup(name string) (Collection, bool) {
	reg, ok := r.byName[name]
	if !ok {
		return Collection{}, false
	}
	return reg.c, true
}

// Schema returns the schema entries of the named collection are validated
// against, including the page base fields.
func (r *Registry) Schema(name string) (*schema.ObjectSchema, error) {
	reg, ok := r.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCollection, "collection %q", name)
	}
	if _, err := reg.compile(); err != nil {
		return nil, err
	}
	return reg.effectiveSchema(), nil
}

// Check compiles every collection and returns all definition errors.
func (r *Registry) Check() error {
	var errs []error
	for _, name := range r.order {
		if _, err := r.byName[name].compile(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Validate checks raw front matter against the named collection. It is a
// pure function of its inputs: the same raw map always yields the same
// record or the same *ViolationError.
func (r *Registry) Validate(name string, raw map[string]any) (Record, error) {
	reg, ok := r.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCollection, "collection %q", name)
	}
	v, err := reg.compile()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	out, err := v.Validate(raw)
	if err != nil {
		var vs schema.Violations
		if errors.As(err, &vs) {
			return nil, &ViolationError{Collection: name, Violations: vs}
		}
		return nil, err
	}
	return Record(out.(map[string]any)), nil
}
