package schema

import "fmt"

// Descriptor is the serializable form of a schema, shared with tools outside
// this module (content loaders, authoring UIs). Describe and Build convert
// between the two; a descriptor built from Describe builds back into an
// equivalent schema.
type Descriptor struct {
	Type     Type              `json:"type" yaml:"type" mapstructure:"type"`
	Optional bool              `json:"optional,omitempty" yaml:"optional,omitempty" mapstructure:"optional"`
	NonEmpty bool              `json:"nonEmpty,omitempty" yaml:"nonEmpty,omitempty" mapstructure:"nonEmpty"`
	Format   string            `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format"`
	Values   []string          `json:"values,omitempty" yaml:"values,omitempty" mapstructure:"values"`
	Items    *Descriptor       `json:"items,omitempty" yaml:"items,omitempty" mapstructure:"items"`
	Fields   []FieldDescriptor `json:"fields,omitempty" yaml:"fields,omitempty" mapstructure:"fields"`
	Unknown  UnknownKeys       `json:"unknownKeys,omitempty" yaml:"unknownKeys,omitempty" mapstructure:"unknownKeys"`
	Editor   map[string]any    `json:"editor,omitempty" yaml:"editor,omitempty" mapstructure:"editor"`
}

// FieldDescriptor is a named object member.
type FieldDescriptor struct {
	Name       string `json:"name" yaml:"name" mapstructure:"name"`
	Descriptor `json:",inline" yaml:",inline" mapstructure:",squash"`
}

// FormatURL marks a string descriptor that must hold an absolute URL.
const FormatURL = "url"

// Describe exports s as a Descriptor.
func Describe(s Schema) Descriptor {
	switch x := s.(type) {
	case *OptionalSchema:
		d := Describe(x.inner)
		d.Optional = true
		return d
	case *StringSchema:
		d := Descriptor{Type: TypeString, NonEmpty: x.nonEmpty, Editor: x.EditorHints()}
		if x.url {
			d.Format = FormatURL
		}
		return d
	case *EnumSchema:
		return Descriptor{Type: TypeEnum, Values: x.Values()}
	case *ArraySchema:
		d := Descriptor{Type: TypeArray}
		if x.item != nil {
			item := Describe(x.item)
			d.Items = &item
		}
		return d
	case *ObjectSchema:
		d := Descriptor{Type: TypeObject, Fields: []FieldDescriptor{}}
		if x.unknown != Strip {
			d.Unknown = x.unknown
		}
		for _, f := range x.fields {
			var fd Descriptor
			if f.Schema != nil {
				fd = Describe(f.Schema)
			}
			d.Fields = append(d.Fields, FieldDescriptor{Name: f.Name, Descriptor: fd})
		}
		return d
	case nil:
		return Descriptor{}
	default:
		return Descriptor{Type: s.Type()}
	}
}

// Build constructs a schema from d. Structural problems in the descriptor
// (unknown type, missing item) are returned here; consistency problems such
// as duplicate fields surface later through Check, like any other schema.
func Build(d Descriptor) (Schema, error) {
	s, err := build(d, "")
	if err != nil {
		return nil, err
	}
	if d.Optional {
		return Optional(s), nil
	}
	return s, nil
}

func build(d Descriptor, path string) (Schema, error) {
	switch d.Type {
	case TypeString:
		s := String()
		if d.NonEmpty {
			s = s.NonEmpty()
		}
		switch d.Format {
		case "":
		case FormatURL:
			s = s.URL()
		default:
			return nil, &DefinitionError{Path: path, Reason: fmt.Sprintf("unknown string format %q", d.Format)}
		}
		if d.Editor != nil {
			s = s.Editor(d.Editor)
		}
		return s, nil
	case TypeNumber:
		return Number(), nil
	case TypeDate:
		return Date(), nil
	case TypeBoolean:
		return Boolean(), nil
	case TypeEnum:
		return Enum(d.Values...), nil
	case TypeArray:
		if d.Items == nil {
			return nil, &DefinitionError{Path: path, Reason: "array descriptor has no items"}
		}
		item, err := build(*d.Items, path+"[]")
		if err != nil {
			return nil, err
		}
		return Array(item), nil
	case TypeObject:
		fields := make([]Field, 0, len(d.Fields))
		for _, fd := range d.Fields {
			fs, err := build(fd.Descriptor, childPath(path, fd.Name))
			if err != nil {
				return nil, err
			}
			if fd.Optional {
				fs = Optional(fs)
			}
			fields = append(fields, F(fd.Name, fs))
		}
		o := Object(fields...)
		if d.Unknown != "" {
			o = o.withUnknown(d.Unknown)
		}
		return o, nil
	case "":
		return nil, &DefinitionError{Path: path, Reason: "descriptor has no type"}
	default:
		return nil, &DefinitionError{Path: path, Reason: fmt.Sprintf("unknown type %q", d.Type)}
	}
}
