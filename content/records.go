package content

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// Button is a decoded button descriptor. Nil pointers are fields the entry
// omitted.
type Button struct {
	Label   string  `mapstructure:"label" json:"label"`
	Icon    *string `mapstructure:"icon" json:"icon,omitempty"`
	To      *string `mapstructure:"to" json:"to,omitempty"`
	Color   *string `mapstructure:"color" json:"color,omitempty"`
	Size    *string `mapstructure:"size" json:"size,omitempty"`
	Variant *string `mapstructure:"variant" json:"variant,omitempty"`
	Target  *string `mapstructure:"target" json:"target,omitempty"`
}

type Image struct {
	Src string `mapstructure:"src" json:"src"`
	Alt string `mapstructure:"alt" json:"alt"`
}

type Author struct {
	Name        string  `mapstructure:"name" json:"name"`
	Description *string `mapstructure:"description" json:"description,omitempty"`
	Username    *string `mapstructure:"username" json:"username,omitempty"`
	Twitter     *string `mapstructure:"twitter" json:"twitter,omitempty"`
	To          *string `mapstructure:"to" json:"to,omitempty"`
	Avatar      *Image  `mapstructure:"avatar" json:"avatar,omitempty"`
}

// PageMeta holds the base fields every page collection accepts.
type PageMeta struct {
	Title       *string        `mapstructure:"title" json:"title,omitempty"`
	Description *string        `mapstructure:"description" json:"description,omitempty"`
	Navigation  *bool          `mapstructure:"navigation" json:"navigation,omitempty"`
	SEO         map[string]any `mapstructure:"seo" json:"seo,omitempty"`
}

// Index is the home page record.
type Index struct {
	PageMeta `mapstructure:",squash"`
}

// BlogPost is a blog collection record.
type BlogPost struct {
	PageMeta   `mapstructure:",squash"`
	MinRead    float64   `mapstructure:"minRead" json:"minRead"`
	Date       time.Time `mapstructure:"date" json:"date"`
	Image      string    `mapstructure:"image" json:"image"`
	Author     Author    `mapstructure:"author" json:"author"`
	Tags       []string  `mapstructure:"tags" json:"tags,omitempty"`
	Repository *string   `mapstructure:"repository" json:"repository,omitempty"`
}

// PageLinks is a pages collection record.
type PageLinks struct {
	PageMeta `mapstructure:",squash"`
	Links    []Button `mapstructure:"links" json:"links"`
}

// About is an about collection record; Content is free-form.
type About struct {
	PageMeta `mapstructure:",squash"`
	Content  map[string]any `mapstructure:"content" json:"content"`
}

// Decode copies a validated record into out, a pointer to one of the record
// structs (or any struct with matching mapstructure tags).
func Decode(rec Record, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: false,
	})
	if err != nil {
		return errors.Wrap(err, "creating record decoder")
	}
	if err := dec.Decode(map[string]any(rec)); err != nil {
		return errors.Wrap(err, "decoding record")
	}
	return nil
}
