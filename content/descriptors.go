package content

import "github.com/ZacxDev/folio/schema"

// Closed value sets of the button descriptor.
var (
	ButtonColors   = []string{"primary", "neutral", "success", "warning", "error", "info"}
	ButtonSizes    = []string{"xs", "sm", "md", "lg", "xl"}
	ButtonVariants = []string{"solid", "outline", "subtle", "soft", "ghost", "link"}
	LinkTargets    = []string{"_blank", "_self"}
)

// MediaEditor is the authoring hint attached to media fields.
var MediaEditor = map[string]any{"input": "media"}

// ButtonSchema describes a call-to-action embedded in content.
func ButtonSchema() *schema.ObjectSchema {
	return schema.Object(
		schema.F("label", schema.String()),
		schema.F("icon", schema.Optional(schema.String())),
		schema.F("to", schema.Optional(schema.String())),
		schema.F("color", schema.Optional(schema.Enum(ButtonColors...))),
		schema.F("size", schema.Optional(schema.Enum(ButtonSizes...))),
		schema.F("variant", schema.Optional(schema.Enum(ButtonVariants...))),
		schema.F("target", schema.Optional(schema.Enum(LinkTargets...))),
	)
}

// ImageSchema describes a media reference.
func ImageSchema() *schema.ObjectSchema {
	return schema.Object(
		schema.F("src", schema.String().Editor(MediaEditor)),
		schema.F("alt", schema.String()),
	)
}

// AuthorSchema describes a byline.
func AuthorSchema() *schema.ObjectSchema {
	return schema.Object(
		schema.F("name", schema.String()),
		schema.F("description", schema.Optional(schema.String())),
		schema.F("username", schema.Optional(schema.String())),
		schema.F("twitter", schema.Optional(schema.String())),
		schema.F("to", schema.Optional(schema.String())),
		schema.F("avatar", schema.Optional(ImageSchema())),
	)
}

// pageFields are accepted by every page collection on top of its own schema.
func pageFields() []schema.Field {
	return []schema.Field{
		schema.F("title", schema.Optional(schema.String())),
		schema.F("description", schema.Optional(schema.String())),
		schema.F("navigation", schema.Optional(schema.Boolean())),
		schema.F("seo", schema.Optional(schema.Object().Passthrough())),
	}
}
