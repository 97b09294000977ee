package content

import "github.com/ZacxDev/folio/schema"

// Names of the site collections.
const (
	CollectionIndex = "index"
	CollectionBlog  = "blog"
	CollectionPages = "pages"
	CollectionAbout = "about"
)

// SiteCollections returns the collections of the portfolio site. Each call
// builds fresh descriptors.
func SiteCollections() []Collection {
	return []Collection{
		{
			Name:    CollectionIndex,
			Kind:    KindPage,
			Sources: []Source{File("index.yml")},
			Schema:  schema.Object(),
		},
		{
			Name:    CollectionBlog,
			Kind:    KindPage,
			Sources: []Source{Glob("blog/*.md")},
			Schema: schema.Object(
				schema.F("minRead", schema.Number()),
				schema.F("date", schema.Date()),
				schema.F("image", schema.String().NonEmpty().Editor(MediaEditor)),
				schema.F("author", AuthorSchema()),
				schema.F("tags", schema.Optional(schema.Array(schema.String()))),
				schema.F("repository", schema.Optional(schema.String().URL())),
			),
		},
		{
			Name:    CollectionPages,
			Kind:    KindPage,
			Sources: []Source{{Include: "blog.yml"}},
			Schema: schema.Object(
				schema.F("links", schema.Array(ButtonSchema())),
			),
		},
		{
			Name:    CollectionAbout,
			Kind:    KindPage,
			Sources: []Source{File("about.yml")},
			Schema: schema.Object(
				schema.F("content", schema.Object().Passthrough()),
			),
		},
	}
}

// SiteRegistry is a registry holding SiteCollections plus any extra
// collections, in that order.
func SiteRegistry(extra ...Collection) (*Registry, error) {
	return NewRegistry(append(SiteCollections(), extra...)...)
}
