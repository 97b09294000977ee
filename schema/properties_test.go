package schema

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEnumMembershipProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z_]{1,8}`), 1, 8, rapid.ID[string]).Draw(t, "values")
		s := Enum(values...)

		in := rapid.SampledFrom(values).Draw(t, "member")
		got, err := Validate(s, in)
		if err != nil {
			t.Fatalf("member %q rejected: %v", in, err)
		}
		if got != in {
			t.Fatalf("member %q read back as %v", in, got)
		}

		other := rapid.String().Filter(func(s string) bool { return !slices.Contains(values, s) }).Draw(t, "outsider")
		if _, err := Validate(s, other); err == nil {
			t.Fatalf("outsider %q accepted by %v", other, values)
		}
	})
}

// genEntry draws loosely shaped front matter: sometimes valid, sometimes not.
func genEntry() *rapid.Generator[map[string]any] {
	scalar := rapid.OneOf(
		rapid.Just[any](nil),
		rapid.Map(rapid.String(), func(s string) any { return s }),
		rapid.Map(rapid.IntRange(-5, 50), func(i int) any { return i }),
		rapid.Map(rapid.Bool(), func(b bool) any { return b }),
		rapid.Map(rapid.SampledFrom([]string{"2024-01-02", "bad-date", "https://x.dev"}), func(s string) any { return s }),
	)
	return rapid.Custom(func(t *rapid.T) map[string]any {
		m := map[string]any{}
		for _, k := range []string{"title", "count", "when", "color", "site", "tags"} {
			if rapid.Bool().Draw(t, "has_"+k) {
				m[k] = scalar.Draw(t, k)
			}
		}
		if rapid.Bool().Draw(t, "list") {
			m["tags"] = rapid.SliceOfN(scalar, 0, 3).Draw(t, "tags_list")
		}
		return m
	})
}

func TestValidateIsIdempotent(t *testing.T) {
	s := Object(
		F("title", String().NonEmpty()),
		F("count", Number()),
		F("when", Optional(Date())),
		F("color", Optional(Enum("primary", "neutral"))),
		F("site", Optional(String().URL())),
		F("tags", Optional(Array(String()))),
	)
	rapid.Check(t, func(t *rapid.T) {
		in := genEntry().Draw(t, "entry")
		got1, err1 := Validate(s, in)
		got2, err2 := Validate(s, in)
		require.Equal(t, err1, err2)
		require.Equal(t, got1, got2)
	})
}

func TestDescribeBuildRoundTrip(t *testing.T) {
	s := Object(
		F("label", String()),
		F("image", String().NonEmpty().Editor(map[string]any{"input": "media"})),
		F("repository", Optional(String().URL())),
		F("color", Optional(Enum("primary", "error"))),
		F("links", Array(Object(F("to", String())).Strict())),
		F("content", Object().Passthrough()),
		F("date", Date()),
		F("minRead", Number()),
		F("draft", Optional(Boolean())),
	)
	d := Describe(s)
	rebuilt, err := Build(d)
	require.NoError(t, err)
	require.Equal(t, d, Describe(rebuilt))

	rapid.Check(t, func(t *rapid.T) {
		in := genEntry().Draw(t, "entry")
		want, wantErr := Validate(s, in)
		got, gotErr := Validate(rebuilt, in)
		require.Equal(t, wantErr, gotErr)
		require.Equal(t, want, got)
	})
}

func TestBuildRejectsUnknownTypes(t *testing.T) {
	_, err := Build(Descriptor{Type: TypeObject, Fields: []FieldDescriptor{{Name: "x", Descriptor: Descriptor{Type: "uuid"}}}})
	var de *DefinitionError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "x", de.Path)

	_, err = Build(Descriptor{Type: TypeArray})
	require.ErrorAs(t, err, &de)

	_, err = Build(Descriptor{Type: TypeString, Format: "email"})
	require.ErrorAs(t, err, &de)
}
