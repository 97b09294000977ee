package content

import (
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Source selects the files of a collection, relative to the content root.
// Patterns use forward slashes and support `**`.
type Source struct {
	// Include is a file path or glob pattern.
	Include string `mapstructure:"include" yaml:"include"`
	// Exclude lists patterns removed from the Include matches.
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`
	// Prefix overrides the route prefix of matched page entries.
	Prefix string `mapstructure:"prefix" yaml:"prefix,omitempty"`
}

// File selects exactly one source file.
func File(p string) Source { return Source{Include: p} }

// Glob selects every file matching pattern.
func Glob(pattern string) Source { return Source{Include: pattern} }

func (s Source) String() string {
	return s.Include
}

// IsPattern reports whether Include contains glob meta characters.
func (s Source) IsPattern() bool {
	return strings.ContainsAny(s.Include, "*?[{")
}

// Match reports whether rel, a slash-separated path relative to the content
// root, is selected.
func (s Source) Match(rel string) bool {
	ok, err := doublestar.Match(s.Include, rel)
	if err != nil || !ok {
		return false
	}
	for _, ex := range s.Exclude {
		if excluded, _ := doublestar.Match(ex, rel); excluded {
			return false
		}
	}
	return true
}

func (s Source) check() []string {
	var problems []string
	if s.Include == "" {
		problems = append(problems, "source has an empty include")
	} else if !doublestar.ValidatePattern(s.Include) {
		problems = append(problems, "invalid include pattern "+s.Include)
	}
	for _, ex := range s.Exclude {
		if !doublestar.ValidatePattern(ex) {
			problems = append(problems, "invalid exclude pattern "+ex)
		}
	}
	if s.Prefix != "" && !strings.HasPrefix(s.Prefix, "/") {
		problems = append(problems, "prefix "+s.Prefix+" must start with /")
	}
	return problems
}

// base is the fixed directory in front of the first wildcard, "" for plain
// file paths.
func (s Source) base() string {
	if !s.IsPattern() {
		return ""
	}
	dir, _ := doublestar.SplitPattern(s.Include)
	if dir == "." {
		return ""
	}
	return dir
}

var orderingPrefix = regexp.MustCompile(`^\d+\.`)

// RoutePath derives the URL path of a page entry read from rel.
//
//	blog/*.md    blog/hello.md      -> /blog/hello
//	index.yml    index.yml          -> /
//	docs/**      docs/1.intro/index.md -> /docs/intro
func (s Source) RoutePath(rel string) string {
	base := s.base()
	sub := rel
	if base != "" {
		sub = strings.TrimPrefix(rel, base+"/")
	}
	prefix := s.Prefix
	if prefix == "" {
		prefix = "/" + base
	}

	sub = strings.TrimSuffix(sub, path.Ext(sub))
	segs := strings.Split(sub, "/")
	out := segs[:0]
	for _, seg := range segs {
		seg = orderingPrefix.ReplaceAllString(seg, "")
		if seg != "" {
			out = append(out, seg)
		}
	}
	if n := len(out); n > 0 && out[n-1] == "index" {
		out = out[:n-1]
	}
	return path.Join(append([]string{prefix}, out...)...)
}
