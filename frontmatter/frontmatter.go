// Package frontmatter reads content source files into raw metadata and body.
package frontmatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Document is a parsed source file.
type Document struct {
	// Meta is the raw front matter, or the whole document for data files.
	Meta map[string]any
	// Body is the Markdown after the front matter; empty for data files.
	Body string
	// BodyLine is the 1-based line the body starts on.
	BodyLine int
}

// ParseError locates a malformed source file.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

const (
	delimiter = "---"
	bom       = "\ufeff"
)

// Extensions lists the file types Parse understands.
var Extensions = []string{".md", ".yml", ".yaml", ".json"}

// Supported reports whether name has a parseable extension.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Parse decodes data according to the extension of name.
func Parse(name string, data []byte) (*Document, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md":
		return parseMarkdown(name, data)
	case ".yml", ".yaml":
		meta, err := decodeYAML(name, data, 0)
		if err != nil {
			return nil, err
		}
		return &Document{Meta: meta}, nil
	case ".json":
		meta := map[string]any{}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&meta); err != nil {
			return nil, &ParseError{File: name, Err: errors.Wrap(err, "decoding json")}
		}
		return &Document{Meta: normalizeJSON(meta).(map[string]any)}, nil
	default:
		return nil, &ParseError{File: name, Err: errors.Errorf("unsupported file type %q", filepath.Ext(name))}
	}
}

// Split separates a leading `---` delimited block from the rest of a
// Markdown file. ok is false when there is no front matter block.
func Split(data []byte) (front, body []byte, bodyLine int, ok bool) {
	text := bytes.TrimPrefix(data, []byte(bom))
	lines := bytes.SplitAfter(text, []byte("\n"))
	if len(lines) == 0 || strings.TrimRight(string(lines[0]), "\r\n") != delimiter {
		return nil, text, 1, false
	}
	offset := len(lines[0])
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(string(lines[i]), " \t\r\n") == delimiter {
			front = text[len(lines[0]):offset]
			body = text[offset+len(lines[i]):]
			return front, body, i + 2, true
		}
		offset += len(lines[i])
	}
	return nil, text, 1, false
}

func parseMarkdown(name string, data []byte) (*Document, error) {
	front, body, bodyLine, ok := Split(data)
	doc := &Document{Meta: map[string]any{}, Body: string(body), BodyLine: bodyLine}
	if !ok {
		if opensFrontMatter(data) {
			return nil, &ParseError{File: name, Line: 1, Err: errors.New("front matter is not closed")}
		}
		return doc, nil
	}
	meta, err := decodeYAML(name, front, 1)
	if err != nil {
		return nil, err
	}
	doc.Meta = meta
	return doc, nil
}

// opensFrontMatter reports whether the first line is a lone delimiter.
func opensFrontMatter(data []byte) bool {
	text := bytes.TrimPrefix(data, []byte(bom))
	first, _, found := bytes.Cut(text, []byte("\n"))
	return found && strings.TrimRight(string(first), "\r") == delimiter
}

// decodeYAML decodes a mapping document. lineOffset shifts reported line
// numbers for blocks embedded in a larger file.
func decodeYAML(name string, data []byte, lineOffset int) (map[string]any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{File: name, Line: yamlErrorLine(err, lineOffset), Err: errors.Wrap(err, "decoding yaml")}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return map[string]any{}, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &ParseError{File: name, Line: doc.Line + lineOffset, Err: errors.New("document is not a mapping")}
	}
	meta := map[string]any{}
	if err := doc.Decode(&meta); err != nil {
		return nil, &ParseError{File: name, Line: doc.Line + lineOffset, Err: errors.Wrap(err, "decoding yaml")}
	}
	return normalizeYAML(meta).(map[string]any), nil
}

func yamlErrorLine(err error, offset int) int {
	var line int
	msg := err.Error()
	if i := strings.Index(msg, "line "); i >= 0 {
		if _, scanErr := fmt.Sscanf(msg[i:], "line %d", &line); scanErr == nil {
			return line + offset
		}
	}
	return 0
}

// normalizeYAML turns nested maps with non-string keys, such as
// `2024: launched`, into map[string]any.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeYAML(e)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	case []any:
		for i, e := range x {
			x[i] = normalizeYAML(e)
		}
		return x
	default:
		return v
	}
}

// normalizeJSON turns json.Number into int64 or float64 so numbers look the
// same as those decoded from YAML.
func normalizeJSON(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeJSON(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalizeJSON(e)
		}
		return x
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	default:
		return v
	}
}
