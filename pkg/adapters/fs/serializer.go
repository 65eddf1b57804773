package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/inkpress/inkpress/pkg/core"
	"gopkg.in/yaml.v3"
)

// unit is the raw result of decoding one content file: the front-matter
// mapping plus the untouched body. Field coercion and validation happen
// later, in the source.
type unit struct {
	Meta core.Metadata
	Body string
}

// Serializer defines how to decode a specific file format into a unit.
// The engine is read-only toward content, so there is no encode side.
type Serializer interface {
	Parse(r io.Reader) (*unit, error)
}

// DefaultSerializers returns the standard set of serializers keyed by
// file extension.
func DefaultSerializers(strict bool) map[string]Serializer {
	return map[string]Serializer{
		".md":   NewMarkdownSerializer(strict),
		".yaml": NewYAMLSerializer(strict),
		".yml":  NewYAMLSerializer(strict),
		".json": NewJSONSerializer(strict),
	}
}

// --- Markdown Serializer ---

// MarkdownSerializer decodes Markdown files with a YAML front-matter block.
type MarkdownSerializer struct {
	// Strict enables number normalization to json.Number to avoid
	// precision loss on large integers.
	Strict bool
}

// NewMarkdownSerializer creates a new Markdown serializer.
func NewMarkdownSerializer(strict bool) *MarkdownSerializer {
	return &MarkdownSerializer{Strict: strict}
}

func (s *MarkdownSerializer) Parse(r io.Reader) (*unit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	yamlData, body, hasFM, err := splitFrontMatter(data)
	if err != nil {
		return nil, err
	}

	u := &unit{Meta: make(core.Metadata), Body: body}
	if !hasFM {
		return u, nil
	}

	if err := yaml.Unmarshal(yamlData, &u.Meta); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	if s.Strict {
		u.Meta = recursiveNormalize(u.Meta).(core.Metadata)
	}

	return u, nil
}

// splitFrontMatter separates a delimited front-matter block from the body.
// Returns hasFM=false when the file does not start with a "---" line.
// The split is purely textual, so callers holding cached metadata can
// recover the body without touching the YAML parser.
func splitFrontMatter(data []byte) (yamlData []byte, body string, hasFM bool, err error) {
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return nil, string(data), false, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("---"), 2)
	if len(parts) == 1 {
		return nil, "", false, errors.New("frontmatter started but no closing delimiter found")
	}

	body = strings.TrimPrefix(string(parts[1]), "\n")
	body = strings.TrimPrefix(body, "\r\n")
	return parts[0], body, true, nil
}

// --- YAML Serializer ---

// YAMLSerializer decodes whole-file YAML units. The body, if any, lives
// under the "body" key (with "content" accepted as an alias).
type YAMLSerializer struct {
	Strict bool
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer(strict bool) *YAMLSerializer {
	return &YAMLSerializer{Strict: strict}
}

func (s *YAMLSerializer) Parse(r io.Reader) (*unit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	u := &unit{Meta: payload}
	if u.Meta == nil {
		u.Meta = make(core.Metadata)
	}
	extractBody(u)

	if s.Strict {
		u.Meta = recursiveNormalize(u.Meta).(core.Metadata)
	}

	return u, nil
}

// --- JSON Serializer ---

// JSONSerializer decodes whole-file JSON units, same layout as YAML.
type JSONSerializer struct {
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Parse(r io.Reader) (*unit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	if s.Strict {
		decoder.UseNumber()
	}
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	u := &unit{Meta: payload}
	if u.Meta == nil {
		u.Meta = make(core.Metadata)
	}
	extractBody(u)

	return u, nil
}

// --- Helpers ---

// extractBody lifts the "body" (or legacy "content") key out of the
// metadata mapping into the unit body.
func extractBody(u *unit) {
	for _, key := range []string{"body", "content"} {
		if b, ok := u.Meta[key].(string); ok {
			u.Body = b
			delete(u.Meta, key)
			return
		}
	}
}

// recursiveNormalize traverses the map/slice and converts numeric types to
// json.Number, keeping YAML strict mode consistent with JSON strict mode.
func recursiveNormalize(val any) any {
	switch v := val.(type) {
	case core.Metadata:
		m := make(core.Metadata)
		for k, val := range v {
			m[k] = recursiveNormalize(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any)
		for k, val := range v {
			m[k] = recursiveNormalize(val)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, val := range v {
			l[i] = recursiveNormalize(val)
		}
		return l
	case int:
		return json.Number(fmt.Sprintf("%d", v))
	case int32:
		return json.Number(fmt.Sprintf("%d", v))
	case int64:
		return json.Number(fmt.Sprintf("%d", v))
	case float64:
		return json.Number(fmt.Sprintf("%v", v))
	default:
		return v
	}
}
