// Package content reads MDX documents from disk, validates their YAML
// frontmatter and reconciles the metadata with the artifacts, projects and
// tags kept in the database.
package content

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// yamlFormat restricts detection to "---" delimited YAML. yaml.v3 resolves
// scalars per YAML 1.2, so yes/no/on/off stay strings, and unquoted
// timestamps stay strings when decoding into interface values.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// ErrMalformedFrontmatter wraps YAML decoding failures.
var ErrMalformedFrontmatter = errors.New("malformed frontmatter")

// Parsed is a document split into its metadata block and body text.
type Parsed struct {
	Frontmatter map[string]any
	Body        string
}

// Parse splits src into frontmatter and body. A document without a leading
// "---" block yields an empty (non-nil) frontmatter map and the whole input
// as body.
func Parse(src []byte) (Parsed, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta, yamlFormat)
	if err != nil {
		return Parsed{}, fmt.Errorf("%w: %v", ErrMalformedFrontmatter, err)
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = normalizeValue(v)
	}
	return Parsed{Frontmatter: out, Body: string(body)}, nil
}

// normalizeValue rewrites decoder output into plain JSON-like shapes:
// string keyed maps, []any slices and RFC 3339 strings for timestamps.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.RFC3339)
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeValue(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = normalizeValue(val)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	}
	return v
}

// StripESM removes MDX import/export statements that sit outside fenced code
// blocks so the remaining body renders as plain Markdown.
func StripESM(body string) string {
	var b strings.Builder
	sc := bufio.NewScanner(strings.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	inFence := false
	first := true
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}
		if !inFence && (strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ")) {
			continue
		}
		if !first {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		first = false
	}
	return b.String()
}
