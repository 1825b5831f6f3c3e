package content

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/darkhorsekelly/notebook/models"
)

// Issue codes reported by ValidateFrontmatter.
const (
	CodeRequired    = "required"
	CodeInvalidType = "invalid_type"
	CodeTooSmall    = "too_small"
	CodeInvalidDate = "invalid_date"
	CodeInvalidUUID = "invalid_uuid"
	CodeInvalidEnum = "invalid_enum"
)

// Frontmatter is the typed form of a validated metadata block.
type Frontmatter struct {
	Title       string
	PublishDate string
	IsFeatured  bool
	ProjectIDs  []string
	TagIDs      []string
	Type        models.ArtifactType // empty when the document omits it
}

// Map returns the frontmatter in the shape it was decoded from.
func (f Frontmatter) Map() map[string]any {
	m := map[string]any{
		"title":        f.Title,
		"publish_date": f.PublishDate,
		"is_featured":  f.IsFeatured,
		"project_ids":  anyList(f.ProjectIDs),
		"tag_ids":      anyList(f.TagIDs),
	}
	if f.Type != "" {
		m["type"] = f.Type.Label()
	}
	return m
}

// PublishTime parses PublishDate. It returns the zero time for frontmatter
// that has not been validated.
func (f Frontmatter) PublishTime() time.Time {
	t, _ := parseDate(f.PublishDate)
	return t
}

// Issue is a single field-level validation failure. Field is a dotted path;
// array elements use their index ("tag_ids.1").
type Issue struct {
	Field   string
	Code    string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// Result distinguishes success from failure. Data is only populated when
// Success is true.
type Result struct {
	Success bool
	Data    Frontmatter
	Issues  []Issue
}

var frontmatterRules = validation.Map(
	validation.Key("title", validation.By(isString), validation.By(notBlank)),
	validation.Key("publish_date", validation.By(isString), validation.By(isoDate)),
	validation.Key("is_featured", validation.By(isBool)),
	validation.Key("project_ids", validation.By(uuidList)),
	validation.Key("tag_ids", validation.By(uuidList)),
	validation.Key("type", validation.By(isString), validation.By(artifactLabel)).Optional(),
).AllowExtraKeys()

// ValidateFrontmatter checks raw metadata against the artifact schema.
func ValidateFrontmatter(raw map[string]any) Result {
	if raw == nil {
		raw = map[string]any{}
	}
	if err := frontmatterRules.Validate(raw); err != nil {
		return Result{Issues: collectIssues("", err)}
	}
	fm := Frontmatter{
		Title:       raw["title"].(string),
		PublishDate: raw["publish_date"].(string),
		IsFeatured:  raw["is_featured"].(bool),
		ProjectIDs:  stringsOf(raw["project_ids"]),
		TagIDs:      stringsOf(raw["tag_ids"]),
	}
	if label, ok := raw["type"].(string); ok {
		fm.Type, _ = models.ArtifactTypeFromLabel(label)
	}
	return Result{Success: true, Data: fm}
}

// IsUUID reports whether s is a canonical RFC 4122 UUID of version 1 to 5.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	v := id.Version()
	return v >= 1 && v <= 5 && id.Variant() == uuid.RFC4122
}

func collectIssues(prefix string, err error) []Issue {
	var errs validation.Errors
	if errors.As(err, &errs) {
		var out []Issue
		for key, e := range errs {
			if e == nil {
				continue
			}
			out = append(out, collectIssues(joinField(prefix, key), e)...)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Field != out[j].Field {
				return out[i].Field < out[j].Field
			}
			return out[i].Code < out[j].Code
		})
		return out
	}
	issue := Issue{Field: prefix, Code: "invalid", Message: err.Error()}
	var verr validation.Error
	if errors.As(err, &verr) {
		issue.Code = verr.Code()
		issue.Message = verr.Message()
	}
	if issue.Code == validation.ErrKeyMissing.Code() {
		issue.Code = CodeRequired
		issue.Message = "is required"
	}
	return []Issue{issue}
}

func joinField(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func isString(value any) error {
	if _, ok := value.(string); !ok {
		return validation.NewError(CodeInvalidType, fmt.Sprintf("expected string, received %s", typeName(value)))
	}
	return nil
}

func notBlank(value any) error {
	if s, _ := value.(string); strings.TrimSpace(s) == "" {
		return validation.NewError(CodeTooSmall, "must not be empty")
	}
	return nil
}

func isBool(value any) error {
	if _, ok := value.(bool); !ok {
		return validation.NewError(CodeInvalidType, fmt.Sprintf("expected boolean, received %s", typeName(value)))
	}
	return nil
}

func isoDate(value any) error {
	s, _ := value.(string)
	if _, err := parseDate(s); err != nil {
		return validation.NewError(CodeInvalidDate, "must be an ISO 8601 date")
	}
	return nil
}

func artifactLabel(value any) error {
	s, _ := value.(string)
	if _, ok := models.ArtifactTypeFromLabel(s); !ok {
		labels := make([]string, len(models.ArtifactTypes))
		for i, t := range models.ArtifactTypes {
			labels[i] = t.Label()
		}
		return validation.NewError(CodeInvalidEnum, "must be one of "+strings.Join(labels, ", "))
	}
	return nil
}

func uuidList(value any) error {
	items, ok := listOf(value)
	if !ok {
		return validation.NewError(CodeInvalidType, fmt.Sprintf("expected array, received %s", typeName(value)))
	}
	errs := validation.Errors{}
	for i, item := range items {
		s, ok := item.(string)
		switch {
		case !ok:
			errs[strconv.Itoa(i)] = validation.NewError(CodeInvalidType, fmt.Sprintf("expected string, received %s", typeName(item)))
		case !IsUUID(s):
			errs[strconv.Itoa(i)] = validation.NewError(CodeInvalidUUID, "must be a valid UUID")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func listOf(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func stringsOf(value any) []string {
	items, _ := listOf(value)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func anyList(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any, map[any]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
