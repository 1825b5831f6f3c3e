package notebook

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/darkhorsekelly/notebook/models"
)

type fakeTagCreator struct {
	err   error
	names []string
}

func (f *fakeTagCreator) CreateTag(_ context.Context, name string) (models.Tag, error) {
	f.names = append(f.names, name)
	if f.err != nil {
		return models.Tag{}, f.err
	}
	return models.Tag{ID: "id-" + name, Name: name}, nil
}

func TestCreateTagValidation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", MsgTagNameRequired},
		{"whitespace", "   \t", MsgTagNameRequired},
		{"too long", strings.Repeat("a", 51), MsgTagNameTooLong},
		{"too long multibyte", strings.Repeat("é", 51), MsgTagNameTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeTagCreator{}
			res := CreateTag(context.Background(), store, CreateTagInput{Name: tt.in}, nil)
			if res.OK() {
				t.Fatalf("expected failure, got tag %+v", res.Tag)
			}
			if res.Message != tt.want {
				t.Errorf("message = %q, want %q", res.Message, tt.want)
			}
			if len(store.names) != 0 {
				t.Errorf("store should not be called, got %v", store.names)
			}
		})
	}
}

func TestCreateTagBoundary(t *testing.T) {
	store := &fakeTagCreator{}
	name := strings.Repeat("é", 50)
	res := CreateTag(context.Background(), store, CreateTagInput{Name: name}, nil)
	if !res.OK() {
		t.Fatalf("50 character name rejected: %q", res.Message)
	}
}

func TestCreateTagTrimsName(t *testing.T) {
	store := &fakeTagCreator{}
	res := CreateTag(context.Background(), store, CreateTagInput{Name: "  Rust  "}, nil)
	if !res.OK() {
		t.Fatalf("unexpected failure: %q", res.Message)
	}
	if res.Tag.Name != "Rust" {
		t.Errorf("tag name = %q, want Rust", res.Tag.Name)
	}
	if res.Message != "" {
		t.Errorf("message should be empty on success, got %q", res.Message)
	}
}

func TestCreateTagDuplicate(t *testing.T) {
	tests := []struct {
		name         string
		first, again string
	}{
		{"ascii", "Next.js", " next.JS "},
		{"umlaut", "Über", "über"},
		{"sharp s", "Straße", "STRASSE"},
		{"greek", "Σίγμα", "σίγμα"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, cleanup := setupTestStore(t)
			defer cleanup()
			ctx := context.Background()

			first := CreateTag(ctx, s, CreateTagInput{Name: tt.first}, nil)
			if !first.OK() {
				t.Fatalf("first create failed: %q", first.Message)
			}
			dup := CreateTag(ctx, s, CreateTagInput{Name: tt.again}, nil)
			if dup.OK() {
				t.Fatalf("%q should be rejected as a duplicate of %q", tt.again, tt.first)
			}
			if dup.Message != MsgTagExists {
				t.Errorf("message = %q, want %q", dup.Message, MsgTagExists)
			}
			tags, err := s.ListTags(ctx)
			if err != nil {
				t.Fatalf("ListTags: %v", err)
			}
			if len(tags) != 1 {
				t.Errorf("got %d tags, want 1", len(tags))
			}
		})
	}
}

func TestCreateTagDatabaseError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := &fakeTagCreator{err: errors.New("disk I/O error")}

	res := CreateTag(context.Background(), store, CreateTagInput{Name: "Go"}, logger)
	if res.Message != MsgTagDBError {
		t.Errorf("message = %q, want %q", res.Message, MsgTagDBError)
	}
	if !strings.Contains(buf.String(), "disk I/O error") {
		t.Errorf("error not logged: %s", buf.String())
	}
}
