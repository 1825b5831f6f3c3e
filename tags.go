package notebook

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/darkhorsekelly/notebook/models"
)

// Tag action messages shown to the user.
const (
	MsgTagNameRequired = "Tag name is required"
	MsgTagNameTooLong  = "Tag name must be less than 50 characters"
	MsgTagExists       = "Tag with this name already exists."
	MsgTagDBError      = "Database Error: Failed to create tag."
)

const maxTagNameLen = 50

// TagCreator is the storage used by CreateTag. *Store implements it.
type TagCreator interface {
	CreateTag(ctx context.Context, name string) (models.Tag, error)
}

// CreateTagInput is the form submitted to create a tag.
type CreateTagInput struct {
	Name string
}

// Validate checks the trimmed name.
func (in CreateTagInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	return validation.Validate(name,
		validation.Required.Error(MsgTagNameRequired),
		validation.By(func(any) error {
			if utf8.RuneCountInString(name) > maxTagNameLen {
				return errors.New(MsgTagNameTooLong)
			}
			return nil
		}),
	)
}

// CreateTagResult reports the outcome of CreateTag. Exactly one of Tag and
// Message is set.
type CreateTagResult struct {
	Tag     *models.Tag
	Message string
}

// OK reports whether the tag was created.
func (r CreateTagResult) OK() bool { return r.Tag != nil }

// CreateTag validates in and stores a new tag. Failures are reported through
// the result message; database errors are logged with logger.
func CreateTag(ctx context.Context, store TagCreator, in CreateTagInput, logger *slog.Logger) CreateTagResult {
	if logger == nil {
		logger = slog.Default()
	}
	if err := in.Validate(); err != nil {
		return CreateTagResult{Message: err.Error()}
	}
	name := strings.TrimSpace(in.Name)
	tag, err := store.CreateTag(ctx, name)
	switch {
	case errors.Is(err, ErrDuplicateTag):
		return CreateTagResult{Message: MsgTagExists}
	case err != nil:
		logger.ErrorContext(ctx, "create tag", "name", name, "err", err)
		return CreateTagResult{Message: MsgTagDBError}
	}
	logger.InfoContext(ctx, "tag created", "id", tag.ID, "name", tag.Name)
	return CreateTagResult{Tag: &tag}
}
