package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotArray     = errors.New("collection must be a JSON array of groups")
	ErrInvalidGroup = errors.New("invalid group")
)

var validate = validator.New()

// wireItem mirrors LinkItem with pointer fields so that missing keys can be
// told apart from empty values.
type wireItem struct {
	ID    *string `json:"id" validate:"required"`
	Title *string `json:"title" validate:"required"`
	URL   *string `json:"url" validate:"required"`
	Icon  string  `json:"icon"`
}

type wireGroup struct {
	ID        *string    `json:"id" validate:"required"`
	Title     *string    `json:"title" validate:"required"`
	Items     []wireItem `json:"items" validate:"required,dive"`
	PageIndex *int       `json:"pageIndex" validate:"required"`
}

// ParseStore strictly decodes a serialized collection.
// The input must be a JSON array whose elements carry every Group field,
// and ids must be unique.
func ParseStore(data []byte) (*Store, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var wire []wireGroup
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGroup, err)
	}

	store := &Store{Groups: make([]Group, 0, len(wire))}
	for i := range wire {
		if err := validate.Struct(&wire[i]); err != nil {
			return nil, fmt.Errorf("%w at index %d: %s", ErrInvalidGroup, i, formatValidationError(err))
		}
		store.Groups = append(store.Groups, wire[i].toGroup())
	}

	if err := store.Validate(); err != nil {
		return nil, err
	}
	return store, nil
}

func (w wireGroup) toGroup() Group {
	items := make([]LinkItem, len(w.Items))
	for i, it := range w.Items {
		items[i] = LinkItem{
			ID:    *it.ID,
			Title: *it.Title,
			URL:   *it.URL,
			Icon:  it.Icon,
		}
	}
	return Group{
		ID:        *w.ID,
		Title:     *w.Title,
		Items:     items,
		PageIndex: *w.PageIndex,
	}
}

// formatValidationError turns validator errors into a short readable message.
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.TrimPrefix(e.Namespace(), "wireGroup.")
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
