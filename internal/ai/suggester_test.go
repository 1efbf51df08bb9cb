package ai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nikbrunner/mystart/internal/ai"
	"github.com/nikbrunner/mystart/internal/model"
	"gotest.tools/v3/assert"
)

type fakeBackend struct {
	title    string
	category string
	err      error
	calls    int
}

func (f *fakeBackend) SuggestTitle(ctx context.Context, url string) (*ai.TitleResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ai.TitleResponse{Title: f.title}, nil
}

func (f *fakeBackend) SuggestCategory(ctx context.Context, titles []string, groups string) (*ai.CategoryResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ai.CategoryResponse{Category: f.category}, nil
}

func TestSuggester_NoBackendFallsBack(t *testing.T) {
	s := ai.NewSuggester(nil, nil, 0)

	assert.Assert(t, !s.Enabled())
	assert.Equal(t, s.Title(context.Background(), "https://www.example.com/path"), "example.com")
	assert.Equal(t, s.Category(context.Background(), []string{"a"}, ""), model.DefaultGroupTitle)
}

func TestSuggester_BackendErrorFallsBack(t *testing.T) {
	backend := &fakeBackend{err: errors.New("boom")}
	s := ai.NewSuggester(backend, nil, 0)

	assert.Equal(t, s.Title(context.Background(), "news.ycombinator.com"), "news.ycombinator.com")
	assert.Equal(t, s.Category(context.Background(), []string{"a"}, ""), model.DefaultGroupTitle)
}

func TestSuggester_BlankAnswerFallsBack(t *testing.T) {
	backend := &fakeBackend{title: "  ", category: ""}
	s := ai.NewSuggester(backend, nil, 0)

	assert.Equal(t, s.Title(context.Background(), "https://go.dev"), "go.dev")
	assert.Equal(t, s.Category(context.Background(), []string{"a"}, ""), model.DefaultGroupTitle)
}

func TestSuggester_CachesAnswers(t *testing.T) {
	backend := &fakeBackend{title: "Go", category: "Dev"}
	s := ai.NewSuggester(backend, nil, 0)

	for range 3 {
		assert.Equal(t, s.Title(context.Background(), "https://go.dev"), "Go")
	}
	assert.Equal(t, backend.calls, 1)

	for range 2 {
		assert.Equal(t, s.Category(context.Background(), []string{"Go", "Rust"}, ""), "Dev")
	}
	assert.Equal(t, backend.calls, 2)
}

func TestSuggester_CategoryWithoutTitlesAsksBackend(t *testing.T) {
	backend := &fakeBackend{category: "Work"}
	s := ai.NewSuggester(backend, nil, 0)

	assert.Equal(t, s.Category(context.Background(), []string{}, "Existing groups: none"), "Work")
	assert.Equal(t, backend.calls, 1)
}
