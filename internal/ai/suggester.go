package ai

import (
	"context"
	"strings"
	"time"

	"github.com/nikbrunner/mystart/internal/model"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Backend produces suggestions. *Client implements it.
type Backend interface {
	SuggestTitle(ctx context.Context, url string) (*TitleResponse, error)
	SuggestCategory(ctx context.Context, titles []string, groups string) (*CategoryResponse, error)
}

// Suggester wraps an optional Backend with a cache and deterministic
// fallbacks. It never fails: without a backend, or when the backend errors,
// the fallback value is returned.
type Suggester struct {
	backend Backend
	cache   *cache.Cache
	logger  *zap.Logger
	timeout time.Duration
}

// NewSuggester creates a Suggester. backend may be nil.
func NewSuggester(backend Backend, logger *zap.Logger, timeout time.Duration) *Suggester {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Suggester{
		backend: backend,
		cache:   cache.New(time.Hour, 10*time.Minute),
		logger:  logger,
		timeout: timeout,
	}
}

// Enabled reports whether a backend is configured.
func (s *Suggester) Enabled() bool {
	return s.backend != nil
}

// Title suggests a title for url. Falls back to the url's host.
func (s *Suggester) Title(ctx context.Context, url string) string {
	fallback := model.HostTitle(url)
	if s.backend == nil {
		return fallback
	}

	key := "title:" + url
	if v, ok := s.cache.Get(key); ok {
		return v.(string)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.backend.SuggestTitle(ctx, url)
	if err != nil || resp == nil || strings.TrimSpace(resp.Title) == "" {
		s.logger.Debug("title suggestion failed, using fallback",
			zap.String("url", url), zap.Error(err))
		return fallback
	}

	title := strings.TrimSpace(resp.Title)
	s.cache.Set(key, title, cache.DefaultExpiration)
	return title
}

// Category suggests a group name for the given link titles, which may be
// empty. Falls back to model.DefaultGroupTitle.
func (s *Suggester) Category(ctx context.Context, titles []string, groups string) string {
	if s.backend == nil {
		return model.DefaultGroupTitle
	}

	key := "category:" + strings.Join(titles, "\x00") + "\x00" + groups
	if v, ok := s.cache.Get(key); ok {
		return v.(string)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.backend.SuggestCategory(ctx, titles, groups)
	if err != nil || resp == nil || strings.TrimSpace(resp.Category) == "" {
		s.logger.Debug("category suggestion failed, using fallback",
			zap.Int("titles", len(titles)), zap.Error(err))
		return model.DefaultGroupTitle
	}

	category := strings.TrimSpace(resp.Category)
	s.cache.Set(key, category, cache.DefaultExpiration)
	return category
}
