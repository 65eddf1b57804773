package core

import (
	"context"
	"errors"
	"log/slog"
)

// Service handles the business logic for loading and querying posts.
type Service struct {
	source Source
	logger *slog.Logger
}

// NewService creates a new Service. A nil logger disables logging.
func NewService(source Source, logger *slog.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// Load performs the one-shot batch read of the content source and builds
// the immutable store for this run.
//
// Per-unit metadata failures are reported in the summary and logged; they
// never abort the load. Only an unreachable source aborts: the error wraps
// ErrSourceUnavailable and no partial store is returned.
func (s *Service) Load(ctx context.Context) (*Store, Summary, error) {
	posts, skips, err := s.source.LoadAll(ctx)
	if err != nil {
		return nil, Summary{}, err
	}

	summary := Summary{
		Found:   len(posts) + len(skips),
		Loaded:  len(posts),
		Skipped: skips,
	}

	if s.logger != nil {
		for _, sk := range skips {
			s.logger.Warn("skipped content unit", "id", sk.ID, "reason", sk.Reason)
		}
		s.logger.Info("store loaded",
			"found", summary.Found,
			"loaded", summary.Loaded,
			"skipped", len(summary.Skipped),
		)
	}

	return NewStore(posts), summary, nil
}

// Watch observes changes in the content source if supported.
// An event means a fresh Load would see different content.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.source.(Watchable)
	if !ok {
		return nil, errors.New("source does not support watching")
	}
	return w.Watch(ctx, pattern)
}
