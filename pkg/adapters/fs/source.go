package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/inkpress/inkpress/pkg/core"
)

// DefaultSystemDir is the hidden directory holding the parse index.
const DefaultSystemDir = ".inkpress"

// DefaultPatterns match every supported content unit.
var DefaultPatterns = []string{"**/*.md", "**/*.yaml", "**/*.yml", "**/*.json"}

// Config holds the configuration for the filesystem source.
type Config struct {
	Path         string
	Patterns     []string // doublestar globs, relative to Path
	SystemDir    string   // e.g. ".inkpress"
	Strict       bool
	Logger       *slog.Logger
	ErrorHandler func(error) // invoked for runtime watcher failures
	EventBuffer  int
}

// Source implements core.Source over a directory of content units.
// It is read-only toward the content; the only thing it ever writes is
// the parse index under the system directory.
type Source struct {
	Path string

	config      Config
	serializers map[string]Serializer
	cache       *cache

	mu            sync.RWMutex
	watcherActive bool
}

var (
	_ core.Source    = (*Source)(nil)
	_ core.Watchable = (*Source)(nil)
)

// NewSource creates a new filesystem-backed source.
func NewSource(config Config) *Source {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if len(config.Patterns) == 0 {
		config.Patterns = DefaultPatterns
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 100
	}
	return &Source{
		Path:        config.Path,
		config:      config,
		serializers: DefaultSerializers(config.Strict),
		cache:       newCache(config.Path, config.SystemDir),
	}
}

// LoadAll performs the one-shot batch read of the content directory.
//
// Workflow:
//  1. Verify the directory is enumerable (fatal core.ErrSourceUnavailable
//     if not; no partial result escapes).
//  2. Load the parse index from disk.
//  3. Walk the tree, skipping .git and the system dir, keeping files that
//     match a configured pattern.
//  4. For each unit: index hit (mtime match) recovers the body with a
//     textual split; miss does the full parse + validation. Units with
//     malformed metadata become skip reports, never load failures.
//  5. Prune and persist the index.
func (s *Source) LoadAll(ctx context.Context) ([]core.Post, []core.Skip, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", core.ErrSourceUnavailable, s.Path)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s is not a directory", core.ErrSourceUnavailable, s.Path)
	}

	if err := s.cache.Load(); err != nil && s.config.Logger != nil {
		s.config.Logger.Debug("index load failed, starting fresh", "error", err)
	}

	var (
		posts []core.Post
		skips []core.Skip
	)
	seen := make(map[string]bool)

	err = filepath.WalkDir(s.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == s.Path {
				return err
			}
			// A subtree we cannot read is a per-unit problem, not a
			// whole-load failure.
			rel, relErr := filepath.Rel(s.Path, path)
			if relErr != nil {
				rel = path
			}
			skips = append(skips, core.Skip{ID: filepath.ToSlash(rel), Reason: err.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == s.config.SystemDir {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(s.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if !s.matches(relPath) {
			return nil
		}

		ext := filepath.Ext(d.Name())
		serializer, ok := s.serializers[ext]
		if !ok {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			return nil
		}
		mtime := fileInfo.ModTime()
		seen[relPath] = true

		id := unitID(relPath, ext)

		post, err := s.loadUnit(path, relPath, ext, id, serializer, mtime)
		if err != nil {
			skips = append(skips, core.Skip{ID: id, Reason: skipReason(err)})
			return nil
		}

		posts = append(posts, post)
		return nil
	})

	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err)
	}

	s.cache.Prune(seen)
	if err := s.cache.Save(); err != nil && s.config.Logger != nil {
		s.config.Logger.Debug("index save failed", "error", err)
	}

	return posts, skips, nil
}

// loadUnit turns a single file into a Post, using the index when fresh.
func (s *Source) loadUnit(path, relPath, ext, id string, serializer Serializer, mtime time.Time) (core.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Post{}, err
	}

	// Index fast path, Markdown only: the cached entry carries the
	// validated fields and a textual split recovers the body.
	if ext == ".md" {
		if entry, hit := s.cache.Get(relPath, mtime); hit {
			_, body, _, splitErr := splitFrontMatter(data)
			if splitErr == nil {
				return core.Post{
					ID:    entry.ID,
					Title: entry.Title,
					Date:  entry.Date,
					Tags:  entry.Tags,
					Meta:  entry.Meta,
					Body:  body,
				}, nil
			}
		}
	}

	u, err := serializer.Parse(bytes.NewReader(data))
	if err != nil {
		return core.Post{}, &core.MalformedMetadataError{ID: id, Reason: "unparseable front matter", Err: err}
	}

	post, err := buildPost(id, u)
	if err != nil {
		return core.Post{}, err
	}

	if ext == ".md" {
		s.cache.Set(relPath, &indexEntry{
			ID:           post.ID,
			Title:        post.Title,
			Date:         post.Date,
			Tags:         post.Tags,
			Meta:         post.Meta,
			LastModified: mtime,
		})
	}

	return post, nil
}

// matches reports whether relPath matches at least one configured pattern.
func (s *Source) matches(relPath string) bool {
	for _, pattern := range s.config.Patterns {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

// unitID derives the post ID from the relative path. Markdown drops the
// extension; other formats keep it so IDs stay unambiguous.
func unitID(relPath, ext string) string {
	if ext == ".md" {
		return strings.TrimSuffix(relPath, ext)
	}
	return relPath
}

// skipReason extracts a compact human-readable reason from a unit error.
func skipReason(err error) string {
	var malformed *core.MalformedMetadataError
	if errors.As(err, &malformed) {
		return malformed.Reason
	}
	return err.Error()
}
