package core_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/pkg/core"
)

// fakeSource is a canned core.Source for service tests.
type fakeSource struct {
	posts []core.Post
	skips []core.Skip
	err   error
}

func (f *fakeSource) LoadAll(ctx context.Context) ([]core.Post, []core.Skip, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.posts, f.skips, nil
}

func TestServiceLoad(t *testing.T) {
	t.Run("Builds Store and Summary", func(t *testing.T) {
		source := &fakeSource{
			posts: samplePosts(),
			skips: []core.Skip{{ID: "broken", Reason: "missing date"}},
		}
		svc := core.NewService(source, slog.New(slog.DiscardHandler))

		store, summary, err := svc.Load(context.Background())
		require.NoError(t, err)
		require.NotNil(t, store)

		assert.Equal(t, 4, summary.Found)
		assert.Equal(t, 3, summary.Loaded)
		require.Len(t, summary.Skipped, 1)
		assert.Equal(t, "broken", summary.Skipped[0].ID)
		assert.Equal(t, "missing date", summary.Skipped[0].Reason)
		assert.Equal(t, 3, store.Len())
	})

	t.Run("Unavailable Source Returns No Partial Store", func(t *testing.T) {
		source := &fakeSource{
			err: fmt.Errorf("%w: /missing", core.ErrSourceUnavailable),
		}
		svc := core.NewService(source, nil)

		store, _, err := svc.Load(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrSourceUnavailable))
		assert.Nil(t, store)
	})
}

func TestServiceWatch(t *testing.T) {
	t.Run("Unsupported Source", func(t *testing.T) {
		svc := core.NewService(&fakeSource{}, nil)

		_, err := svc.Watch(context.Background(), "**/*")
		require.Error(t, err)
	})
}

func TestServiceIntrospection(t *testing.T) {
	svc := core.NewService(&fakeSource{}, nil)

	state, ok := svc.State().(core.ServiceState)
	require.True(t, ok)
	assert.False(t, state.Watchable)
	assert.Equal(t, "service", svc.ComponentType())
}
