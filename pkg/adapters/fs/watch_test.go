package fs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes/pkg/adapters/fs"
	"github.com/aretw0/notes/pkg/core"
)

func nextEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "event channel closed early")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
		return core.Event{}
	}
}

func TestWatch(t *testing.T) {
	repo, _, _ := setupRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "*")
	require.NoError(t, err)

	n := mustNote(t, "Watched")
	require.NoError(t, repo.Save(ctx, n))

	e := nextEvent(t, events)
	assert.Equal(t, core.EventCreate, e.Type)
	assert.Equal(t, n.ID, e.ID)

	require.NoError(t, repo.Delete(ctx, n.ID))
	for {
		e = nextEvent(t, events)
		if e.Type == core.EventDelete {
			break
		}
	}
	assert.Equal(t, n.ID, e.ID)

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				state := repo.State().(fs.RepositoryState)
				assert.False(t, state.WatcherActive)
				return
			}
		case <-deadline:
			t.Fatal("event channel was not closed after cancel")
		}
	}
}

func TestWatch_InvalidPattern(t *testing.T) {
	repo, _, _ := setupRepo(t)

	_, err := repo.Watch(context.Background(), "[")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
