package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/hamidzr/flashcfg/pkg/flashfs"
	"github.com/hamidzr/flashcfg/store"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatchedStore(t *testing.T, content string) (*store.Store, string) {
	t.Helper()
	root := t.TempDir()
	target := filepath.Join(root, "config.json")
	require.NoError(t, os.WriteFile(target, []byte(content), 0o644))

	log, _ := test.NewNullLogger()
	st := store.New(flashfs.NewDirFS(root), store.WithLogger(log))
	require.NoError(t, st.Begin())

	fsys := flashfs.NewDirFS(root)
	require.NoError(t, fsys.Mount())
	hostPath, err := fsys.RealPath("/config.json")
	require.NoError(t, err)
	require.Equal(t, target, hostPath)
	return st, target
}

func TestWatchLoopReloadsOnWrite(t *testing.T) {
	st, target := newWatchedStore(t, `{"mode":"auto"}`)
	require.NoError(t, os.WriteFile(target, []byte(`{"mode":"eco"}`), 0o644))

	events := make(chan fsnotify.Event, 3)
	events <- fsnotify.Event{Name: filepath.Join(filepath.Dir(target), "other.json"), Op: fsnotify.Write}
	events <- fsnotify.Event{Name: target, Op: fsnotify.Chmod}
	events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
	close(events)

	var out bytes.Buffer
	require.NoError(t, watchLoop(context.Background(), st, events, nil, target, &out))

	assert.Equal(t, "{\"mode\":\"eco\"}\n", out.String())
	assert.Equal(t, "eco", st.GetString("mode", ""))
}

func TestWatchLoopKeepsStateOnBadWrite(t *testing.T) {
	st, target := newWatchedStore(t, `{"mode":"auto"}`)
	require.NoError(t, os.WriteFile(target, []byte(`{"mode":`), 0o644))

	events := make(chan fsnotify.Event, 1)
	events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
	close(events)

	var out bytes.Buffer
	require.NoError(t, watchLoop(context.Background(), st, events, nil, target, &out))

	assert.Empty(t, out.String())
	assert.Equal(t, "auto", st.GetString("mode", ""))
}

func TestWatchLoopStops(t *testing.T) {
	st, target := newWatchedStore(t, `{}`)

	t.Run("watcher error", func(t *testing.T) {
		errs := make(chan error, 1)
		errs <- errors.New("overflow")

		err := watchLoop(context.Background(), st, make(chan fsnotify.Event), errs, target, &bytes.Buffer{})
		assert.ErrorContains(t, err, "overflow")
	})

	t.Run("context cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := watchLoop(ctx, st, make(chan fsnotify.Event), make(chan error), target, &bytes.Buffer{})
		assert.NoError(t, err)
	})
}
