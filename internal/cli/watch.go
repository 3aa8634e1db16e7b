package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/hamidzr/flashcfg/internal/logger"
	"github.com/hamidzr/flashcfg/model"
	"github.com/hamidzr/flashcfg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the settings, then reload and print them again whenever the file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			target, err := s.fs.RealPath(s.store.Path())
			if err != nil {
				return model.NewExitError(model.MountFailed, err)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return errors.Wrap(err, "create watcher")
			}
			defer watcher.Close()
			if err := watcher.Add(filepath.Dir(target)); err != nil {
				return errors.Wrapf(err, "watch %s", filepath.Dir(target))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, s.store.SettingsJSON())
			return watchLoop(ctx, s.store, watcher.Events, watcher.Errors, target, out)
		},
	}
}

// watchLoop reloads st whenever target is written or created and prints the
// new settings. It returns when ctx is done or either channel closes.
func watchLoop(ctx context.Context, st *store.Store, events <-chan fsnotify.Event, errs <-chan error, target string, out io.Writer) error {
	log := logger.Component("watch")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := st.Reload(); err != nil {
				// a truncating writer can be caught mid-write; the next event retries
				log.Warnf("reload after %s failed: %v", ev.Op, err)
				continue
			}
			fmt.Fprintln(out, st.SettingsJSON())
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "watch")
		}
	}
}
