package cli

import (
	"fmt"

	"github.com/hamidzr/flashcfg/internal/config"
	"github.com/hamidzr/flashcfg/internal/logger"
	"github.com/hamidzr/flashcfg/model"
	"github.com/hamidzr/flashcfg/pkg/flashfs"
	"github.com/hamidzr/flashcfg/pkg/jsondoc"
	"github.com/hamidzr/flashcfg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// session is everything a subcommand needs once flags are parsed.
type session struct {
	cfg   *config.Config
	fs    *flashfs.AferoFS
	store *store.Store
}

func InitCLI() *cobra.Command {
	RootCmd := &cobra.Command{
		Use:           "flashcfg",
		Short:         "flashcfg reads and writes a JSON settings file on a flash filesystem",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			initConfig, _ := cmd.Flags().GetBool("init-config")
			if !initConfig {
				return cmd.Help()
			}
			configPath, err := config.InitConfigFile()
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file created at: %s\n", configPath)
			return nil
		},
	}

	config.BindFlags(RootCmd)

	RootCmd.AddCommand(
		newGetCmd(),
		newSetCmd(),
		newRmCmd(),
		newClearCmd(),
		newKeysCmd(),
		newDumpCmd(),
		newImportCmd(),
		newQueryCmd(),
		newWatchCmd(),
	)

	return RootCmd
}

// openStore loads the configuration, sets up logging and begins the store.
func openStore(cmd *cobra.Command) (*session, error) {
	cfg, err := config.InitConfig(cmd)
	if err != nil {
		return nil, model.NewExitError(model.InvalidInput, fmt.Errorf("failed to initialize config: %w", err))
	}
	if err := logger.SetupLogger(cfg.LogLevel); err != nil {
		return nil, model.NewExitError(model.InvalidInput, err)
	}

	fsys := flashfs.NewDirFS(cfg.Root, flashfs.WithFormatOnFail(cfg.FormatOnFail))
	st := store.New(fsys, store.WithPath(cfg.File), store.WithCapacity(cfg.Capacity))
	if err := st.Begin(); err != nil {
		return nil, exitError(err)
	}
	return &session{cfg: cfg, fs: fsys, store: st}, nil
}

// exitError attaches the exit code matching err.
func exitError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrMount):
		return model.NewExitError(model.MountFailed, err)
	case jsondoc.IsParseError(err):
		return model.NewExitError(model.InvalidInput, err)
	default:
		return err
	}
}
