package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quill-editor/quill/internal/config"
	"github.com/quill-editor/quill/internal/config/notify"
	"github.com/quill-editor/quill/internal/config/watcher"
	"github.com/quill-editor/quill/internal/logging"
)

// watchCmd watches the configuration directory and logs live reloads.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the configuration directory and log reloads",
	RunE: func(cmd *cobra.Command, args []string) error {
		notifier := notify.New()
		notifier.Subscribe(func(change notify.Change) {
			logging.Info().
				Str("kind", change.Kind.String()).
				Str("scope", change.Scope).
				Msg("configuration changed")
		})

		m, err := newManager(config.WithNotifier(notifier))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w := watcher.New(m.ConfigDir(), config.Extension, m.HandleFileEvent)
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()

		logging.Info().Str("dir", m.ConfigDir()).Msg("watching configuration directory")
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
