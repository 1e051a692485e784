package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ucm/internal/logging"
	"github.com/thoreinstein/ucm/internal/watcher"
	"github.com/thoreinstein/ucm/pkg/uci"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the config directory and report changes",
	Long: `Watch monitors the confdir for modifications to config files, reloads
each changed package and reports whether it still parses. Runs until
interrupted.`,
	Example: `  ucm watch`,
	Args:    cobra.NoArgs,
	RunE:    runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := logging.FromContext(cmd.Context())
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(confDirFlag, log, func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			fmt.Fprintf(out, "%s: removed\n", ev.Name)
			return
		}
		reloadCtx := uci.New(uci.WithStore(confStore()))
		if _, err := reloadCtx.Load(ev.Name); err != nil {
			fmt.Fprintf(out, "%s: %v\n", ev.Name, err)
			return
		}
		fmt.Fprintf(out, "%s: reloaded\n", ev.Name)
	}, watcher.WithAccept(uci.ValidName))
	if err != nil {
		return err
	}

	if err := w.Start(ctx); err != nil {
		w.Close()
		return err
	}
	log.Info("watching config directory", "dir", confDirFlag)

	<-ctx.Done()
	return w.Close()
}
