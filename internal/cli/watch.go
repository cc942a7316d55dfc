package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/c-a-ray/txtread/internal/core"
	"github.com/c-a-ray/txtread/internal/ops"
	"github.com/c-a-ray/txtread/internal/watch"
	"github.com/spf13/cobra"
)

func addWatchCmd(root *cobra.Command, cfg *core.Config) {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [specs...]",
		Short: "Print a new partition plan whenever the source directories change",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyArgs(cfg, args)
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := core.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			out := cmd.OutOrStdout()
			table := isTerminal(out)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := watch.New(watch.Options{
				Config:   cfg,
				Advice:   cfg.Advice,
				Debounce: debounce,
				OnPlan: func(groups []ops.Group) error {
					fmt.Fprintf(out, "# %s\n", time.Now().Format(time.RFC3339))
					return ops.WritePlan(out, groups, table)
				},
				OnError: func(err error) {
					fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] %v\n", err)
				},
				Logger: log,
			})
			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "quiet period before re-resolving")

	root.AddCommand(cmd)
}
