package cli

import (
	"os"

	"github.com/c-a-ray/txtread/internal/core"
	"github.com/c-a-ray/txtread/internal/ops"
	"github.com/spf13/cobra"
)

func addFilesCmd(root *cobra.Command, cfg *core.Config) {
	files := &cobra.Command{
		Use:   "files",
		Short: "File-level helpers",
	}

	files.AddCommand(newFilesResolveCmd(cfg))
	files.AddCommand(newFilesSplitCmd(cfg))

	root.AddCommand(files)
}

func newFilesResolveCmd(cfg *core.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [specs...]",
		Short: "List the files the path specifications resolve to",
		Example: `
txtread files resolve '/data/in/*.csv' /data/extra
txtread files resolve --job job.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyArgs(cfg, args)
			log := core.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

			list, err := core.ResolvePaths(cfg.Paths, core.ResolveOpts{Logger: log})
			if err != nil {
				return err
			}
			if err := ops.WriteFiles(cmd.OutOrStdout(), list); err != nil {
				return err
			}
			if len(list) == 0 {
				os.Exit(2)
			}
			return nil
		},
	}

	return cmd
}

func newFilesSplitCmd(cfg *core.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split [specs...]",
		Short: "Show how the resolved files are divided into groups",
		Example: `
txtread files split -n 4 '/data/in/*.csv'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyArgs(cfg, args)
			log := core.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

			job, err := ops.Prepare(ops.PrepareOpts{Config: cfg, Logger: log})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return ops.WritePlan(out, job.Split(cfg.Advice), isTerminal(out))
		},
	}

	return cmd
}
