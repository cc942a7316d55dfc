package cli

import (
	"fmt"

	"github.com/c-a-ray/txtread/internal/core"
	"github.com/c-a-ray/txtread/internal/ops"
	"github.com/spf13/cobra"
)

func addReadCmd(root *cobra.Command, cfg *core.Config) {
	var outDelimStr string

	cmd := &cobra.Command{
		Use:   "read [flags] [specs...]",
		Short: "Read every resolved file and write its records to stdout",
		Example: `
# all csv files of a directory, four groups in parallel, as TSV
txtread read -n 4 --out-delim tab '/data/in/*.csv'

# gzip'd GBK files described by a job file
txtread read --job job.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyArgs(cfg, args)
			outDelim, err := core.ParseDelim(outDelimStr)
			if err != nil {
				return fmt.Errorf("--out-delim: %w", err)
			}
			log := core.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

			job, err := ops.Prepare(ops.PrepareOpts{Config: cfg, Logger: log})
			if err != nil {
				return err
			}
			groups := job.Split(cfg.Advice)

			sink := ops.NewCSVSink(cmd.OutOrStdout(), outDelim)
			st, err := ops.ReadAll(groups, ops.ReadOpts{Config: cfg, Sink: sink, Logger: log})

			if !cfg.Quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "\nRead %d of %d files in %d groups, %d records. Dirty: %d\n",
					st.Files, len(job.Files), len(groups), st.Records, st.Dirty)
			}

			return err
		},
	}

	cmd.Flags().StringVar(&outDelimStr, "out-delim", "comma", "output field delimiter (single char or tab, comma, pipe)")

	root.AddCommand(cmd)
}
