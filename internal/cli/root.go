package cli

import (
	"runtime"

	"github.com/c-a-ray/txtread/internal/core"
	"github.com/spf13/cobra"
)

// NewRootCmd constructs the root command for txtread
func NewRootCmd(cfg *core.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "txtread",
		Short: "Resolve, split and read delimited text files in parallel",
		Long: `txtread turns path specifications into a deduplicated set of files,
splits that set into balanced groups and streams each group on its own worker.

A path specification is a file, a directory (read recursively) or a pattern
whose last segments use '*' (any run of characters within a segment) and '?'
(exactly one character). The part before the first wildcard must be a
literal directory; it is where the walk starts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.FromFlags(cmd.Flags())
		},
	}

	rootCmd.PersistentFlags().String("job", "", "job file (yaml, json or toml) with path, encoding, compress, column, ...")
	rootCmd.PersistentFlags().StringP("delim", "d", ",", "field delimiter (single char)")
	rootCmd.PersistentFlags().StringP("encoding", "e", "utf-8", "input encoding")
	rootCmd.PersistentFlags().String("compress", "", "input compression: gzip, bzip2 or zip")
	rootCmd.PersistentFlags().Bool("skip-header", false, "skip the first row of every file")
	rootCmd.PersistentFlags().String("null-format", "", "field text that stands for null")
	rootCmd.PersistentFlags().IntP("advice", "n", runtime.NumCPU(), "requested number of parallel groups")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress summaries")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "also log every candidate file at debug level")
	rootCmd.PersistentFlags().Bool("lazy-quotes", false, "allow bare quotes inside unquoted fields")

	addFilesCmd(rootCmd, cfg)
	addReadCmd(rootCmd, cfg)
	addWatchCmd(rootCmd, cfg)
	addVersionCmd(rootCmd)

	return rootCmd
}

// applyArgs lets positional path specifications replace the job's paths
func applyArgs(cfg *core.Config, args []string) {
	if len(args) > 0 {
		cfg.Paths = args
	}
}
