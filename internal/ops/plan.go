package ops

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteFiles prints one resolved path per line
func WriteFiles(w io.Writer, files []string) error {
	for _, f := range files {
		if _, err := fmt.Fprintln(w, f); err != nil {
			return err
		}
	}
	return nil
}

// WritePlan prints the partition plan. With table set the plan is aligned
// for a terminal; otherwise each line is "<group>\t<path>" for scripts.
func WritePlan(w io.Writer, groups []Group, table bool) error {
	if !table {
		for _, g := range groups {
			for _, f := range g.Files {
				if _, err := fmt.Fprintf(w, "%d\t%s\n", g.ID, f); err != nil {
					return err
				}
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tFILES\tPATH")
	fmt.Fprintln(tw, "-----\t-----\t----")
	for _, g := range groups {
		for i, f := range g.Files {
			if i == 0 {
				fmt.Fprintf(tw, "%d\t%d\t%s\n", g.ID, len(g.Files), f)
				continue
			}
			fmt.Fprintf(tw, "\t\t%s\n", f)
		}
	}
	return tw.Flush()
}
