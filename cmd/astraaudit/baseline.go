package astraaudit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ranga291257/astra/internal/auditor"
	"github.com/ranga291257/astra/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage the accepted-issues baseline",
	}

	var path string
	update := &cobra.Command{
		Use:   "update",
		Short: "Accept all current issues as the new baseline",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(path)
			res, err := auditor.New(auditor.Options{Root: abs, NoCache: flagNoCache}).Run()
			if err != nil {
				return err
			}
			target := filepath.Join(abs, report.DefaultBaselinePath)
			if err := report.SaveBaseline(target, res.Issues); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Baseline updated: %d issue(s) accepted in %s\n", len(res.Issues), target)
			return nil
		},
	}
	update.Flags().StringVarP(&path, "path", "p", ".", "tree to audit and baseline")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
