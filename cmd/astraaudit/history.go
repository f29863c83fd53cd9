package astraaudit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ranga291257/astra/internal/history"
)

func init() {
	var limit int
	var path string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent audit runs for this repository",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(path)
			records, err := history.NewLog(abs).Load()
			if err != nil {
				return fmt.Errorf("no audit history recorded for %s yet", abs)
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			tbl := tablewriter.NewTable(os.Stdout)
			tbl.Header("When", "Files", "Issues", "Errors", "Warnings", "Info", "Duration")
			for _, rec := range records {
				_ = tbl.Append(
					rec.Timestamp.Format("2006-01-02 15:04:05"),
					fmt.Sprintf("%d", rec.FilesAudited),
					fmt.Sprintf("%d", rec.TotalIssues),
					fmt.Sprintf("%d", rec.SeverityCounts["ERROR"]),
					fmt.Sprintf("%d", rec.SeverityCounts["WARNING"]),
					fmt.Sprintf("%d", rec.SeverityCounts["INFO"]),
					rec.Duration,
				)
			}
			return tbl.Render()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "show at most this many runs (0 = all)")
	cmd.Flags().StringVarP(&path, "path", "p", ".", "repository root the history belongs to")
	rootCmd.AddCommand(cmd)
}
