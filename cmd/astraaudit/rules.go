package astraaudit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ranga291257/astra/internal/rules"
)

func init() {
	var long bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Run: func(_ *cobra.Command, _ []string) {
			for _, info := range rules.Catalog() {
				if long {
					fmt.Printf("%-18s %-8s %s\n", info.ID, info.Severity, info.Summary)
				} else {
					fmt.Println(info.ID)
				}
			}
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "include severity and description")
	rootCmd.AddCommand(cmd)
}
