package astraaudit

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ranga291257/astra/internal/auditor"
	"github.com/ranga291257/astra/internal/report"
	"github.com/ranga291257/astra/internal/rules"
)

func init() {
	cmd := &cobra.Command{
		Use:   "test-rule <id>",
		Short: "Run a single rule against provided source (stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id := strings.ToUpper(args[0])
			known := false
			for _, k := range rules.IDs() {
				if k == id {
					known = true
					break
				}
			}
			if !known {
				fmt.Fprintf(os.Stderr, "unknown rule id: %s\n", args[0])
				fmt.Fprintf(os.Stderr, "available: %s\n", strings.Join(rules.IDs(), ", "))
				os.Exit(2)
			}
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			aud := auditor.New(auditor.Options{EnableRules: id})
			issues := aud.AuditBytes(data, "stdin")
			// Pretty print using current table renderer
			report.PrintTable(os.Stdout, issues, report.PrintOptions{})
			return nil
		},
	}
	// help message includes rule IDs
	cmd.Long = "Available rules: " + strings.Join(rules.IDs(), ", ")
	rootCmd.AddCommand(cmd)
}
