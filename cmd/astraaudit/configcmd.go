package astraaudit

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ranga291257/astra/internal/config"
	"github.com/ranga291257/astra/internal/rules"
	"github.com/ranga291257/astra/internal/validate"
)

var (
	cfgPreset    string
	cfgOutput    string
	cfgFailOn    string
	cfgFormat    string
	cfgEnable    string
	cfgDisable   string
	cfgEntryFile string
	cfgFuncLen   int
	cfgModErr    int
	cfgModWarn   int
	cfgNoColor   bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .astra-audit.yml with selected rules and thresholds",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgPreset, "preset", "standard", "threshold preset: strict | standard | lenient")
	initCmd.Flags().StringVar(&cfgOutput, "output", ".astra-audit.yml", "output file path")
	initCmd.Flags().StringVar(&cfgFailOn, "fail-on", "", "severity threshold that fails the audit")
	initCmd.Flags().StringVar(&cfgFormat, "format", "", "default report format")
	initCmd.Flags().StringVar(&cfgEnable, "enable", "", "comma-separated rule IDs to enable (overrides preset if set)")
	initCmd.Flags().StringVar(&cfgDisable, "disable", "", "comma-separated rule IDs to disable")
	initCmd.Flags().StringVar(&cfgEntryFile, "entry-file", "", "entry module the structure rule expects")
	initCmd.Flags().IntVar(&cfgFuncLen, "function-length-limit", 0, "max statement lines per function")
	initCmd.Flags().IntVar(&cfgModErr, "module-error-lines", 0, "module line count that raises an ERROR")
	initCmd.Flags().IntVar(&cfgModWarn, "module-warn-lines", 0, "module line count that raises a WARNING")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	funcLen, modErr, modWarn := cfgFuncLen, cfgModErr, cfgModWarn
	failOn := cfgFailOn
	switch strings.ToLower(cfgPreset) {
	case "strict":
		if funcLen == 0 {
			funcLen = 30
		}
		if modErr == 0 {
			modErr = 800
		}
		if modWarn == 0 {
			modWarn = 400
		}
		if failOn == "" {
			failOn = "WARNING"
		}
	case "lenient":
		if funcLen == 0 {
			funcLen = 80
		}
		if modErr == 0 {
			modErr = 1500
		}
		if modWarn == 0 {
			modWarn = 800
		}
		if failOn == "" {
			failOn = "ERROR"
		}
	case "standard":
		// rule defaults apply
	default:
		return fmt.Errorf("unknown --preset. Supported: strict, standard, lenient")
	}

	if failOn != "" {
		if err := validate.Severity(failOn); err != nil {
			return err
		}
	}
	if cfgFormat != "" {
		if err := validate.Format(cfgFormat); err != nil {
			return err
		}
	}
	for _, ids := range []string{cfgEnable, cfgDisable} {
		if err := validate.RuleIDs(ids, rules.IDs()); err != nil {
			return err
		}
	}

	fc := config.FileConfig{
		FailOn:              optStrPtr(failOn),
		Format:              optStrPtr(cfgFormat),
		NoColor:             boolPtr(cfgNoColor),
		EntryFile:           optStrPtr(cfgEntryFile),
		FunctionLengthLimit: intPtr(funcLen),
		ModuleErrorLines:    intPtr(modErr),
		ModuleWarnLines:     intPtr(modWarn),
		Enable:              optStrPtr(cfgEnable),
		Disable:             optStrPtr(cfgDisable),
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Println("Wrote", cfgOutput)
	return nil
}

func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func boolPtr(v bool) *bool { return &v }
