package astraaudit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ranga291257/astra/internal/auditor"
	"github.com/ranga291257/astra/internal/config"
	"github.com/ranga291257/astra/internal/gitio"
	"github.com/ranga291257/astra/internal/history"
	"github.com/ranga291257/astra/internal/logger"
	"github.com/ranga291257/astra/internal/report"
	"github.com/ranga291257/astra/internal/rules"
	"github.com/ranga291257/astra/internal/tui"
	"github.com/ranga291257/astra/internal/types"
	"github.com/ranga291257/astra/internal/update"
	"github.com/ranga291257/astra/internal/validate"
)

var (
	flagPath         string
	flagStaged       bool
	flagChangedFrom  string
	flagInclude      string
	flagExclude      string
	flagExcludeNames string
	flagExcludePaths string
	flagEnable       string
	flagDisable      string
	flagEntryFile    string
	flagFuncLen      int
	flagModErrLines  int
	flagModWarnLines int
	flagDocMarkers   string
	flagOutput       string
	flagStats        bool
	flagBaseline     string
	flagInteractive  bool
	flagUploadURL    string
	flagUploadToken  string
	flagNoUploadMeta bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "audit [files...]",
		Short: "Audit Python files for standards violations",
		RunE:  runAudit,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "tree or file to audit")
	cmd.Flags().BoolVar(&flagStaged, "staged", false, "audit only staged Python files")
	cmd.Flags().StringVar(&flagChangedFrom, "changed-from", "", "audit only Python files changed since this revision (e.g. main)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().StringVar(&flagExcludeNames, "exclude-names", "", "comma-separated file name substrings to skip (default test_)")
	cmd.Flags().StringVar(&flagExcludePaths, "exclude-paths", "", "comma-separated path substrings to skip (default __pycache__)")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these rules (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these rules (comma-separated IDs)")
	cmd.Flags().StringVar(&flagEntryFile, "entry-file", "", "entry module name the structure rule expects (default ASTRA.py)")
	cmd.Flags().IntVar(&flagFuncLen, "function-length-limit", 0, "max statement lines per function (default 50)")
	cmd.Flags().IntVar(&flagModErrLines, "module-error-lines", 0, "module line count that raises an ERROR (default 1000)")
	cmd.Flags().IntVar(&flagModWarnLines, "module-warn-lines", 0, "module line count that raises a WARNING (default 500)")
	cmd.Flags().StringVar(&flagDocMarkers, "doc-markers", "", "comma-separated docstring contract markers")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write report to this file instead of stdout")
	cmd.Flags().BoolVar(&flagStats, "stats", false, "append duration and file counts to the report")
	cmd.Flags().StringVar(&flagBaseline, "baseline", report.DefaultBaselinePath, "baseline file of accepted issues, resolved against the audit root")
	cmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "browse issues in the terminal UI instead of printing a report")
	cmd.Flags().StringVar(&flagUploadURL, "upload", "", "POST issues (JSON) to this URL after the audit")
	cmd.Flags().StringVar(&flagUploadToken, "upload-token", "", "Bearer token for upload auth")
	cmd.Flags().BoolVar(&flagNoUploadMeta, "no-upload-metadata", false, "do not include repo/commit/branch in upload envelope")
}

func runAudit(cmd *cobra.Command, args []string) error {
	abs, _ := filepath.Abs(flagPath)
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	logLevel := pickString(flagLogLevel, lcfg.LogLevel, gcfg.LogLevel)
	if err := validate.LogLevel(logLevel); err != nil {
		return err
	}
	log := logger.New(logLevel)

	failOn := pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn)
	if failOn == "" {
		failOn = string(types.SevError)
	}
	if err := validate.Severity(failOn); err != nil {
		return err
	}
	format := strings.ToLower(pickString(flagFormat, lcfg.Format, gcfg.Format))
	if format == "" {
		format = "text"
	}
	if err := validate.Format(format); err != nil {
		return err
	}
	enable := pickString(flagEnable, lcfg.Enable, gcfg.Enable)
	disable := pickString(flagDisable, lcfg.Disable, gcfg.Disable)
	if err := validate.RuleIDs(enable, rules.IDs()); err != nil {
		return err
	}
	if err := validate.RuleIDs(disable, rules.IDs()); err != nil {
		return err
	}
	include := pickString(flagInclude, lcfg.Include, gcfg.Include)
	exclude := pickString(flagExclude, lcfg.Exclude, gcfg.Exclude)
	for _, globs := range []string{include, exclude} {
		if err := validate.Globs(globs); err != nil {
			return err
		}
	}

	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	machine := format == "json" || format == "sarif"

	if !machine {
		noUpdate := pickBool(flagNoUpdateCheck, lcfg.NoUpdateCheck, gcfg.NoUpdateCheck)
		if latest, newer, _ := update.Check(version, noUpdate); newer && latest != "" {
			_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'astra-audit --self-update' to upgrade\n", latest)
		}
		if flagSelfUpdate {
			if err := selfUpdate(); err == nil {
				_, _ = fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
	}

	opts := auditor.Options{
		Root:                abs,
		EntryFile:           pickString(flagEntryFile, lcfg.EntryFile, gcfg.EntryFile),
		FunctionLengthLimit: pickInt(flagFuncLen, lcfg.FunctionLengthLimit, gcfg.FunctionLengthLimit),
		ModuleErrorLines:    pickInt(flagModErrLines, lcfg.ModuleErrorLines, gcfg.ModuleErrorLines),
		ModuleWarnLines:     pickInt(flagModWarnLines, lcfg.ModuleWarnLines, gcfg.ModuleWarnLines),
		DocMarkers:          splitCSV(pickString(flagDocMarkers, lcfg.DocMarkers, gcfg.DocMarkers)),
		IncludeGlobs:        include,
		ExcludeGlobs:        exclude,
		EnableRules:         enable,
		DisableRules:        disable,
		NoCache:             flagNoCache,
		Logger:              log,
	}
	if s := pickString(flagExcludeNames, lcfg.ExcludeNames, gcfg.ExcludeNames); s != "" {
		opts.ExcludeNameParts = splitCSV(s)
	}
	if s := pickString(flagExcludePaths, lcfg.ExcludePaths, gcfg.ExcludePaths); s != "" {
		opts.ExcludePathParts = splitCSV(s)
	}

	switch {
	case len(args) > 0:
		opts.Paths = args
	case flagStaged:
		paths, err := gitio.StagedFiles(abs)
		if err != nil {
			return err
		}
		opts.Paths = paths
		if len(paths) == 0 {
			_, _ = fmt.Fprintln(os.Stderr, "no staged Python files to audit")
		}
	case flagChangedFrom != "":
		paths, err := gitio.ChangedFiles(abs, flagChangedFrom)
		if err != nil {
			return err
		}
		opts.Paths = paths
		if len(paths) == 0 {
			_, _ = fmt.Fprintln(os.Stderr, "no changed Python files to audit")
		}
	}

	aud := auditor.New(opts)
	res, err := aud.Run()
	if err != nil {
		return fmt.Errorf("audit error: %w", err)
	}

	baselinePath := flagBaseline
	if !filepath.IsAbs(baselinePath) {
		baselinePath = filepath.Join(abs, baselinePath)
	}
	baseline, _ := report.LoadBaseline(baselinePath)
	newIssues := report.FilterNewIssues(res.Issues, baseline)
	if newIssues == nil {
		newIssues = []types.Issue{}
	} // no `null` in JSON

	recordRun(abs, res, newIssues)

	if flagInteractive && !machine {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode requires a terminal")
		}
		reaudit := func() ([]types.Issue, error) {
			r, err := auditor.New(opts).Run()
			if err != nil {
				return nil, err
			}
			base, _ := report.LoadBaseline(baselinePath)
			return report.FilterNewIssues(r.Issues, base), nil
		}
		if err := tui.Run(newIssues, reaudit); err != nil {
			return err
		}
	} else {
		out := io.Writer(os.Stdout)
		// color only makes sense on a terminal
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			noColor = true
		}
		if flagOutput != "" {
			f, err := os.Create(flagOutput)
			if err != nil {
				return fmt.Errorf("open output file: %w", err)
			}
			defer f.Close()
			out = f
			noColor = true
		}
		popts := report.PrintOptions{NoColor: noColor}
		if flagStats {
			popts.Duration = res.Duration
			popts.FilesScanned = res.FilesScanned
		}
		switch format {
		case "sarif":
			if err := report.WriteSARIFWithStats(out, newIssues, map[string]int{"filesAudited": res.FilesScanned}); err != nil {
				return fmt.Errorf("sarif error: %w", err)
			}
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(newIssues); err != nil {
				return err
			}
		case "table":
			report.PrintTable(out, newIssues, popts)
		default:
			report.PrintText(out, newIssues, popts)
		}
	}

	// Optional upload step: do not fail the audit on upload errors
	if flagUploadURL != "" {
		if err := uploadIssues(abs, flagUploadURL, flagUploadToken, flagNoUploadMeta, convertIssues(newIssues)); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "upload warning:", err)
		}
	}

	if cmd.Flags().Changed("enable") || cmd.Flags().Changed("disable") {
		_, _ = fmt.Fprintf(os.Stderr, "rules active: %s\n", activeSetSummary(aud))
	}

	if report.ShouldFail(newIssues, types.Severity(strings.ToUpper(failOn))) {
		os.Exit(1)
	}
	return nil
}

// recordRun appends the run to the repo-local history log. Best effort:
// a read-only tree must not fail the audit.
func recordRun(root string, res auditor.Result, newIssues []types.Issue) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return
	}
	counts := map[string]int{}
	for _, iss := range newIssues {
		counts[string(iss.Severity)]++
	}
	_ = history.NewLog(root).Append(history.RunRecord{
		Root:           root,
		TotalIssues:    len(newIssues),
		SeverityCounts: counts,
		FilesAudited:   res.FilesScanned,
		Duration:       res.Duration.Round(time.Millisecond).String(),
	})
}

func activeSetSummary(aud *auditor.Auditor) string {
	var ids []string
	for _, r := range aud.Rules() {
		ids = append(ids, r.ID())
	}
	return strings.Join(ids, ",")
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
