package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dynatype/disinherit"
)

var lintCmd = &cobra.Command{
	Use:   "lint [MODULE...]",
	Short: "Check hierarchy documents for issues",
	Long: `Load the named modules, or every module the sources list, and report
the diagnostics the load produces.

Severity levels:
  0 = fatal       Cannot continue
  1 = severe      Semantics changed to continue
  2 = error       Should correct
  3 = minor       Minor issue
  4 = style       Style recommendation
  5 = warning     Might be correct
  6 = info        Informational

Exit codes: 0 clean, 1 findings at or above the failure threshold,
2 load failure.`,
	Example: `  disinherit lint -p ./schemas
  disinherit lint -p ./schemas core app
  disinherit lint -p ./schemas --level 5 --fail-on 1
  disinherit lint -p ./schemas --ignore "exempt-*"
  disinherit lint --codes`,
	RunE: runLint,
}

var (
	lintLevel   int
	lintFailOn  int
	lintIgnore  []string
	lintSummary bool
	lintQuiet   bool
	lintCodes   bool
)

func init() {
	lintCmd.Flags().IntVar(&lintLevel, "level", int(disinherit.StrictnessNormal),
		"report diagnostics at severity N or below (0-6)")
	lintCmd.Flags().IntVar(&lintFailOn, "fail-on", int(disinherit.SeverityError),
		"exit non-zero on diagnostics at severity N or below")
	lintCmd.Flags().StringArrayVar(&lintIgnore, "ignore", nil,
		"ignore diagnostic codes (repeatable, glob patterns allowed)")
	lintCmd.Flags().BoolVar(&lintSummary, "summary", false, "print only severity counts")
	lintCmd.Flags().BoolVar(&lintQuiet, "quiet", false, "no output, exit code only")
	lintCmd.Flags().BoolVar(&lintCodes, "codes", false, "list known diagnostic codes and exit")
}

type lintResult struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty"`
	Summary     lintSummaryJSON  `json:"summary"`
}

type lintSummaryJSON struct {
	Modules    int            `json:"modules"`
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"bySeverity,omitempty"`
	ByCode     map[string]int `json:"byCode,omitempty"`
}

func runLint(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	if lintCodes {
		return printLintCodes()
	}

	// Failure handling is ours: only a fatal finding aborts the load.
	cfg := disinherit.DiagnosticConfig{
		Level:  disinherit.StrictnessLevel(lintLevel),
		FailAt: disinherit.SeverityFatal,
		Ignore: lintIgnore,
	}

	reg, err := loadRegistry(cmd.Context(), args, disinherit.WithDiagnostics(cfg))
	if err != nil {
		var le *disinherit.LoadError
		if !errors.As(err, &le) || reg == nil {
			return &exitCodeError{code: exitLoadFail, msg: fmt.Sprintf("load failed: %v", err)}
		}
		// Fatal findings are reported below like any other.
	}

	result := lintResult{Summary: lintSummaryJSON{
		Modules:    reg.ModuleCount() - 1, // builtin is always present
		BySeverity: make(map[string]int),
		ByCode:     make(map[string]int),
	}}

	failing := false
	for _, d := range reg.Report(cfg) {
		result.Diagnostics = append(result.Diagnostics, buildDiagnosticJSON(d))
		result.Summary.Total++
		result.Summary.BySeverity[d.Severity.String()]++
		result.Summary.ByCode[d.Code]++
		if int(d.Severity) <= lintFailOn {
			failing = true
		}
	}

	if !lintQuiet {
		if flagFormat == "json" {
			if err := writeJSON(result); err != nil {
				return err
			}
		} else {
			printLintText(result)
		}
	}

	if failing {
		return &exitCodeError{code: exitError}
	}
	return nil
}

func printLintText(result lintResult) {
	if !lintSummary {
		for _, d := range result.Diagnostics {
			printLintLine(d)
		}
		if result.Summary.Total > 0 {
			fmt.Println()
		}
	}

	if result.Summary.Total == 0 {
		fmt.Printf("No issues found in %d modules\n", result.Summary.Modules)
		return
	}

	fmt.Printf("Checked %d modules, found %d issues:\n", result.Summary.Modules, result.Summary.Total)
	for _, sev := range []string{"fatal", "severe", "error", "minor", "style", "warning", "info"} {
		if count := result.Summary.BySeverity[sev]; count > 0 {
			fmt.Printf("  %-8s %d\n", sev+":", count)
		}
	}
}

func printLintLine(d DiagnosticJSON) {
	parts := []string{d.Severity + ":"}
	if d.Code != "" {
		parts = append(parts, "["+d.Code+"]")
	}
	loc := d.File
	if loc == "" {
		loc = d.Module
	}
	if loc != "" {
		if d.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d:", loc, d.Line))
		} else {
			parts = append(parts, loc+":")
		}
	}
	parts = append(parts, d.Message)
	fmt.Println(strings.Join(parts, " "))
}

func printLintCodes() error {
	codes := disinherit.AllDiagnosticCodes()
	if flagFormat == "json" {
		return writeJSON(codes)
	}
	phase := ""
	for _, info := range codes {
		if info.Phase != phase {
			phase = info.Phase
			fmt.Printf("%s:\n", phase)
		}
		fmt.Printf("  %s\n", info.Code)
	}
	return nil
}
