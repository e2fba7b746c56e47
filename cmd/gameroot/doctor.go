package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/gameroot/internal/output"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version string         `json:"version"`
	Roots   []checkResult  `json:"roots"`
	Modules []checkResult  `json:"modules"`
	Summary *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

func newDoctorCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the game root and native module can be found",
		Long: `Check how gameroot sees this directory and suggest fixes.

ROOTS    - which rule chose the game root, whether it exists, marker files,
           the layout file
MODULES  - the library search variable and whether the physics module loads

Examples:
  gameroot doctor
  gameroot doctor --quiet
  gameroot -game /games/hl2 doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, quiet)
		},
	}
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Only show failures and warnings")
	return cmd
}

func runDoctor(cmd *cobra.Command, quiet bool) error {
	sess, err := newSession(cmd)
	if err != nil {
		return fail(newPrinter(cmd), err)
	}

	result := gatherDoctorChecks(sess)
	if sess.printer.IsJSON() {
		return sess.printer.WriteJSON(result)
	}
	outputDoctorHuman(sess.printer, result, quiet)
	return nil
}

func gatherDoctorChecks(sess *session) *doctorResult {
	result := &doctorResult{
		Version: buildVersion(),
		Roots:   runRootChecks(sess),
		Modules: runModuleChecks(sess),
		Summary: &doctorSummary{},
	}

	for _, check := range append(append([]checkResult(nil), result.Roots...), result.Modules...) {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}
	return result
}

func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Print("gameroot doctor %s\n", result.Version)

	printCheckSection(printer, "ROOTS", result.Roots, quiet)
	printCheckSection(printer, "MODULES", result.Modules, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	if quiet && allPassed(checks) {
		return
	}

	printer.Println()
	printer.Section(title)
	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}
		printer.Print("  %s  %s: %s\n", statusIcon(check.Status), check.Name, check.Message)
		if check.Hint != "" {
			printer.Print("      -> %s\n", check.Hint)
		}
	}
}

func allPassed(checks []checkResult) bool {
	for _, check := range checks {
		if check.Status != checkPass {
			return false
		}
	}
	return true
}

func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}
