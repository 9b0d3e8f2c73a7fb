package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/domscan/app"
	"github.com/ludo-technologies/domscan/domain"
	"github.com/ludo-technologies/domscan/internal/constants"
	"github.com/ludo-technologies/domscan/service"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

type checkOptions struct {
	requestFlags

	failOn     string
	jsonOutput bool
}

func checkCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [path|url...]",
		Short: "Fail when documents exceed DOM complexity thresholds",
		Long: `Check documents against the DOM complexity thresholds for CI/CD pipelines.

Exit codes:
  0 - All documents pass
  1 - At least one document fails the --fail-on level
  2 - Analysis error (file not found, parse error, etc.)

Fail levels:
  critical - documents whose overall status is NEEDS_OPTIMIZATION fail (default)
  warning  - any document that is not EXCELLENT fails

Examples:
  domscan check site/
  domscan check --fail-on warning dist/
  domscan check --json https://example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.failOn, "fail-on", string(domain.FailOnCritical),
		"Fail level: critical or warning")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false,
		"Output results as JSON")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	if len(args) == 0 {
		return &CheckExitError{Code: constants.ExitError, Message: "no paths specified"}
	}

	req, err := opts.buildRequest(cmd, args)
	if err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: err.Error()}
	}

	if cmd.Flags().Changed("fail-on") {
		req.FailOn = domain.FailLevel(opts.failOn)
	}
	switch req.FailOn {
	case domain.FailOnCritical, domain.FailOnWarning:
	case "":
		req.FailOn = domain.FailOnCritical
	default:
		return &CheckExitError{Code: constants.ExitError, Message: fmt.Sprintf("invalid --fail-on %q (want critical or warning)", req.FailOn)}
	}

	pm := service.NewProgressManager(!opts.jsonOutput)
	defer pm.Close()

	result, err := app.NewCheckUseCase(newAnalysisService(req, pm)).Execute(cmd.Context(), *req)
	if err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: err.Error()}
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		if err := outputCheckJSON(out, result); err != nil {
			return err
		}
	} else {
		outputCheckText(out, result)
	}

	if result.ExitCode != constants.ExitOK {
		return &CheckExitError{Code: result.ExitCode, Message: ""}
	}
	return nil
}

func outputCheckText(w io.Writer, result *domain.CheckResult) {
	s := result.Summary

	switch result.ExitCode {
	case constants.ExitOK:
		fmt.Fprintln(w, "PASS: All documents within DOM complexity thresholds")
		if verbose {
			fmt.Fprintf(w, "  Documents analyzed: %d\n", s.DocumentsAnalyzed)
			fmt.Fprintf(w, "  Fail level: %s\n", s.FailOn)
			fmt.Fprintf(w, "  Duration: %dms\n", result.Duration)
		}
		return
	case constants.ExitError:
		fmt.Fprintf(w, "ERROR: %d document(s) could not be analyzed\n", s.AnalysisErrorsCount)
	default:
		fmt.Fprintln(w, "FAIL: DOM complexity check failed")
		fmt.Fprintf(w, "  Violations: %d\n", s.TotalViolations)
	}

	for _, v := range result.Violations {
		severity := "ERROR"
		if v.Severity == "warning" {
			severity = "WARN"
		}
		fmt.Fprintf(w, "  [%s] %s: %s (limit %s)\n", severity, v.Source, v.Message, v.Threshold)
		if verbose && v.Location != "" {
			fmt.Fprintf(w, "         at %s\n", v.Location)
		}
	}

	if verbose {
		fmt.Fprintf(w, "\nSummary:\n")
		fmt.Fprintf(w, "  Documents: %d analyzed, %d failed to analyze\n", s.DocumentsAnalyzed, s.DocumentsFailed)
		fmt.Fprintf(w, "  Critical metrics: %d\n", s.CriticalMetrics)
		fmt.Fprintf(w, "  Warning metrics: %d\n", s.WarningMetrics)
		fmt.Fprintf(w, "  Worst status: %s\n", s.WorstStatus)
		fmt.Fprintf(w, "  Duration: %dms\n", result.Duration)
	}
}

func outputCheckJSON(w io.Writer, result *domain.CheckResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}
	return nil
}
